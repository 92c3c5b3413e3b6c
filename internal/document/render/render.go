// Package render defines the document rendering contract consumed by the
// issuance pipeline, plus a reference implementation.
//
// The pipeline treats rendering as a pure function from structured subject
// fields to bytes; a rendering failure aborts the issuance attempt before
// anything is persisted.
package render

import (
	"bytes"
	"context"
	"text/template"
	"time"

	dErrors "attesta/pkg/domain-errors"
)

// Certificate carries the structured subject fields rendered into the
// document body. The reference number and verification code are allocated
// after rendering and printed alongside the body, so they are deliberately
// not part of this struct.
type Certificate struct {
	ResidentName string
	NationalID   string
	AddressLine  string
	Village      string
	IssuedAt     time.Time
}

// Renderer turns a certificate into the final byte content of the document.
type Renderer interface {
	Render(ctx context.Context, cert Certificate) ([]byte, error)
}

const certificateBody = `VILLAGE OF {{.Village}}
PROOF OF RESIDENCY CERTIFICATE

This certifies that {{.ResidentName}} (national ID {{.NationalID}})
is registered as residing at:

    {{.AddressLine}}
    {{.Village}}

Issued on {{.IssuedAt.Format "2 January 2006"}}.
`

// TemplateRenderer renders a plain-text certificate body. Layout fidelity is
// out of scope; this implements the byte contract the hasher operates on.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses the built-in certificate template.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{
		tmpl: template.Must(template.New("certificate").Parse(certificateBody)),
	}
}

func (r *TemplateRenderer) Render(_ context.Context, cert Certificate) ([]byte, error) {
	if cert.ResidentName == "" || cert.AddressLine == "" {
		return nil, dErrors.New(dErrors.CodeRenderFailed, "certificate fields are incomplete")
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, cert); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRenderFailed, "render certificate body")
	}
	return buf.Bytes(), nil
}
