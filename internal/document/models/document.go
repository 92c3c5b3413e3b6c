package models

import (
	"time"

	id "attesta/pkg/domain"
	dErrors "attesta/pkg/domain-errors"
)

// DocumentType tags the kind of an issued document and drives polymorphic
// filtering. The store treats it as an exact-match string; the issuance
// boundary rejects an empty tag.
type DocumentType string

const (
	// TypeProofOfAddress is a proof-of-residency certificate tied to a
	// resident and their registered address.
	TypeProofOfAddress DocumentType = "ProofOfAddress"
)

// IssuedDocument is the append-only audit record written once per issuance.
//
// Invariants:
//   - ReferenceNumber is unique across all records
//   - GeneratedAt and the derivation inputs (ReferenceNumber, Subject) are
//     immutable after creation
//   - VerificationCode and ContentHash are derived before the record is
//     written; the record never exists in a partially-derived state
type IssuedDocument struct {
	ID              id.DocumentID   `json:"id"`
	Type            DocumentType    `json:"document_type"`
	ReferenceNumber string          `json:"reference_number"`
	GeneratedAt     time.Time       `json:"generated_at"`
	GeneratedBy     id.UserID       `json:"generated_by"`
	Subject         SubjectRef      `json:"subject"`
	// VerificationCode is present for any document that can be independently
	// verified; ContentHash once rendering has completed. FilePath is only
	// meaningful while the artifact exists on the original medium.
	VerificationCode string `json:"verification_code,omitempty"`
	ContentHash      string `json:"content_hash,omitempty"`
	FilePath         string `json:"file_path,omitempty"`
}

// Validate enforces the fields the store requires before persisting.
// An empty Type is deliberately not rejected here: the store is exact-match
// permissive and the issuance service owns that check.
func (d *IssuedDocument) Validate() error {
	if d.ID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "document id is required")
	}
	if d.ReferenceNumber == "" {
		return dErrors.New(dErrors.CodeValidation, "reference number is required")
	}
	if d.GeneratedAt.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "generation timestamp is required")
	}
	if d.GeneratedBy.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "issuing principal is required")
	}
	return d.Subject.validate()
}

// MetadataCorrection is the narrow mutable surface of an issued document.
// ReferenceNumber, VerificationCode and ContentHash are not represented here,
// so a correction is statically unable to touch the derived identity of the
// document.
type MetadataCorrection struct {
	FilePath *string
	Subject  *SubjectRef
}

// Apply copies the correction onto the record.
func (c MetadataCorrection) Apply(doc *IssuedDocument) error {
	if c.FilePath != nil {
		doc.FilePath = *c.FilePath
	}
	if c.Subject != nil {
		if err := c.Subject.validate(); err != nil {
			return err
		}
		doc.Subject = *c.Subject
	}
	return nil
}

// IsEmpty reports whether the correction changes nothing.
func (c MetadataCorrection) IsEmpty() bool {
	return c.FilePath == nil && c.Subject == nil
}
