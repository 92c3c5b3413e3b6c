// Package proofofaddress is the specialized view over the audit store for
// proof-of-residency certificates.
//
// Nothing here is separately persisted: every operation delegates to the
// generic document service scoped to the ProofOfAddress type, and the address
// linkage is resolved deterministically at read time through the resident
// directory. The generic record stores only the resident subject; storing the
// address a second time would let the two diverge under concurrent writes.
package proofofaddress

import (
	"context"

	"attesta/internal/document/models"
	docservice "attesta/internal/document/service"
	id "attesta/pkg/domain"
)

// ProofOfAddress is the read-time projection of a generic audit record into
// the proof-of-address kind: the record plus the resolved address linkage.
type ProofOfAddress struct {
	models.IssuedDocument
	ResidentID  id.ResidentID  `json:"resident_id"`
	ResidenceID id.ResidenceID `json:"residence_id"`
	AddressLine string         `json:"address_line"`
	Village     string         `json:"village"`
}

// Documents is the slice of the document service this view consumes.
type Documents interface {
	Issue(ctx context.Context, req docservice.IssueRequest) (*docservice.IssueResult, error)
	Get(ctx context.Context, documentID id.DocumentID) (*models.IssuedDocument, error)
	GetByReference(ctx context.Context, reference string) (*models.IssuedDocument, error)
	ListByType(ctx context.Context, docType models.DocumentType) ([]*models.IssuedDocument, error)
	ListBySubject(ctx context.Context, subject models.SubjectRef) ([]*models.IssuedDocument, error)
	CorrectMetadata(ctx context.Context, documentID id.DocumentID, correction models.MetadataCorrection) (*models.IssuedDocument, error)
	Delete(ctx context.Context, documentID id.DocumentID) (bool, error)
}
