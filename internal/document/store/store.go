// Package store persists issued-document audit records.
//
// Implementations return pkg/platform/sentinel errors for infrastructure
// facts; translating them into coded domain errors is the service's job.
package store

import (
	"context"

	"attesta/internal/document/models"
	id "attesta/pkg/domain"
)

// Store is the audit-record query surface. Point lookups report absence with
// sentinel.ErrNotFound; list operations report absence with an empty slice.
type Store interface {
	// Create persists a new record. Returns sentinel.ErrAlreadyUsed when the
	// reference number is already taken and a validation error when required
	// fields are absent.
	Create(ctx context.Context, doc *models.IssuedDocument) error

	FindByID(ctx context.Context, documentID id.DocumentID) (*models.IssuedDocument, error)
	FindByReference(ctx context.Context, reference string) (*models.IssuedDocument, error)

	// ListByType matches the type tag exactly; an empty string matches only
	// records stored with an empty tag.
	ListByType(ctx context.Context, docType models.DocumentType) ([]*models.IssuedDocument, error)

	// ListBySubject matches both halves of the polymorphic subject reference.
	ListBySubject(ctx context.Context, subject models.SubjectRef) ([]*models.IssuedDocument, error)

	// Update replaces the record keyed by ID. The store does not re-derive
	// VerificationCode or ContentHash; the service layer guarantees they are
	// carried over unchanged.
	Update(ctx context.Context, doc *models.IssuedDocument) error

	// Delete removes the record and reports whether one existed.
	Delete(ctx context.Context, documentID id.DocumentID) (bool, error)
}
