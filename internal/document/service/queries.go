package service

import (
	"context"
	"errors"

	"attesta/internal/audit"
	"attesta/internal/document/models"
	id "attesta/pkg/domain"
	dErrors "attesta/pkg/domain-errors"
	"attesta/pkg/platform/sentinel"
	"attesta/pkg/requestcontext"
)

// Get returns one record by its opaque identifier.
func (s *Service) Get(ctx context.Context, documentID id.DocumentID) (*models.IssuedDocument, error) {
	doc, err := s.documents.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "document not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "find document")
	}
	return doc, nil
}

// GetByReference returns one record by its printed reference number.
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.IssuedDocument, error) {
	return s.lookupByReference(ctx, reference)
}

// ListByType returns all records with exactly the given type tag. An empty
// tag is a legitimate query and matches only records stored with one.
func (s *Service) ListByType(ctx context.Context, docType models.DocumentType) ([]*models.IssuedDocument, error) {
	documents, err := s.documents.ListByType(ctx, docType)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list documents by type")
	}
	return documents, nil
}

// ListBySubject returns all records whose polymorphic subject matches both
// halves of the reference.
func (s *Service) ListBySubject(ctx context.Context, subject models.SubjectRef) ([]*models.IssuedDocument, error) {
	documents, err := s.documents.ListBySubject(ctx, subject)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list documents by subject")
	}
	return documents, nil
}

// CorrectMetadata applies a narrow metadata correction. The correction type
// cannot express changes to the reference number, verification code, or
// content hash, so the derived identity of the document is preserved by
// construction.
func (s *Service) CorrectMetadata(ctx context.Context, documentID id.DocumentID, correction models.MetadataCorrection) (*models.IssuedDocument, error) {
	if correction.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "correction changes nothing")
	}

	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := correction.Apply(doc); err != nil {
		return nil, err
	}

	if err := s.documents.Update(ctx, doc); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "document not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "update issued document")
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, doc.ReferenceNumber)
	}
	s.emitter.Emit(ctx, audit.Event{
		Action:     audit.ActionMetadataCorrected,
		DocumentID: doc.ID,
		Reference:  doc.ReferenceNumber,
		ActorID:    requestcontext.UserID(ctx),
	})
	return doc, nil
}

// Delete removes an audit record by explicit administrative action, reporting
// whether one existed. Removing the record removes the audit trail for that
// document; there is no tombstone.
func (s *Service) Delete(ctx context.Context, documentID id.DocumentID) (bool, error) {
	doc, err := s.documents.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "find document")
	}

	existed, err := s.documents.Delete(ctx, documentID)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "delete issued document")
	}
	if existed {
		if s.cache != nil {
			s.cache.Invalidate(ctx, doc.ReferenceNumber)
		}
		s.emitter.Emit(ctx, audit.Event{
			Action:     audit.ActionDocumentDeleted,
			DocumentID: documentID,
			Reference:  doc.ReferenceNumber,
			ActorID:    requestcontext.UserID(ctx),
		})
	}
	return existed, nil
}
