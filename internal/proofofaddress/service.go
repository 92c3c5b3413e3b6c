package proofofaddress

import (
	"context"
	"errors"

	"attesta/internal/document/models"
	docservice "attesta/internal/document/service"
	"attesta/internal/resident"
	id "attesta/pkg/domain"
	dErrors "attesta/pkg/domain-errors"
	"attesta/pkg/platform/sentinel"
)

// Service exposes the proof-of-address view operations.
type Service struct {
	documents Documents
	directory resident.Directory
}

func NewService(documents Documents, directory resident.Directory) *Service {
	return &Service{documents: documents, directory: directory}
}

// IssueResult pairs the projection with the rendered certificate bytes.
type IssueResult struct {
	Certificate *ProofOfAddress
	Content     []byte
}

// Issue issues a proof-of-address certificate for a resident.
func (s *Service) Issue(ctx context.Context, residentID id.ResidentID) (*IssueResult, error) {
	result, err := s.documents.Issue(ctx, docservice.IssueRequest{
		Type:       models.TypeProofOfAddress,
		ResidentID: residentID,
	})
	if err != nil {
		return nil, err
	}
	projection, err := s.project(ctx, result.Document)
	if err != nil {
		return nil, err
	}
	return &IssueResult{Certificate: projection, Content: result.Content}, nil
}

// Get returns the projection for one record, by its opaque identifier.
func (s *Service) Get(ctx context.Context, documentID id.DocumentID) (*ProofOfAddress, error) {
	doc, err := s.documents.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return s.projectOwn(ctx, doc)
}

// GetByReference returns the projection for one record, by reference number.
func (s *Service) GetByReference(ctx context.Context, reference string) (*ProofOfAddress, error) {
	doc, err := s.documents.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	return s.projectOwn(ctx, doc)
}

// ListByResident returns all proof-of-address certificates issued for one
// resident.
func (s *Service) ListByResident(ctx context.Context, residentID id.ResidentID) ([]*ProofOfAddress, error) {
	documents, err := s.documents.ListBySubject(ctx, models.ResidentSubject(residentID))
	if err != nil {
		return nil, err
	}
	projections := make([]*ProofOfAddress, 0, len(documents))
	for _, doc := range documents {
		if doc.Type != models.TypeProofOfAddress {
			continue
		}
		projection, err := s.project(ctx, doc)
		if err != nil {
			return nil, err
		}
		projections = append(projections, projection)
	}
	return projections, nil
}

// ListByResidence returns all proof-of-address certificates whose subject
// currently resolves to the given address. This is a read-time join over the
// register, not a stored linkage.
func (s *Service) ListByResidence(ctx context.Context, residenceID id.ResidenceID) ([]*ProofOfAddress, error) {
	documents, err := s.documents.ListByType(ctx, models.TypeProofOfAddress)
	if err != nil {
		return nil, err
	}
	projections := make([]*ProofOfAddress, 0)
	for _, doc := range documents {
		projection, err := s.project(ctx, doc)
		if err != nil {
			// A resident removed from the register after issuance must not
			// hide the remaining certificates.
			if dErrors.HasCode(err, dErrors.CodeNotFound) {
				continue
			}
			return nil, err
		}
		if projection.ResidenceID == residenceID {
			projections = append(projections, projection)
		}
	}
	return projections, nil
}

// CorrectMetadata applies a narrow correction to one of this view's records.
func (s *Service) CorrectMetadata(ctx context.Context, documentID id.DocumentID, correction models.MetadataCorrection) (*ProofOfAddress, error) {
	if _, err := s.Get(ctx, documentID); err != nil {
		return nil, err
	}
	doc, err := s.documents.CorrectMetadata(ctx, documentID, correction)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, doc)
}

// Delete removes one of this view's records, reporting whether it existed.
func (s *Service) Delete(ctx context.Context, documentID id.DocumentID) (bool, error) {
	if _, err := s.Get(ctx, documentID); err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.documents.Delete(ctx, documentID)
}

// projectOwn projects a record after checking it belongs to this view.
// Records of another kind are absent from this view's perspective.
func (s *Service) projectOwn(ctx context.Context, doc *models.IssuedDocument) (*ProofOfAddress, error) {
	if doc.Type != models.TypeProofOfAddress {
		return nil, dErrors.New(dErrors.CodeNotFound, "document is not a proof of address")
	}
	return s.project(ctx, doc)
}

// project resolves the address linkage for one record.
func (s *Service) project(ctx context.Context, doc *models.IssuedDocument) (*ProofOfAddress, error) {
	residentID, ok := doc.Subject.ResidentID()
	if !ok {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "proof of address subject is not a resident")
	}

	person, err := s.directory.FindResident(ctx, residentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "resident not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "resolve resident")
	}
	home, err := s.directory.FindResidence(ctx, person.ResidenceID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "residence not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "resolve residence")
	}

	return &ProofOfAddress{
		IssuedDocument: *doc,
		ResidentID:     person.ID,
		ResidenceID:    home.ID,
		AddressLine:    home.AddressLine,
		Village:        home.Village,
	}, nil
}
