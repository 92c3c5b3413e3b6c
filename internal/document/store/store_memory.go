package store

import (
	"context"
	"sync"

	"attesta/internal/document/models"
	id "attesta/pkg/domain"
	"attesta/pkg/platform/sentinel"
)

// InMemoryStore is the development and unit-test implementation. It enforces
// the same reference-number uniqueness the Postgres schema does.
type InMemoryStore struct {
	mu          sync.RWMutex
	documents   map[id.DocumentID]models.IssuedDocument
	byReference map[string]id.DocumentID
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		documents:   make(map[id.DocumentID]models.IssuedDocument),
		byReference: make(map[string]id.DocumentID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, doc *models.IssuedDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.documents[doc.ID]; exists {
		return sentinel.ErrConflict
	}
	if _, taken := s.byReference[doc.ReferenceNumber]; taken {
		return sentinel.ErrAlreadyUsed
	}

	s.documents[doc.ID] = *doc
	s.byReference[doc.ReferenceNumber] = doc.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, documentID id.DocumentID) (*models.IssuedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[documentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := doc
	return &copied, nil
}

func (s *InMemoryStore) FindByReference(_ context.Context, reference string) (*models.IssuedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	documentID, ok := s.byReference[reference]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	doc := s.documents[documentID]
	return &doc, nil
}

func (s *InMemoryStore) ListByType(_ context.Context, docType models.DocumentType) ([]*models.IssuedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*models.IssuedDocument, 0)
	for _, doc := range s.documents {
		if doc.Type == docType {
			copied := doc
			matches = append(matches, &copied)
		}
	}
	return matches, nil
}

func (s *InMemoryStore) ListBySubject(_ context.Context, subject models.SubjectRef) ([]*models.IssuedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*models.IssuedDocument, 0)
	for _, doc := range s.documents {
		if doc.Subject == subject {
			copied := doc
			matches = append(matches, &copied)
		}
	}
	return matches, nil
}

func (s *InMemoryStore) Update(_ context.Context, doc *models.IssuedDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.documents[doc.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if existing.ReferenceNumber != doc.ReferenceNumber {
		if _, taken := s.byReference[doc.ReferenceNumber]; taken {
			return sentinel.ErrAlreadyUsed
		}
		delete(s.byReference, existing.ReferenceNumber)
		s.byReference[doc.ReferenceNumber] = doc.ID
	}

	s.documents[doc.ID] = *doc
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, documentID id.DocumentID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[documentID]
	if !ok {
		return false, nil
	}
	delete(s.byReference, doc.ReferenceNumber)
	delete(s.documents, documentID)
	return true, nil
}
