package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"attesta/internal/document/models"
	id "attesta/pkg/domain"
	dErrors "attesta/pkg/domain-errors"
	"attesta/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
}

func (s *InMemoryStoreSuite) newDocument(docType models.DocumentType, reference string) *models.IssuedDocument {
	return &models.IssuedDocument{
		ID:               id.NewDocumentID(),
		Type:             docType,
		ReferenceNumber:  reference,
		GeneratedAt:      time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		GeneratedBy:      id.UserID(uuid.New()),
		Subject:          models.ResidentSubject(id.ResidentID(uuid.New())),
		VerificationCode: "a3f09b1c44de0127",
		ContentHash:      "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		FilePath:         "/var/attesta/" + reference + ".txt",
	}
}

func (s *InMemoryStoreSuite) TestCreateAndFindRoundTrip() {
	doc := s.newDocument(models.TypeProofOfAddress, "POA-20260314150926535-1234-abcdef01")
	require.NoError(s.T(), s.store.Create(context.Background(), doc))

	byID, err := s.store.FindByID(context.Background(), doc.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), doc, byID)

	byRef, err := s.store.FindByReference(context.Background(), doc.ReferenceNumber)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), doc, byRef)
}

func (s *InMemoryStoreSuite) TestCreateRejectsInvalidRecord() {
	doc := s.newDocument(models.TypeProofOfAddress, "")
	err := s.store.Create(context.Background(), doc)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *InMemoryStoreSuite) TestCreateRejectsDuplicateReference() {
	first := s.newDocument(models.TypeProofOfAddress, "POA-20260314150926535-1234-abcdef01")
	require.NoError(s.T(), s.store.Create(context.Background(), first))

	second := s.newDocument(models.TypeProofOfAddress, first.ReferenceNumber)
	err := s.store.Create(context.Background(), second)
	assert.ErrorIs(s.T(), err, sentinel.ErrAlreadyUsed)
}

func (s *InMemoryStoreSuite) TestFindNotFound() {
	_, err := s.store.FindByID(context.Background(), id.NewDocumentID())
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)

	_, err = s.store.FindByReference(context.Background(), "POA-20260101000000000-0000-00000000")
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestListByTypeMatchesExactly() {
	poa1 := s.newDocument(models.TypeProofOfAddress, "POA-20260314150926535-1111-aaaaaaaa")
	poa2 := s.newDocument(models.TypeProofOfAddress, "POA-20260314150926536-2222-bbbbbbbb")
	other := s.newDocument(models.DocumentType("BirthCertificate"), "BC-20260314150926537-3333-cccccccc")

	require.NoError(s.T(), s.store.Create(context.Background(), poa1))
	require.NoError(s.T(), s.store.Create(context.Background(), poa2))
	require.NoError(s.T(), s.store.Create(context.Background(), other))

	matches, err := s.store.ListByType(context.Background(), models.TypeProofOfAddress)
	require.NoError(s.T(), err)
	assert.Len(s.T(), matches, 2)
	for _, doc := range matches {
		assert.Equal(s.T(), models.TypeProofOfAddress, doc.Type)
	}

	none, err := s.store.ListByType(context.Background(), models.DocumentType("MarriageCertificate"))
	require.NoError(s.T(), err)
	assert.Empty(s.T(), none)
}

// TestListByTypeEmptyTagMatchesOnlyEmpty pins the exact-match contract: the
// empty string is a legitimate tag, not a wildcard.
func (s *InMemoryStoreSuite) TestListByTypeEmptyTagMatchesOnlyEmpty() {
	tagged := s.newDocument(models.DocumentType("A"), "POA-20260314150926535-1111-aaaaaaaa")
	untagged1 := s.newDocument(models.DocumentType(""), "POA-20260314150926536-2222-bbbbbbbb")
	untagged2 := s.newDocument(models.DocumentType(""), "POA-20260314150926537-3333-cccccccc")

	require.NoError(s.T(), s.store.Create(context.Background(), tagged))
	require.NoError(s.T(), s.store.Create(context.Background(), untagged1))
	require.NoError(s.T(), s.store.Create(context.Background(), untagged2))

	matches, err := s.store.ListByType(context.Background(), models.DocumentType(""))
	require.NoError(s.T(), err)
	require.Len(s.T(), matches, 2)
	for _, doc := range matches {
		assert.Equal(s.T(), models.DocumentType(""), doc.Type)
	}
}

func (s *InMemoryStoreSuite) TestListBySubjectMatchesBothHalves() {
	residentID := id.ResidentID(uuid.New())
	subject := models.ResidentSubject(residentID)

	matching := s.newDocument(models.TypeProofOfAddress, "POA-20260314150926535-1111-aaaaaaaa")
	matching.Subject = subject
	sameIDOtherKind := s.newDocument(models.TypeProofOfAddress, "POA-20260314150926536-2222-bbbbbbbb")
	sameIDOtherKind.Subject = models.ResidenceSubject(id.ResidenceID(residentID))
	otherResident := s.newDocument(models.TypeProofOfAddress, "POA-20260314150926537-3333-cccccccc")

	require.NoError(s.T(), s.store.Create(context.Background(), matching))
	require.NoError(s.T(), s.store.Create(context.Background(), sameIDOtherKind))
	require.NoError(s.T(), s.store.Create(context.Background(), otherResident))

	matches, err := s.store.ListBySubject(context.Background(), subject)
	require.NoError(s.T(), err)
	require.Len(s.T(), matches, 1)
	assert.Equal(s.T(), matching.ID, matches[0].ID)
}

func (s *InMemoryStoreSuite) TestUpdate() {
	doc := s.newDocument(models.TypeProofOfAddress, "POA-20260314150926535-1234-abcdef01")
	require.NoError(s.T(), s.store.Create(context.Background(), doc))

	doc.FilePath = "/archive/2026/POA-20260314150926535-1234-abcdef01.txt"
	require.NoError(s.T(), s.store.Update(context.Background(), doc))

	fetched, err := s.store.FindByID(context.Background(), doc.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), doc.FilePath, fetched.FilePath)
}

func (s *InMemoryStoreSuite) TestUpdateNotFound() {
	doc := s.newDocument(models.TypeProofOfAddress, "POA-20260314150926535-1234-abcdef01")
	err := s.store.Update(context.Background(), doc)
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestDeleteReportsExistence() {
	doc := s.newDocument(models.TypeProofOfAddress, "POA-20260314150926535-1234-abcdef01")
	require.NoError(s.T(), s.store.Create(context.Background(), doc))

	existed, err := s.store.Delete(context.Background(), doc.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), existed)

	existed, err = s.store.Delete(context.Background(), doc.ID)
	require.NoError(s.T(), err)
	assert.False(s.T(), existed)
}

func (s *InMemoryStoreSuite) TestDeleteFreesReference() {
	doc := s.newDocument(models.TypeProofOfAddress, "POA-20260314150926535-1234-abcdef01")
	require.NoError(s.T(), s.store.Create(context.Background(), doc))

	_, err := s.store.Delete(context.Background(), doc.ID)
	require.NoError(s.T(), err)

	replacement := s.newDocument(models.TypeProofOfAddress, doc.ReferenceNumber)
	assert.NoError(s.T(), s.store.Create(context.Background(), replacement))
}

func (s *InMemoryStoreSuite) TestStoredCopiesAreIsolated() {
	doc := s.newDocument(models.TypeProofOfAddress, "POA-20260314150926535-1234-abcdef01")
	require.NoError(s.T(), s.store.Create(context.Background(), doc))

	doc.FilePath = "mutated-after-create"

	fetched, err := s.store.FindByID(context.Background(), doc.ID)
	require.NoError(s.T(), err)
	assert.NotEqual(s.T(), doc.FilePath, fetched.FilePath)
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}
