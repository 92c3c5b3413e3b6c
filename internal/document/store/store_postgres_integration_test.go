//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"attesta/internal/document/models"
	"attesta/internal/document/store"
	id "attesta/pkg/domain"
	"attesta/pkg/platform/sentinel"
	txcontext "attesta/pkg/platform/tx"
	"attesta/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.Require().NoError(store.Migrate(context.Background(), s.postgres.DB))
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "issued_documents")
	s.Require().NoError(err)
}

func newTestDocument(reference string) *models.IssuedDocument {
	return &models.IssuedDocument{
		ID:               id.NewDocumentID(),
		Type:             models.TypeProofOfAddress,
		ReferenceNumber:  reference,
		GeneratedAt:      time.Now().UTC().Truncate(time.Microsecond),
		GeneratedBy:      id.UserID(uuid.New()),
		Subject:          models.ResidentSubject(id.ResidentID(uuid.New())),
		VerificationCode: "a3f09b1c44de0127",
		ContentHash:      "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		FilePath:         "/var/attesta/" + reference + ".txt",
	}
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	doc := newTestDocument("POA-20260314150926535-1234-" + uuid.NewString()[:8])
	s.Require().NoError(s.store.Create(ctx, doc))

	byID, err := s.store.FindByID(ctx, doc.ID)
	s.Require().NoError(err)
	s.Equal(doc.ReferenceNumber, byID.ReferenceNumber)
	s.Equal(doc.Subject, byID.Subject)
	s.Equal(doc.VerificationCode, byID.VerificationCode)
	s.Equal(doc.ContentHash, byID.ContentHash)
	s.True(doc.GeneratedAt.Equal(byID.GeneratedAt))

	byRef, err := s.store.FindByReference(ctx, doc.ReferenceNumber)
	s.Require().NoError(err)
	s.Equal(doc.ID, byRef.ID)
}

// TestConcurrentDuplicateReference verifies the unique index arbitrates
// concurrent issuances that drew the same reference: exactly one insert wins.
func (s *PostgresStoreSuite) TestConcurrentDuplicateReference() {
	ctx := context.Background()
	reference := "POA-20260314150926535-9999-" + uuid.NewString()[:8]
	const goroutines = 25

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			doc := newTestDocument(reference)
			err := s.store.Create(ctx, doc)
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrAlreadyUsed) {
				conflictCount.Add(1)
			}
		}()
	}

	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should get the uniqueness conflict")
}

func (s *PostgresStoreSuite) TestListBySubjectMatchesBothColumns() {
	ctx := context.Background()
	residentID := id.ResidentID(uuid.New())
	subject := models.ResidentSubject(residentID)

	matching := newTestDocument("POA-20260314150926535-1111-" + uuid.NewString()[:8])
	matching.Subject = subject
	sameIDOtherKind := newTestDocument("POA-20260314150926536-2222-" + uuid.NewString()[:8])
	sameIDOtherKind.Subject = models.ResidenceSubject(id.ResidenceID(residentID))

	s.Require().NoError(s.store.Create(ctx, matching))
	s.Require().NoError(s.store.Create(ctx, sameIDOtherKind))

	matches, err := s.store.ListBySubject(ctx, subject)
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal(matching.ID, matches[0].ID)
}

func (s *PostgresStoreSuite) TestListByTypeOrdersNewestFirst() {
	ctx := context.Background()

	older := newTestDocument("POA-20260314150926535-1111-" + uuid.NewString()[:8])
	older.GeneratedAt = time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	newer := newTestDocument("POA-20260314150926536-2222-" + uuid.NewString()[:8])

	s.Require().NoError(s.store.Create(ctx, older))
	s.Require().NoError(s.store.Create(ctx, newer))

	matches, err := s.store.ListByType(ctx, models.TypeProofOfAddress)
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	s.Equal(newer.ID, matches[0].ID)
	s.Equal(older.ID, matches[1].ID)
}

// TestCreateJoinsCallerTransaction verifies a create joins a context-carried
// transaction: the record is visible inside it and gone after rollback, while
// a committed transaction makes it durable.
func (s *PostgresStoreSuite) TestCreateJoinsCallerTransaction() {
	ctx := context.Background()

	s.Run("rollback discards the record", func() {
		doc := newTestDocument("POA-20260314150926535-4444-" + uuid.NewString()[:8])

		sqlTx, err := s.postgres.DB.BeginTx(ctx, nil)
		s.Require().NoError(err)
		txCtx := txcontext.WithTx(ctx, sqlTx)

		s.Require().NoError(s.store.Create(txCtx, doc))

		_, err = s.store.FindByID(txCtx, doc.ID)
		s.Require().NoError(err, "the record must be visible inside its own transaction")

		s.Require().NoError(sqlTx.Rollback())
		_, err = s.store.FindByID(ctx, doc.ID)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("commit makes the record durable", func() {
		doc := newTestDocument("POA-20260314150926536-5555-" + uuid.NewString()[:8])

		sqlTx, err := s.postgres.DB.BeginTx(ctx, nil)
		s.Require().NoError(err)

		s.Require().NoError(s.store.Create(txcontext.WithTx(ctx, sqlTx), doc))
		s.Require().NoError(sqlTx.Commit())

		fetched, err := s.store.FindByID(ctx, doc.ID)
		s.Require().NoError(err)
		s.Equal(doc.ReferenceNumber, fetched.ReferenceNumber)
	})
}

func (s *PostgresStoreSuite) TestListByTypeEmptyTagMatchesOnlyEmpty() {
	ctx := context.Background()

	tagged := newTestDocument("POA-20260314150926535-1111-" + uuid.NewString()[:8])
	untagged1 := newTestDocument("POA-20260314150926536-2222-" + uuid.NewString()[:8])
	untagged1.Type = models.DocumentType("")
	untagged2 := newTestDocument("POA-20260314150926537-3333-" + uuid.NewString()[:8])
	untagged2.Type = models.DocumentType("")

	s.Require().NoError(s.store.Create(ctx, tagged))
	s.Require().NoError(s.store.Create(ctx, untagged1))
	s.Require().NoError(s.store.Create(ctx, untagged2))

	matches, err := s.store.ListByType(ctx, models.DocumentType(""))
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	for _, doc := range matches {
		s.Equal(models.DocumentType(""), doc.Type)
	}
}

func (s *PostgresStoreSuite) TestUpdateNotFound() {
	doc := newTestDocument("POA-20260314150926535-1234-" + uuid.NewString()[:8])
	err := s.store.Update(context.Background(), doc)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDeleteReportsExistence() {
	ctx := context.Background()
	doc := newTestDocument("POA-20260314150926535-1234-" + uuid.NewString()[:8])
	s.Require().NoError(s.store.Create(ctx, doc))

	existed, err := s.store.Delete(ctx, doc.ID)
	s.Require().NoError(err)
	s.True(existed)

	existed, err = s.store.Delete(ctx, doc.ID)
	s.Require().NoError(err)
	s.False(existed)

	_, err = s.store.FindByID(ctx, doc.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
