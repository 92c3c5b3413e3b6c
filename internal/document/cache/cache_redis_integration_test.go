//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"attesta/internal/document/cache"
	"attesta/internal/document/models"
	"attesta/internal/platform/logger"
	id "attesta/pkg/domain"
	"attesta/pkg/testutil/containers"
)

type VerificationCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.VerificationCache
}

func TestVerificationCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(VerificationCacheSuite))
}

func (s *VerificationCacheSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.cache = cache.New(s.redis.Client, time.Minute, logger.New())
}

func (s *VerificationCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func cachedDocument(reference string) *models.IssuedDocument {
	return &models.IssuedDocument{
		ID:               id.NewDocumentID(),
		Type:             models.TypeProofOfAddress,
		ReferenceNumber:  reference,
		GeneratedAt:      time.Now().UTC().Truncate(time.Second),
		GeneratedBy:      id.UserID(uuid.New()),
		Subject:          models.ResidentSubject(id.ResidentID(uuid.New())),
		VerificationCode: "a3f09b1c44de0127",
		ContentHash:      "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
	}
}

func (s *VerificationCacheSuite) TestPutAndGet() {
	ctx := context.Background()
	doc := cachedDocument("POA-20260314150926535-1234-abcdef01")

	s.cache.Put(ctx, doc)

	cached, ok := s.cache.Get(ctx, doc.ReferenceNumber)
	s.Require().True(ok)
	s.Equal(doc.ID, cached.ID)
	s.Equal(doc.VerificationCode, cached.VerificationCode)
	s.Equal(doc.Subject, cached.Subject)
}

func (s *VerificationCacheSuite) TestMissOnUnknownReference() {
	_, ok := s.cache.Get(context.Background(), "POA-20260101000000000-0000-00000000")
	s.False(ok)
}

func (s *VerificationCacheSuite) TestInvalidate() {
	ctx := context.Background()
	doc := cachedDocument("POA-20260314150926535-1234-abcdef01")

	s.cache.Put(ctx, doc)
	s.cache.Invalidate(ctx, doc.ReferenceNumber)

	_, ok := s.cache.Get(ctx, doc.ReferenceNumber)
	s.False(ok)
}

// TestCorruptEntryIsDroppedNotServed plants garbage under the cache key and
// verifies the next read misses instead of returning a broken record.
func (s *VerificationCacheSuite) TestCorruptEntryIsDroppedNotServed() {
	ctx := context.Background()
	const reference = "POA-20260314150926535-1234-abcdef01"

	err := s.redis.Client.Set(ctx, "attesta:doc:ref:"+reference, "{not json", time.Minute).Err()
	s.Require().NoError(err)

	_, ok := s.cache.Get(ctx, reference)
	s.False(ok)

	exists, err := s.redis.Client.Exists(ctx, "attesta:doc:ref:"+reference).Result()
	s.Require().NoError(err)
	s.Zero(exists, "corrupt entry should have been deleted")
}
