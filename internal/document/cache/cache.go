// Package cache provides a read-through cache for reference-number lookups on
// the verification path. The cache is an optimization, never a source of
// truth: misses and errors fall through to the store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"attesta/internal/document/models"
)

const keyPrefix = "attesta:doc:ref:"

// VerificationCache caches issued-document records keyed by reference number.
type VerificationCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *VerificationCache {
	return &VerificationCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached record for a reference, or (nil, false) on miss.
func (c *VerificationCache) Get(ctx context.Context, reference string) (*models.IssuedDocument, bool) {
	raw, err := c.client.Get(ctx, keyPrefix+reference).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "verification cache read failed", "reference", reference, "error", err)
		}
		return nil, false
	}

	var doc models.IssuedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		// A corrupt entry must not poison lookups; drop it and miss.
		c.logger.WarnContext(ctx, "verification cache entry corrupt", "reference", reference, "error", err)
		_ = c.client.Del(ctx, keyPrefix+reference).Err()
		return nil, false
	}
	return &doc, true
}

// Put stores a record under its reference number. Failures are logged and
// otherwise ignored.
func (c *VerificationCache) Put(ctx context.Context, doc *models.IssuedDocument) {
	raw, err := json.Marshal(doc)
	if err != nil {
		c.logger.WarnContext(ctx, "verification cache encode failed", "reference", doc.ReferenceNumber, "error", err)
		return
	}
	if err := c.client.Set(ctx, keyPrefix+doc.ReferenceNumber, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "verification cache write failed", "reference", doc.ReferenceNumber, "error", err)
	}
}

// Invalidate drops the cached record for a reference after a metadata
// correction or deletion.
func (c *VerificationCache) Invalidate(ctx context.Context, reference string) {
	if err := c.client.Del(ctx, keyPrefix+reference).Err(); err != nil {
		c.logger.WarnContext(ctx, "verification cache invalidation failed", "reference", reference, "error", err)
	}
}
