// Package service orchestrates document issuance, verification, and the audit
// record query surface.
package service

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"attesta/internal/audit"
	"attesta/internal/document/cache"
	"attesta/internal/document/metrics"
	"attesta/internal/document/models"
	"attesta/internal/document/refnum"
	"attesta/internal/document/render"
	"attesta/internal/document/store"
	"attesta/internal/resident"
	id "attesta/pkg/domain"
)

// maxAllocationAttempts bounds pipeline retries on a store-rejected duplicate
// reference. A collision is a store-level uniqueness violation, so the whole
// pipeline re-runs from allocation: the code and hash were derived from the
// now-discarded reference number.
const maxAllocationAttempts = 3

// Service implements the issuance pipeline and the audit-record queries.
// All collaborators are constructor-injected; there is no swappable global.
type Service struct {
	documents store.Store
	directory resident.Directory
	renderer  render.Renderer
	artifacts render.ArtifactStore

	cache     *cache.VerificationCache
	publisher audit.Publisher
	emitter   *audit.Emitter
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer

	allocators map[models.DocumentType]*refnum.Allocator
}

// Option configures optional collaborators.
type Option func(*Service)

func WithCache(c *cache.VerificationCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New constructs the document service.
func New(documents store.Store, directory resident.Directory, renderer render.Renderer, artifacts render.ArtifactStore, opts ...Option) *Service {
	s := &Service{
		documents: documents,
		directory: directory,
		renderer:  renderer,
		artifacts: artifacts,
		logger:    slog.Default(),
		tracer:    otel.Tracer("attesta/document"),
		allocators: map[models.DocumentType]*refnum.Allocator{
			models.TypeProofOfAddress: refnum.New("POA"),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.emitter = audit.NewEmitter(s.publisher, s.logger)
	return s
}

// IssueRequest identifies what to issue and about whom. The acting principal
// is taken from the request context.
type IssueRequest struct {
	Type       models.DocumentType
	ResidentID id.ResidentID
}

// IssueResult hands back everything the caller needs to display or print:
// the persisted audit record plus the rendered bytes.
type IssueResult struct {
	Document *models.IssuedDocument
	Content  []byte
}
