package audit

import (
	"context"
	"log/slog"

	"attesta/pkg/requestcontext"
)

// Publisher delivers issuance events to a sink. Implementations must be safe
// for concurrent use.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Emitter enriches events from request context and publishes them
// fire-and-forget: a publish failure is logged, never surfaced to the
// issuance pipeline.
type Emitter struct {
	publisher Publisher
	logger    *slog.Logger
}

func NewEmitter(publisher Publisher, logger *slog.Logger) *Emitter {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &Emitter{publisher: publisher, logger: logger}
}

// Emit fills in request-scoped metadata and publishes the event.
func (e *Emitter) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = requestcontext.UserAgent(ctx)
	}

	if err := e.publisher.Emit(ctx, event); err != nil {
		e.logger.WarnContext(ctx, "audit event publish failed",
			"action", event.Action,
			"reference", event.Reference,
			"error", err,
		)
	}
}

// NoopPublisher discards events; used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Emit(context.Context, Event) error { return nil }
