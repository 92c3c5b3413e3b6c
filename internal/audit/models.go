// Package audit emits issuance lifecycle events to the operations bus.
//
// These events complement the issued_documents table (which is itself the
// tamper-evident audit record): they give operators a stream of who issued,
// corrected, or removed documents, with request correlation.
package audit

import (
	"time"

	id "attesta/pkg/domain"
)

// Action names an issuance lifecycle event.
type Action string

const (
	ActionDocumentIssued    Action = "document_issued"
	ActionMetadataCorrected Action = "metadata_corrected"
	ActionDocumentDeleted   Action = "document_deleted"
)

// Event is emitted from the document service to capture key actions. Keep it
// transport-agnostic so publishers can fan out.
type Event struct {
	Action     Action
	Timestamp  time.Time
	DocumentID id.DocumentID
	Reference  string
	ActorID    id.UserID
	RequestID  string
	ClientIP   string
	UserAgent  string
}
