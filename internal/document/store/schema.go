package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema is the issued_documents DDL. The unique index on reference_number is
// the correctness backstop for probabilistic reference allocation; the two
// secondary indexes back the polymorphic query surface.
const Schema = `
CREATE TABLE IF NOT EXISTS issued_documents (
	id                  UUID PRIMARY KEY,
	document_type       TEXT NOT NULL DEFAULT '',
	reference_number    TEXT NOT NULL,
	generated_at        TIMESTAMPTZ NOT NULL,
	generated_by        UUID NOT NULL,
	related_entity_id   UUID NOT NULL,
	related_entity_type TEXT NOT NULL,
	verification_code   TEXT NOT NULL DEFAULT '',
	content_hash        TEXT NOT NULL DEFAULT '',
	file_path           TEXT NOT NULL DEFAULT ''
);

CREATE UNIQUE INDEX IF NOT EXISTS issued_documents_reference_number_key
	ON issued_documents (reference_number);

CREATE INDEX IF NOT EXISTS issued_documents_document_type_idx
	ON issued_documents (document_type);

CREATE INDEX IF NOT EXISTS issued_documents_related_entity_idx
	ON issued_documents (related_entity_id, related_entity_type);
`

// Migrate applies the schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate issued_documents: %w", err)
	}
	return nil
}
