package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"attesta/internal/document/models"
	id "attesta/pkg/domain"
	"attesta/pkg/platform/sentinel"
	txcontext "attesta/pkg/platform/tx"
)

// uniqueViolation is the PostgreSQL error code raised by the reference_number
// unique index when two issuances collide.
const uniqueViolation = "23505"

// PostgresStore persists issued-document records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed audit store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// q returns the context-carried transaction when present so a create can join
// a larger transactional unit.
func (s *PostgresStore) q(ctx context.Context) querier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const documentColumns = `
	id, document_type, reference_number, generated_at, generated_by,
	related_entity_id, related_entity_type,
	verification_code, content_hash, file_path
`

func (s *PostgresStore) Create(ctx context.Context, doc *models.IssuedDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	entityID, entityType := doc.Subject.Encode()
	query := `
		INSERT INTO issued_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.q(ctx).ExecContext(ctx, query,
		uuid.UUID(doc.ID),
		string(doc.Type),
		doc.ReferenceNumber,
		doc.GeneratedAt,
		uuid.UUID(doc.GeneratedBy),
		entityID,
		entityType,
		doc.VerificationCode,
		doc.ContentHash,
		doc.FilePath,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert issued document: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, documentID id.DocumentID) (*models.IssuedDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM issued_documents WHERE id = $1`
	doc, err := scanDocument(s.q(ctx).QueryRowContext(ctx, query, uuid.UUID(documentID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find document by id: %w", err)
	}
	return doc, nil
}

func (s *PostgresStore) FindByReference(ctx context.Context, reference string) (*models.IssuedDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM issued_documents WHERE reference_number = $1`
	doc, err := scanDocument(s.q(ctx).QueryRowContext(ctx, query, reference))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find document by reference: %w", err)
	}
	return doc, nil
}

func (s *PostgresStore) ListByType(ctx context.Context, docType models.DocumentType) ([]*models.IssuedDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM issued_documents
		WHERE document_type = $1
		ORDER BY generated_at DESC
	`
	rows, err := s.q(ctx).QueryContext(ctx, query, string(docType))
	if err != nil {
		return nil, fmt.Errorf("list documents by type: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func (s *PostgresStore) ListBySubject(ctx context.Context, subject models.SubjectRef) ([]*models.IssuedDocument, error) {
	entityID, entityType := subject.Encode()
	query := `
		SELECT ` + documentColumns + `
		FROM issued_documents
		WHERE related_entity_id = $1 AND related_entity_type = $2
		ORDER BY generated_at DESC
	`
	rows, err := s.q(ctx).QueryContext(ctx, query, entityID, entityType)
	if err != nil {
		return nil, fmt.Errorf("list documents by subject: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func (s *PostgresStore) Update(ctx context.Context, doc *models.IssuedDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	entityID, entityType := doc.Subject.Encode()
	query := `
		UPDATE issued_documents
		SET document_type = $2,
			reference_number = $3,
			generated_at = $4,
			generated_by = $5,
			related_entity_id = $6,
			related_entity_type = $7,
			verification_code = $8,
			content_hash = $9,
			file_path = $10
		WHERE id = $1
	`
	result, err := s.q(ctx).ExecContext(ctx, query,
		uuid.UUID(doc.ID),
		string(doc.Type),
		doc.ReferenceNumber,
		doc.GeneratedAt,
		uuid.UUID(doc.GeneratedBy),
		entityID,
		entityType,
		doc.VerificationCode,
		doc.ContentHash,
		doc.FilePath,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("update issued document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update issued document: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, documentID id.DocumentID) (bool, error) {
	result, err := s.q(ctx).ExecContext(ctx,
		`DELETE FROM issued_documents WHERE id = $1`, uuid.UUID(documentID))
	if err != nil {
		return false, fmt.Errorf("delete issued document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete issued document: %w", err)
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.IssuedDocument, error) {
	var (
		doc         models.IssuedDocument
		documentID  uuid.UUID
		generatedBy uuid.UUID
		docType     string
		entityID    string
		entityType  string
	)
	err := row.Scan(
		&documentID,
		&docType,
		&doc.ReferenceNumber,
		&doc.GeneratedAt,
		&generatedBy,
		&entityID,
		&entityType,
		&doc.VerificationCode,
		&doc.ContentHash,
		&doc.FilePath,
	)
	if err != nil {
		return nil, err
	}

	doc.ID = id.DocumentID(documentID)
	doc.Type = models.DocumentType(docType)
	doc.GeneratedBy = id.UserID(generatedBy)
	subject, err := models.DecodeSubject(entityID, entityType)
	if err != nil {
		return nil, fmt.Errorf("decode document subject: %w", err)
	}
	doc.Subject = subject
	return &doc, nil
}

func scanDocuments(rows *sql.Rows) ([]*models.IssuedDocument, error) {
	documents := make([]*models.IssuedDocument, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan issued document: %w", err)
		}
		documents = append(documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate issued documents: %w", err)
	}
	return documents, nil
}
