package resident

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	id "attesta/pkg/domain"
	"attesta/pkg/platform/sentinel"
)

// Schema holds the register DDL. Residents reference their current residence;
// address resolution for document views is a deterministic join on this
// column.
const Schema = `
CREATE TABLE IF NOT EXISTS residences (
	id           UUID PRIMARY KEY,
	address_line TEXT NOT NULL,
	village      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS residents (
	id           UUID PRIMARY KEY,
	name         TEXT NOT NULL,
	national_id  TEXT NOT NULL,
	residence_id UUID NOT NULL REFERENCES residences (id)
);
`

// Migrate applies the register schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate resident register: %w", err)
	}
	return nil
}

// PostgresDirectory reads the village register from PostgreSQL.
type PostgresDirectory struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) FindResident(ctx context.Context, residentID id.ResidentID) (*Resident, error) {
	var (
		r           Resident
		rowID       uuid.UUID
		residenceID uuid.UUID
	)
	err := d.db.QueryRowContext(ctx,
		`SELECT id, name, national_id, residence_id FROM residents WHERE id = $1`,
		uuid.UUID(residentID),
	).Scan(&rowID, &r.Name, &r.NationalID, &residenceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find resident: %w", err)
	}
	r.ID = id.ResidentID(rowID)
	r.ResidenceID = id.ResidenceID(residenceID)
	return &r, nil
}

func (d *PostgresDirectory) FindResidence(ctx context.Context, residenceID id.ResidenceID) (*Residence, error) {
	var (
		r     Residence
		rowID uuid.UUID
	)
	err := d.db.QueryRowContext(ctx,
		`SELECT id, address_line, village FROM residences WHERE id = $1`,
		uuid.UUID(residenceID),
	).Scan(&rowID, &r.AddressLine, &r.Village)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find residence: %w", err)
	}
	r.ID = id.ResidenceID(rowID)
	return &r, nil
}

func (d *PostgresDirectory) PutResident(ctx context.Context, r *Resident) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO residents (id, name, national_id, residence_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			national_id = EXCLUDED.national_id,
			residence_id = EXCLUDED.residence_id
	`, uuid.UUID(r.ID), r.Name, r.NationalID, uuid.UUID(r.ResidenceID))
	if err != nil {
		return fmt.Errorf("upsert resident: %w", err)
	}
	return nil
}

func (d *PostgresDirectory) PutResidence(ctx context.Context, r *Residence) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO residences (id, address_line, village)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET address_line = EXCLUDED.address_line,
			village = EXCLUDED.village
	`, uuid.UUID(r.ID), r.AddressLine, r.Village)
	if err != nil {
		return fmt.Errorf("upsert residence: %w", err)
	}
	return nil
}
