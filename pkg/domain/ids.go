// Package domain defines the typed identifiers shared across attesta features.
//
// Each identifier is a distinct named type over uuid.UUID so the compiler
// rejects cross-assignment (a ResidentID can never be passed where a
// DocumentID is expected). Parse helpers enforce the invariant that IDs are
// valid, non-empty, non-nil UUIDs at trust boundaries (HTTP, storage rows).
package domain

import (
	"github.com/google/uuid"

	dErrors "attesta/pkg/domain-errors"
)

// DocumentID identifies one issued-document audit record.
type DocumentID uuid.UUID

// ResidentID identifies a person in the village register.
type ResidentID uuid.UUID

// ResidenceID identifies a registered address.
type ResidenceID uuid.UUID

// UserID identifies the acting principal (clerk) responsible for an issuance.
type UserID uuid.UUID

func (id DocumentID) String() string  { return uuid.UUID(id).String() }
func (id ResidentID) String() string  { return uuid.UUID(id).String() }
func (id ResidenceID) String() string { return uuid.UUID(id).String() }
func (id UserID) String() string      { return uuid.UUID(id).String() }

func (id DocumentID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ResidentID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ResidenceID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }

// Text marshaling keeps the canonical UUID string form on the wire. Named
// types do not inherit uuid.UUID's methods, so these are spelled out.

func (id DocumentID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id ResidentID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id ResidenceID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id UserID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }

func (id *DocumentID) UnmarshalText(text []byte) error  { return (*uuid.UUID)(id).UnmarshalText(text) }
func (id *ResidentID) UnmarshalText(text []byte) error  { return (*uuid.UUID)(id).UnmarshalText(text) }
func (id *ResidenceID) UnmarshalText(text []byte) error { return (*uuid.UUID)(id).UnmarshalText(text) }
func (id *UserID) UnmarshalText(text []byte) error      { return (*uuid.UUID)(id).UnmarshalText(text) }

// NewDocumentID allocates a fresh document identifier.
func NewDocumentID() DocumentID { return DocumentID(uuid.New()) }

// ParseDocumentID validates and parses a document ID from its string form.
func ParseDocumentID(raw string) (DocumentID, error) {
	parsed, err := parseUUID(raw, "document id")
	return DocumentID(parsed), err
}

// ParseResidentID validates and parses a resident ID from its string form.
func ParseResidentID(raw string) (ResidentID, error) {
	parsed, err := parseUUID(raw, "resident id")
	return ResidentID(parsed), err
}

// ParseResidenceID validates and parses a residence ID from its string form.
func ParseResidenceID(raw string) (ResidenceID, error) {
	parsed, err := parseUUID(raw, "residence id")
	return ResidenceID(parsed), err
}

// ParseUserID validates and parses a user ID from its string form.
func ParseUserID(raw string) (UserID, error) {
	parsed, err := parseUUID(raw, "user id")
	return UserID(parsed), err
}

func parseUUID(raw, label string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is not a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" must not be the nil UUID")
	}
	return parsed, nil
}
