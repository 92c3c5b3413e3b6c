package models

import (
	"github.com/google/uuid"

	id "attesta/pkg/domain"
	dErrors "attesta/pkg/domain-errors"
)

// SubjectKind tags the entity table a subject reference points at.
type SubjectKind string

const (
	SubjectResident  SubjectKind = "Resident"
	SubjectResidence SubjectKind = "Residence"
)

// SubjectRef is the polymorphic subject of an issued document: a tagged union
// over the entity kinds a document can be about. It is serialized into the two
// flat (related_entity_id, related_entity_type) columns at the storage
// boundary so callers never reason about the pair as opaque strings.
//
// Invariants:
//   - Kind is one of the declared SubjectKind constants
//   - EntityID is a non-nil UUID
type SubjectRef struct {
	Kind     SubjectKind `json:"kind"`
	EntityID uuid.UUID   `json:"entity_id"`
}

// ResidentSubject builds a subject reference to a person.
func ResidentSubject(residentID id.ResidentID) SubjectRef {
	return SubjectRef{Kind: SubjectResident, EntityID: uuid.UUID(residentID)}
}

// ResidenceSubject builds a subject reference to an address.
func ResidenceSubject(residenceID id.ResidenceID) SubjectRef {
	return SubjectRef{Kind: SubjectResidence, EntityID: uuid.UUID(residenceID)}
}

// Encode flattens the union into the two storage columns.
func (s SubjectRef) Encode() (entityID string, entityType string) {
	return s.EntityID.String(), string(s.Kind)
}

// DecodeSubject rebuilds the union from the two storage columns. Unknown
// kinds are rejected rather than carried as opaque strings.
func DecodeSubject(entityID, entityType string) (SubjectRef, error) {
	kind := SubjectKind(entityType)
	switch kind {
	case SubjectResident, SubjectResidence:
	default:
		return SubjectRef{}, dErrors.New(dErrors.CodeInvalidInput, "unknown subject kind "+entityType)
	}
	parsed, err := uuid.Parse(entityID)
	if err != nil || parsed == uuid.Nil {
		return SubjectRef{}, dErrors.New(dErrors.CodeInvalidInput, "subject entity id is not a valid UUID")
	}
	return SubjectRef{Kind: kind, EntityID: parsed}, nil
}

// ResidentID unpacks the union when it references a person.
func (s SubjectRef) ResidentID() (id.ResidentID, bool) {
	if s.Kind != SubjectResident {
		return id.ResidentID{}, false
	}
	return id.ResidentID(s.EntityID), true
}

// ResidenceID unpacks the union when it references an address.
func (s SubjectRef) ResidenceID() (id.ResidenceID, bool) {
	if s.Kind != SubjectResidence {
		return id.ResidenceID{}, false
	}
	return id.ResidenceID(s.EntityID), true
}

// IsZero reports whether the reference is unset.
func (s SubjectRef) IsZero() bool {
	return s.Kind == "" && s.EntityID == uuid.Nil
}

func (s SubjectRef) validate() error {
	switch s.Kind {
	case SubjectResident, SubjectResidence:
	default:
		return dErrors.New(dErrors.CodeValidation, "document subject kind is required")
	}
	if s.EntityID == uuid.Nil {
		return dErrors.New(dErrors.CodeValidation, "document subject entity id is required")
	}
	return nil
}
