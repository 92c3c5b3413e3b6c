package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "attesta/pkg/domain"
	dErrors "attesta/pkg/domain-errors"
)

func TestSubjectRef_EncodeDecodeRoundTrip(t *testing.T) {
	residentID := id.ResidentID(uuid.New())
	original := ResidentSubject(residentID)

	entityID, entityType := original.Encode()
	assert.Equal(t, residentID.String(), entityID)
	assert.Equal(t, "Resident", entityType)

	decoded, err := DecodeSubject(entityID, entityType)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)

	unpacked, ok := decoded.ResidentID()
	require.True(t, ok)
	assert.Equal(t, residentID, unpacked)
}

func TestSubjectRef_KindGuardsUnpacking(t *testing.T) {
	subject := ResidenceSubject(id.ResidenceID(uuid.New()))

	_, ok := subject.ResidentID()
	assert.False(t, ok, "a residence subject must not unpack as a resident")

	_, ok = subject.ResidenceID()
	assert.True(t, ok)
}

func TestDecodeSubject_RejectsUnknownKind(t *testing.T) {
	_, err := DecodeSubject(uuid.NewString(), "Vehicle")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestDecodeSubject_RejectsBadEntityID(t *testing.T) {
	for _, raw := range []string{"", "not-a-uuid", uuid.Nil.String()} {
		_, err := DecodeSubject(raw, "Resident")
		require.Error(t, err, "entity id %q should be rejected", raw)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	}
}
