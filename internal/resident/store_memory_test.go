package resident

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "attesta/pkg/domain"
	"attesta/pkg/platform/sentinel"
)

func TestInMemoryDirectory_RoundTrip(t *testing.T) {
	directory := NewInMemory()
	ctx := context.Background()

	residenceID := id.ResidenceID(uuid.New())
	require.NoError(t, directory.PutResidence(ctx, &Residence{
		ID:          residenceID,
		AddressLine: "14 Mulberry Lane",
		Village:     "Greenbrook",
	}))

	residentID := id.ResidentID(uuid.New())
	require.NoError(t, directory.PutResident(ctx, &Resident{
		ID:          residentID,
		Name:        "Amaia Serrano",
		NationalID:  "GB-4471002",
		ResidenceID: residenceID,
	}))

	person, err := directory.FindResident(ctx, residentID)
	require.NoError(t, err)
	assert.Equal(t, "Amaia Serrano", person.Name)
	assert.Equal(t, residenceID, person.ResidenceID)

	home, err := directory.FindResidence(ctx, person.ResidenceID)
	require.NoError(t, err)
	assert.Equal(t, "14 Mulberry Lane", home.AddressLine)
}

func TestInMemoryDirectory_NotFound(t *testing.T) {
	directory := NewInMemory()
	ctx := context.Background()

	_, err := directory.FindResident(ctx, id.ResidentID(uuid.New()))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	_, err = directory.FindResidence(ctx, id.ResidenceID(uuid.New()))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

// TestInMemoryDirectory_PutReplaces pins the upsert semantics register
// corrections rely on.
func TestInMemoryDirectory_PutReplaces(t *testing.T) {
	directory := NewInMemory()
	ctx := context.Background()

	residentID := id.ResidentID(uuid.New())
	first := &Resident{ID: residentID, Name: "Amaia Serrano", NationalID: "GB-4471002", ResidenceID: id.ResidenceID(uuid.New())}
	require.NoError(t, directory.PutResident(ctx, first))

	moved := *first
	moved.ResidenceID = id.ResidenceID(uuid.New())
	require.NoError(t, directory.PutResident(ctx, &moved))

	person, err := directory.FindResident(ctx, residentID)
	require.NoError(t, err)
	assert.Equal(t, moved.ResidenceID, person.ResidenceID)
}
