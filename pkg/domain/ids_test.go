package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "attesta/pkg/domain-errors"
)

func TestParseDocumentID(t *testing.T) {
	raw := uuid.NewString()

	parsed, err := ParseDocumentID(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, parsed.String())
	assert.False(t, parsed.IsNil())
}

// TestParseRejectsBadInput validates the trust-boundary invariant: IDs are
// valid, non-empty, non-nil UUIDs.
func TestParseRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not a uuid", "certainly-not-a-uuid"},
		{"nil uuid", "00000000-0000-0000-0000-000000000000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDocumentID(tc.raw)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

			_, err = ParseResidentID(tc.raw)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

			_, err = ParseUserID(tc.raw)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func TestIDJSONRoundTrip(t *testing.T) {
	original := NewDocumentID()

	encoded, err := json.Marshal(original)
	require.NoError(t, err)
	assert.JSONEq(t, `"`+original.String()+`"`, string(encoded))

	var decoded DocumentID
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, original, decoded)
}
