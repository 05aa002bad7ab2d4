package sdk_test

import (
	"encoding/json"
	"testing"

	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserUnmarshalFieldAliases(t *testing.T) {
	tests := []struct {
		name string
		body string
		id   string
		role string
	}{
		{
			name: "backend shape",
			body: `{"user_id": "42", "user_role": "Lawyer", "email": "ada@firm.example"}`,
			id:   "42",
			role: "Lawyer",
		},
		{
			name: "numeric id",
			body: `{"user_id": 42, "user_role": "Admin"}`,
			id:   "42",
			role: "Admin",
		},
		{
			name: "generic aliases",
			body: `{"id": "7", "role": "Staff"}`,
			id:   "7",
			role: "Staff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u sdk.User
			require.NoError(t, json.Unmarshal([]byte(tt.body), &u))
			assert.Equal(t, tt.id, u.ID)
			assert.Equal(t, tt.role, u.Role)
		})
	}
}

func TestUserUnmarshalMissingID(t *testing.T) {
	var u sdk.User
	err := json.Unmarshal([]byte(`{"user_role": "Lawyer"}`), &u)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user_id")
}

func TestUserPreservesUnknownProfileFields(t *testing.T) {
	body := `{"user_id": "42", "user_role": "Lawyer", "bar_number": "NY-12345"}`

	var u sdk.User
	require.NoError(t, json.Unmarshal([]byte(body), &u))
	assert.Equal(t, "NY-12345", u.Profile["bar_number"])

	// Re-encoding keeps the field the SDK does not model.
	out, err := json.Marshal(u)
	require.NoError(t, err)

	var again sdk.User
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, "NY-12345", again.Profile["bar_number"])
	assert.Equal(t, "42", again.ID)
}
