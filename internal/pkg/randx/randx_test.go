package randx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionID(t *testing.T) {
	id, err := SessionID()
	require.NoError(t, err)

	assert.Len(t, id, len(SessionIDPrefix)+IDRawLength)
	assert.True(t, IsValidSessionID(id))
	assert.False(t, IsValidUserID(id))
}

func TestUserID(t *testing.T) {
	id, err := UserID()
	require.NoError(t, err)

	assert.Len(t, id, len(UserIDPrefix)+IDRawLength)
	assert.True(t, IsValidUserID(id))
	assert.False(t, IsValidSessionID(id))
}

func TestIsValidSessionID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"well-formed", "sess_AbC123xyz789", true},
		{"empty", "", false},
		{"wrong prefix", "user_AbC123xyz789", false},
		{"too short", "sess_abc", false},
		{"too long", "sess_AbC123xyz789AA", false},
		{"illegal characters", "sess_AbC123xyz-!9", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidSessionID(tt.id))
		})
	}
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, err := SessionID()
		require.NoError(t, err)

		_, dup := seen[id]
		require.False(t, dup, "generated a duplicate session ID")
		seen[id] = struct{}{}
	}

	assert.NotEqual(t, LineItemID(), LineItemID())
}
