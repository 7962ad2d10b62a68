package cadence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadencehq/cadence/pkg/models"
)

func TestSessionStore(t *testing.T) {
	sessions := newSessionStore(time.Hour)
	user := &models.User{ID: models.NewUserID(), Username: "reviewer", IsTeamMember: true}

	token, err := sessions.Create(user)
	require.NoError(t, err)
	assert.Len(t, token, 64)

	got, ok := sessions.Get(token)
	require.True(t, ok)
	assert.Equal(t, user.Username, got.Username)

	_, ok = sessions.Get("unknown-token")
	assert.False(t, ok)

	sessions.Delete(token)
	_, ok = sessions.Get(token)
	assert.False(t, ok)

	// Deleting an unknown token is a no-op.
	sessions.Delete("unknown-token")
}

func TestSessionReturnsCopies(t *testing.T) {
	sessions := newSessionStore(time.Hour)
	user := &models.User{ID: models.NewUserID(), Username: "reviewer", IsTeamMember: true}

	token, err := sessions.Create(user)
	require.NoError(t, err)

	// Mutating the caller's struct after Create changes nothing stored.
	user.IsTeamMember = false
	got, ok := sessions.Get(token)
	require.True(t, ok)
	assert.True(t, got.IsTeamMember)

	// Mutating a returned struct never leaks into other lookups.
	got.Username = "changed"
	again, ok := sessions.Get(token)
	require.True(t, ok)
	assert.Equal(t, "reviewer", again.Username)
}

func TestSessionExpiry(t *testing.T) {
	sessions := newSessionStore(-time.Second)
	user := &models.User{ID: models.NewUserID(), Username: "reviewer"}

	token, err := sessions.Create(user)
	require.NoError(t, err)

	// Already past its TTL; the lookup removes it.
	_, ok := sessions.Get(token)
	assert.False(t, ok)
}

func TestSessionTokensAreUnique(t *testing.T) {
	sessions := newSessionStore(time.Hour)
	user := &models.User{ID: models.NewUserID(), Username: "reviewer"}

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := sessions.Create(user)
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}
