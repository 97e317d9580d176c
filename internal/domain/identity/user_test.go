package identity

import (
	"context"
	"testing"

	"github.com/costview/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		user, err := NewUser("Alice.Smith", "s3cret-pass", RoleViewer)
		require.NoError(t, err)
		assert.Equal(t, "alice.smith", user.Username)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, user.CheckPassword("s3cret-pass"))
		assert.False(t, user.CheckPassword("wrong"))
	})

	t.Run("invalid usernames", func(t *testing.T) {
		for _, username := range []string{"", "ab", "-leading", "has space", "über"} {
			_, err := NewUser(username, "s3cret-pass", RoleViewer)
			require.Error(t, err, username)
			assert.Equal(t, shared.ErrKindInvalidRequest, shared.KindOf(err))
		}
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := NewUser("alice", "short", RoleViewer)
		require.Error(t, err)
		assert.Equal(t, shared.ErrKindInvalidRequest, shared.KindOf(err))
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := NewUser("alice", "s3cret-pass", Role("superuser"))
		require.Error(t, err)
		assert.Equal(t, shared.ErrKindInvalidRequest, shared.KindOf(err))
	})
}

func TestChangePassword(t *testing.T) {
	user, err := NewUser("alice", "original-pass", RoleViewer)
	require.NoError(t, err)

	require.NoError(t, user.ChangePassword("replacement-pass"))
	assert.True(t, user.CheckPassword("replacement-pass"))
	assert.False(t, user.CheckPassword("original-pass"))

	err = user.ChangePassword("short")
	require.Error(t, err)
	assert.True(t, user.CheckPassword("replacement-pass"))
}

func TestChangeRole(t *testing.T) {
	user, err := NewUser("alice", "s3cret-pass", RoleViewer)
	require.NoError(t, err)

	require.NoError(t, user.ChangeRole(RoleAdmin))
	assert.True(t, Principal{Role: user.Role}.IsAdmin())

	require.Error(t, user.ChangeRole(Role("root")))
	assert.Equal(t, RoleAdmin, user.Role)
}

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()

	_, ok := PrincipalFrom(ctx)
	assert.False(t, ok)

	principal := Principal{UserID: uuid.New(), Username: "alice", Role: RoleAdmin}
	ctx = WithPrincipal(ctx, principal)

	got, ok := PrincipalFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, principal, got)
	assert.True(t, got.IsAdmin())
}
