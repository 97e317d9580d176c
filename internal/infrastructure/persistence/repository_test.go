package persistence

import (
	"context"
	"testing"

	"github.com/costview/backend/internal/domain/identity"
	"github.com/costview/backend/internal/domain/tag"
	"github.com/costview/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:       "sqlite",
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func TestTagRepository(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormTagRepository(db.DB)
	ctx := context.Background()

	t.Run("absent lookups return nil", func(t *testing.T) {
		found, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, found)

		found, err = repo.FindByName(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	created, err := tag.NewTag("infra", strPtr("#ff0000"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, created))
	require.NotZero(t, created.ID)

	t.Run("find by id and name", func(t *testing.T) {
		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "infra", found.Name)
		require.NotNil(t, found.Color)
		assert.Equal(t, "#ff0000", *found.Color)

		found, err = repo.FindByName(ctx, "infra")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("update round trip", func(t *testing.T) {
		require.NoError(t, created.Update("platform", nil))
		require.NoError(t, repo.Save(ctx, created))

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "platform", found.Name)
		assert.Nil(t, found.Color)
	})

	t.Run("list is ordered by name", func(t *testing.T) {
		second, err := tag.NewTag("alpha", nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, second))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "alpha", all[0].Name)
		assert.Equal(t, "platform", all[1].Name)

		subset, err := repo.FindByIDs(ctx, []uint{second.ID})
		require.NoError(t, err)
		require.Len(t, subset, 1)
		assert.Equal(t, "alpha", subset[0].Name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, created.ID))
		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestInvoiceTagRepository(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormInvoiceTagRepository(db.DB)
	ctx := context.Background()

	first, err := tag.NewInvoiceTag("inv-1", 1)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))
	second, err := tag.NewInvoiceTag("inv-1", 2)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, second))
	other, err := tag.NewInvoiceTag("inv-2", 1)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	t.Run("find by invoice", func(t *testing.T) {
		rows, err := repo.FindByInvoice(ctx, "inv-1")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, uint(1), rows[0].TagID)
		assert.Equal(t, uint(2), rows[1].TagID)
	})

	t.Run("find pair", func(t *testing.T) {
		row, err := repo.Find(ctx, "inv-1", 2)
		require.NoError(t, err)
		require.NotNil(t, row)

		row, err = repo.Find(ctx, "inv-1", 99)
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("duplicate pair rejected by unique index", func(t *testing.T) {
		dup, err := tag.NewInvoiceTag("inv-1", 1)
		require.NoError(t, err)
		assert.Error(t, repo.Save(ctx, dup))
	})

	t.Run("delete pair", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "inv-1", 2))
		row, err := repo.Find(ctx, "inv-1", 2)
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("delete by tag cascades across invoices", func(t *testing.T) {
		require.NoError(t, repo.DeleteByTag(ctx, 1))

		rows, err := repo.FindByInvoice(ctx, "inv-1")
		require.NoError(t, err)
		assert.Empty(t, rows)
		rows, err = repo.FindByInvoice(ctx, "inv-2")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestUserRepository(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormUserRepository(db.DB)
	ctx := context.Background()

	t.Run("absent lookups return nil", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	created, err := identity.NewUser("alice", "s3cret-pass", identity.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, created))

	t.Run("find by id and username", func(t *testing.T) {
		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "alice", found.Username)
		assert.True(t, found.CheckPassword("s3cret-pass"))

		found, err = repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("list ordered by username", func(t *testing.T) {
		second, err := identity.NewUser("bob", "s3cret-pass", identity.RoleViewer)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, second))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "alice", all[0].Username)
		assert.Equal(t, "bob", all[1].Username)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, created.ID))
		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
