package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/infra/database"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stride.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestLinkRepositoryUniquePair(t *testing.T) {
	repo := NewLinkRepository(testDB(t))
	ctx := context.Background()

	link := domain.Link{ID: domain.NewID(), User: "alice", Item: "p1", CDate: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, link))

	// The unique index on (user, item) rejects the duplicate pair even when
	// the application-level existence check is bypassed.
	dup := domain.Link{ID: domain.NewID(), User: "alice", Item: "p1", CDate: time.Now().UTC()}
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// A different user linking the same item is a distinct pair.
	other := domain.Link{ID: domain.NewID(), User: "bob", Item: "p1", CDate: time.Now().UTC()}
	assert.NoError(t, repo.Create(ctx, other))
}

func TestLinkRepositoryExistsAndDelete(t *testing.T) {
	repo := NewLinkRepository(testDB(t))
	ctx := context.Background()

	link := domain.Link{ID: domain.NewID(), User: "alice", Item: "p1", CDate: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, link))

	exists, err := repo.Exists(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "alice", "p2")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.DeleteByUserItem(ctx, "alice", "p1"))
	exists, err = repo.Exists(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting zero rows is not an error.
	assert.NoError(t, repo.DeleteByUserItem(ctx, "alice", "p1"))
}

func TestLinkRepositoryGetOrdering(t *testing.T) {
	repo := NewLinkRepository(testDB(t))
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		link := domain.Link{
			ID:    domain.NewID(),
			User:  "alice",
			Item:  domain.ID([]string{"p1", "p2", "p3"}[i]),
			CDate: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, link))
	}

	links, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, domain.ID("p3"), links[0].Item)
	assert.Equal(t, domain.ID("p1"), links[2].Item)

	byUser, err := repo.GetByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, byUser, 3)
}

func TestPostRepositoryNewestFirst(t *testing.T) {
	db := testDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		post := domain.Post{
			ID:      domain.NewID(),
			Author:  "alice",
			Content: []string{"first", "second", "third"}[i],
			CDate:   base.Add(time.Duration(i) * time.Minute),
			MDate:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, post))
	}

	posts, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Content)
	assert.Equal(t, "first", posts[2].Content)
}

func TestIdentityRepositoryBatchOrder(t *testing.T) {
	db := testDB(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()

	seed := []struct{ id, name string }{
		{"u1", "alice"}, {"u2", "bob"}, {"u3", "carol"},
	}
	for _, s := range seed {
		require.NoError(t, db.Exec(
			"INSERT INTO users (id, username, c_date) VALUES (?, ?, ?)",
			s.id, s.name, time.Now().UTC()).Error)
	}

	names, err := repo.GetNames(ctx, []domain.ID{"u3", "u1", "u3", "unknown"})
	require.NoError(t, err)
	assert.Equal(t, []string{"carol", "alice", "carol", ""}, names)
}
