package sql

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube-dev/yatube/internal/storage/storagetest"
	"github.com/yatube-dev/yatube/shared/domain"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(DriverSQLite, filepath.Join(t.TempDir(), "yatube.db"), DefaultConnectionConfig())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T, now func() time.Time) storagetest.Store {
		return newSQLiteStore(t).WithClock(now)
	})
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yatube.db")

	first, err := New(DriverSQLite, path, DefaultConnectionConfig())
	require.NoError(t, err)
	_, err = first.CreateUser(context.Background(), "auth", "hash")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(DriverSQLite, path, DefaultConnectionConfig())
	require.NoError(t, err)
	defer second.Close()

	user, err := second.GetUserByUsername(context.Background(), "auth")
	require.NoError(t, err)
	assert.Equal(t, "auth", user.Username)
}

func TestRejectsUnknownDriver(t *testing.T) {
	_, err := New("mysql", "whatever", DefaultConnectionConfig())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestPing(t *testing.T) {
	store := newSQLiteStore(t)
	assert.NoError(t, store.Ping(context.Background()))
	assert.Equal(t, DriverSQLite, store.Driver())
}

func TestForeignKeysEnforced(t *testing.T) {
	store := newSQLiteStore(t)
	_, err := store.db.Exec("INSERT INTO posts (text, author_id, created_at) VALUES ('x', 42, '2024-01-01 00:00:00')")
	assert.Error(t, err, "posts must reference an existing author")
}

func TestReferencedGroupIsKept(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	user, err := store.CreateUser(ctx, "auth", "hash")
	require.NoError(t, err)
	group, err := store.CreateGroup(ctx, domain.GroupCreationData{Title: "Тестовая группа", Slug: "test-slug"})
	require.NoError(t, err)
	_, err = store.CreatePost(ctx, domain.PostCreationData{Text: "t", AuthorId: user.Id, GroupId: &group.Id})
	require.NoError(t, err)

	_, err = store.db.Exec("DELETE FROM post_groups WHERE id = ?", group.Id)
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "yatube.db", want: "yatube.db?_foreign_keys=on"},
		{in: "file:yatube.db?cache=shared", want: "file:yatube.db?cache=shared&_foreign_keys=on"},
		{in: "yatube.db?_fk=1", want: "yatube.db?_fk=1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sqliteDSN(tt.in), tt.in)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: users.username")))
}

func TestTimestampIsUTCMicroseconds(t *testing.T) {
	store := newSQLiteStore(t)
	local := time.Date(2024, 5, 1, 10, 0, 0, 123456789, time.FixedZone("X", 3*3600))
	store.WithClock(func() time.Time { return local })

	ts := store.timestamp()
	assert.Equal(t, time.UTC, ts.Location())
	assert.Equal(t, 123457000, ts.Nanosecond())

	user, err := store.CreateUser(context.Background(), "auth", "hash")
	require.NoError(t, err)
	post, err := store.CreatePost(context.Background(), domain.PostCreationData{Text: "t", AuthorId: user.Id})
	require.NoError(t, err)
	assert.True(t, post.CreatedAt.Equal(ts))
}
