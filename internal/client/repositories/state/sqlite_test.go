package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := Open(context.Background(), "file:statetest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Clear(context.Background()))
	return repo
}

func TestRepository_SetGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyToken, []byte("jwt-1")))
	v, err := repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("jwt-1"), v)

	// Upsert replaces.
	require.NoError(t, repo.Set(ctx, KeyToken, []byte("jwt-2")))
	v, err = repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("jwt-2"), v)
}

func TestRepository_MissingKeyIsNil(t *testing.T) {
	repo := setupRepo(t)

	v, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestRepository_DeleteAndClear(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyToken, []byte("a")))
	require.NoError(t, repo.Set(ctx, KeyLastProjectID, []byte("p1")))

	require.NoError(t, repo.Delete(ctx, KeyToken))
	v, err := repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, repo.Clear(ctx))
	v, err = repo.Get(ctx, KeyLastProjectID)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestRepository_SetMany(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetMany(ctx, map[string][]byte{
		KeyToken:           []byte("jwt-1"),
		KeyIsAuthenticated: []byte("1"),
	}))

	v, err := repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("jwt-1"), v)

	v, err = repo.Get(ctx, KeyIsAuthenticated)
	require.NoError(t, err)
	require.Equal(t, []byte("1"), v)
}
