// Package state persists the small set of client fields that survive
// restarts: bearer token, user profile, authenticated flag and the last-open
// project id. Everything else is rebuilt from the server on load.
package state

import "context"

// Keys of the persisted fields.
const (
	KeyToken           = "token"
	KeyUser            = "user"
	KeyIsAuthenticated = "is_authenticated"
	KeyLastProjectID   = "last_project_id"
)

// Repository is a small key-value store. Get returns nil (no error) for a
// missing key. SetMany writes all values or none.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
