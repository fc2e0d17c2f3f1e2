package contracts

import (
	"context"
)

// DirectoryStore wraps the shared key-value store backing the presence
// directory. Single-key operations only; no transactional semantics are
// assumed beyond that.
type DirectoryStore interface {
	// Set stores/overwrites the connection id for a user.
	Set(ctx context.Context, userID, connID string) error
	// Get returns the stored connection id, or domain.ErrEntryNotFound.
	Get(ctx context.Context, userID string) (string, error)
	// Del removes the entry; absent keys are not an error.
	Del(ctx context.Context, userID string) error
	// Keys enumerates every registered user id, store order.
	Keys(ctx context.Context) ([]string, error)
}
