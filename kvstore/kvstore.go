// Package kvstore is the durable key-value boundary the rest of the
// application persists through. Values are stored as JSON; every backend
// honors the same contract: Get reports false and leaves out untouched when
// the key is absent or unreadable, Set reports false and leaves the
// previously stored value intact when the write fails. Neither ever returns
// an error to the caller; failures are logged where they happen.
package kvstore

import "context"

type Store interface {
	Get(ctx context.Context, key string, out any) bool
	Set(ctx context.Context, key string, value any) bool
}
