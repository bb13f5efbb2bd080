package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Keys for the relay's push state. They mirror one schedule generation:
// storing a new schedule clears the sent set.
const (
	KeySubscription = "push:subscription"
	KeySchedule     = "push:schedule"
	KeySent         = "push:sent"
)

// KV is the narrow store the dispatcher runs against. Implementations may
// add transactional or optimistic-concurrency guarantees without the
// dispatcher changing.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
