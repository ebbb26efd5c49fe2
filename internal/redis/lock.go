package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis. The workflows assume
// at most one in-flight transition per booking identity; these locks
// are how the embedding service provides that serialization.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireBookingLock attempts to acquire the transition lock for a
// client's booking. Returns true if the lock was acquired, false if
// already held.
func (s *LockStore) AcquireBookingLock(ctx context.Context, clientID int64, ttl time.Duration) (bool, error) {
	key := "lock:booking:" + formatID(clientID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseBookingLock releases the transition lock for a client's
// booking.
func (s *LockStore) ReleaseBookingLock(ctx context.Context, clientID int64) error {
	key := "lock:booking:" + formatID(clientID)

	return s.client.Del(ctx, key).Err()
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
