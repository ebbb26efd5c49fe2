package redis

import (
	"context"
	"time"
)

// CacheStoreInterface defines the interface for client cache operations.
type CacheStoreInterface interface {
	GetClient(ctx context.Context, clientID int64) (*CachedClient, error)
	SetClient(ctx context.Context, client *CachedClient) error
	InvalidateClient(ctx context.Context, clientID int64) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireBookingLock(ctx context.Context, clientID int64, ttl time.Duration) (bool, error)
	ReleaseBookingLock(ctx context.Context, clientID int64) error
}

// Ensure concrete types implement interfaces.
var (
	_ CacheStoreInterface = (*CacheStore)(nil)
	_ LockStoreInterface  = (*LockStore)(nil)
)
