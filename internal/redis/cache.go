package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// ClientCacheTTL bounds how stale a cached client may get. Client
// attributes (card on file especially) change rarely but must not be
// served stale for long.
const ClientCacheTTL = 60 * time.Second

const clientCachePrefix = "cache:client:"

// CachedClient represents a cached client directory entry.
type CachedClient struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	CreditCard string `json:"credit_card"`
}

// GetClient retrieves a client from cache. Returns nil on a miss.
func (s *CacheStore) GetClient(ctx context.Context, clientID int64) (*CachedClient, error) {
	key := clientCacheKey(clientID)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var client CachedClient
	if err := json.Unmarshal(data, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// SetClient stores a client in cache.
func (s *CacheStore) SetClient(ctx context.Context, client *CachedClient) error {
	data, err := json.Marshal(client)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, clientCacheKey(client.ID), data, ClientCacheTTL).Err()
}

// InvalidateClient removes a client from cache.
func (s *CacheStore) InvalidateClient(ctx context.Context, clientID int64) error {
	return s.client.Del(ctx, clientCacheKey(clientID)).Err()
}

func clientCacheKey(clientID int64) string {
	return clientCachePrefix + formatID(clientID)
}
