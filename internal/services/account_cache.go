package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/corebank/ledger/internal/models"
)

// AccountCache keeps short-lived account snapshots in Redis to take
// read pressure off the store. It is never authoritative: a miss or any
// Redis error falls through to the database, and mutating operations
// invalidate after their commit. A nil client disables caching entirely.
type AccountCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewAccountCache(client *redis.Client, ttl time.Duration) *AccountCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &AccountCache{redis: client, ttl: ttl}
}

func accountKey(id string) string {
	return "account:" + id
}

// Get returns a cached snapshot, or ok=false on miss, disabled cache or
// any Redis fault.
func (c *AccountCache) Get(ctx context.Context, id string) (models.Account, bool) {
	if c == nil || c.redis == nil {
		return models.Account{}, false
	}
	data, err := c.redis.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[CACHE] Get failed for account %s: %v", id, err)
		}
		return models.Account{}, false
	}
	var account models.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return models.Account{}, false
	}
	return account, true
}

// Set stores a snapshot with the cache TTL. Failures are logged and ignored.
func (c *AccountCache) Set(ctx context.Context, account models.Account) {
	if c == nil || c.redis == nil {
		return
	}
	data, err := json.Marshal(account)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, accountKey(account.ID), data, c.ttl).Err(); err != nil {
		log.Printf("[CACHE] Set failed for account %s: %v", account.ID, err)
	}
}

// Invalidate drops the snapshot after a committed mutation.
func (c *AccountCache) Invalidate(ctx context.Context, id string) {
	if c == nil || c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, accountKey(id)).Err(); err != nil {
		log.Printf("[CACHE] Invalidate failed for account %s: %v", id, err)
	}
}
