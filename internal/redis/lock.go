package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AccountLocker is the interface for bulk-account locking. The lock is
// advisory: the compare-and-set debit stays correct without it, holding
// the lock just avoids retry churn when several sessions charge the
// same account.
type AccountLocker interface {
	AcquireAccountLock(ctx context.Context, accountID string, ttl time.Duration) (bool, error)
	ReleaseAccountLock(ctx context.Context, accountID string) error
}

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireAccountLock attempts to acquire a lock for the given bulk
// account. Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireAccountLock(ctx context.Context, accountID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:account:%s", accountID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseAccountLock releases the lock for the given bulk account.
func (s *LockStore) ReleaseAccountLock(ctx context.Context, accountID string) error {
	key := fmt.Sprintf("lock:account:%s", accountID)

	return s.client.Del(ctx, key).Err()
}

var _ AccountLocker = (*LockStore)(nil)
