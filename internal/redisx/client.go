package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// Locker is an advisory lock over SET NX. The TTL bounds how long a crashed
// holder can block others.
type Locker struct{ C *redis.Client }

func (l Locker) TryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	return l.C.SetNX(ctx, key, token, ttl).Result()
}

// Unlock releases the lock only if we still hold it.
func (l Locker) Unlock(ctx context.Context, key, token string) error {
	const script = `
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		end
		return 0`
	return l.C.Eval(ctx, script, []string{key}, token).Err()
}
