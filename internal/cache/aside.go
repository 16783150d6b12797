package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"fittrack/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: on a hit, dest is populated from
// the cached JSON; on a miss the loader runs and its result is stored under
// key with the given TTL. With no Redis client the loader always runs.
// Cache write failures are swallowed; the loader result is authoritative.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, loader func() error) error {
	if client == nil {
		return loader()
	}

	prefix := keyPrefix(key)

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
			observability.CacheResults.WithLabelValues(prefix, "hit").Inc()
			return nil
		}
		// Corrupt entry: drop it and fall through to the loader.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		// Redis unavailable mid-flight; serve from the store.
		return loader()
	}

	observability.CacheResults.WithLabelValues(prefix, "miss").Inc()

	if err := loader(); err != nil {
		return err
	}

	if encoded, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, encoded, ttl)
	}
	return nil
}

func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
