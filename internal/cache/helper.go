package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	TheoryKeyPrefix = "theory:%d"
	TheoriesListKey = "theories:list"
)

const (
	TheoryTTL = 30 * time.Minute
	ListTTL   = 1 * time.Minute
)

func TheoryKey(theoryID uint) string {
	return fmt.Sprintf(TheoryKeyPrefix, theoryID)
}

// Aside implements the cache-aside pattern: read dest from Redis by key, or
// run fetch and store its result under key with the given TTL. When Redis is
// unavailable it degrades to calling fetch directly. fetch must populate the
// value dest points at.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry; drop it and fall through to the source of truth.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		// Redis error other than a miss: degrade to the database.
		return fetch()
	}

	if err := fetch(); err != nil {
		return err
	}

	if raw, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, raw, ttl)
	}
	return nil
}

// Invalidate removes a single cache entry.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateTheory drops the cached record for one theory.
func InvalidateTheory(ctx context.Context, theoryID uint) {
	Invalidate(ctx, TheoryKey(theoryID))
}

// InvalidateTheoriesList drops the cached browse listing.
func InvalidateTheoriesList(ctx context.Context) {
	Invalidate(ctx, TheoriesListKey)
}
