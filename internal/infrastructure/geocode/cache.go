package geocode

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yourplaces/backend/internal/domain/entity"
	"github.com/yourplaces/backend/pkg/helpers"
)

// Resolver is what the cache wraps; *Client satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, address string) (entity.Location, error)
}

// CachedResolver memoizes successful lookups in Redis. Addresses never
// move, so a long TTL is safe; cache failures degrade to the inner
// resolver and are only logged.
type CachedResolver struct {
	inner  Resolver
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachedResolver(inner Resolver, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *CachedResolver {
	return &CachedResolver{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func cacheKey(address string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(address))
}

func (r *CachedResolver) Resolve(ctx context.Context, address string) (entity.Location, error) {
	key := cacheKey(address)

	if r.rdb != nil {
		var loc entity.Location
		hit, err := helpers.RedisGetJSON(ctx, r.rdb, key, &loc)
		if err != nil && r.logger != nil {
			r.logger.WithError(err).WithField("key", key).Warn("geocode cache read failed")
		}
		if hit {
			return loc, nil
		}
	}

	loc, err := r.inner.Resolve(ctx, address)
	if err != nil {
		return entity.Location{}, err
	}

	if r.rdb != nil {
		if err := helpers.RedisSetJSON(ctx, r.rdb, key, loc, r.ttl); err != nil && r.logger != nil {
			r.logger.WithError(err).WithField("key", key).Warn("geocode cache write failed")
		}
	}
	return loc, nil
}
