package geo

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const geocodeCacheTTL = 24 * time.Hour

// GeocodeCache stores resolved candidate lists in redis so repeated lookups
// of the same address skip the provider. A nil cache is a no-op, so the
// resolvers never have to care whether redis is configured.
type GeocodeCache struct {
	rdb *redis.Client
}

// NewGeocodeCache returns nil when addr is empty, which disables caching.
func NewGeocodeCache(addr string) *GeocodeCache {
	if addr == "" {
		return nil
	}
	return &GeocodeCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (c *GeocodeCache) Get(ctx context.Context, provider, query string) []ResolvedAddress {
	if c == nil {
		return nil
	}
	raw, err := c.rdb.Get(ctx, cacheKey(provider, query)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Println("[GEO] [ERROR] geocode cache get failed:", err)
		}
		return nil
	}
	var candidates []ResolvedAddress
	if err := json.Unmarshal(raw, &candidates); err != nil || len(candidates) == 0 {
		return nil
	}
	return candidates
}

func (c *GeocodeCache) Set(ctx context.Context, provider, query string, candidates []ResolvedAddress) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(candidates)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(provider, query), raw, geocodeCacheTTL).Err(); err != nil {
		log.Println("[GEO] [ERROR] geocode cache set failed:", err)
	}
}

func cacheKey(provider, query string) string {
	return "geocode:" + provider + ":" + strings.ToLower(strings.TrimSpace(query))
}
