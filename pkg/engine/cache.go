package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autolayout/pkg/cache"
	"github.com/matzehuels/autolayout/pkg/observability"
)

const cacheKeyType = "layout"

// CachingEngine replays engine results for byte-identical requests.
//
// The cache is best effort: backend errors and undecodable entries count as
// misses, and engine errors are never stored.
type CachingEngine struct {
	Engine Engine
	Name   string
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL of stored results. Zero means cache.TTLLayout.
	TTL time.Duration
}

// NewCachingEngine wraps e. name distinguishes engines sharing one cache.
// A nil cache disables caching; a nil keyer uses cache.DefaultKeyer.
func NewCachingEngine(e Engine, name string, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *CachingEngine {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &CachingEngine{Engine: e, Name: name, Cache: c, Keyer: keyer, Logger: logger}
}

// Layout returns a cached result when one exists, otherwise delegates.
func (c *CachingEngine) Layout(ctx context.Context, g Graph) (*Result, error) {
	hash, err := cache.HashJSON(g)
	if err != nil {
		return c.Engine.Layout(ctx, g)
	}
	key := c.Keyer.LayoutKey(c.Name, hash)

	if data, hit, err := c.Cache.Get(ctx, key); err != nil {
		c.Logger.Debug("cache read failed", "key", key, "err", err)
	} else if hit {
		var res Result
		if err := json.Unmarshal(data, &res); err == nil {
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			c.Logger.Debug("engine result from cache", "engine", c.Name, "nodes", len(res.Nodes))
			return &res, nil
		}
		_ = c.Cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, cacheKeyType)

	res, err := c.Engine.Layout(ctx, g)
	if err != nil || res == nil {
		return res, err
	}

	if data, err := json.Marshal(res); err == nil {
		ttl := c.TTL
		if ttl <= 0 {
			ttl = cache.TTLLayout
		}
		if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
			c.Logger.Debug("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
		}
	}
	return res, nil
}
