package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"notebooklm-bridge/internal/models"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const notebookCacheKey = "notebooklm-bridge:notebooks"

// CacheBackend is the shared second cache tier (RedisService in production)
type CacheBackend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// NotebookCache holds the last notebook listing for a bounded time.
// L1 is in-process; L2, when configured, lets several bridge replicas share one listing.
type NotebookCache struct {
	local  *cache.Cache
	remote CacheBackend
	ttl    time.Duration
}

// NewNotebookCache creates the cache. ttl <= 0 disables caching; remote may be nil.
func NewNotebookCache(ttl time.Duration, remote CacheBackend) *NotebookCache {
	c := &NotebookCache{remote: remote, ttl: ttl}
	if ttl > 0 {
		c.local = cache.New(ttl, 2*ttl)
	}
	return c
}

// Enabled reports whether entries are kept at all
func (c *NotebookCache) Enabled() bool {
	return c.local != nil
}

// Get returns a copy of the cached listing
func (c *NotebookCache) Get(ctx context.Context) ([]models.Notebook, bool) {
	if !c.Enabled() {
		return nil, false
	}

	if value, found := c.local.Get(notebookCacheKey); found {
		if notebooks, ok := value.([]models.Notebook); ok {
			notebookCacheLookups.WithLabelValues("hit_local").Inc()
			return cloneNotebooks(notebooks), true
		}
	}

	if c.remote != nil {
		raw, err := c.remote.Get(ctx, notebookCacheKey)
		switch {
		case err == nil:
			var notebooks []models.Notebook
			jsonErr := json.Unmarshal([]byte(raw), &notebooks)
			if jsonErr == nil {
				c.local.Set(notebookCacheKey, cloneNotebooks(notebooks), cache.DefaultExpiration)
				notebookCacheLookups.WithLabelValues("hit_remote").Inc()
				return notebooks, true
			}
			log.Printf("⚠️  [NOTEBOOK-CACHE] Discarding unreadable remote entry: %v", jsonErr)
		case !errors.Is(err, redis.Nil):
			log.Printf("⚠️  [NOTEBOOK-CACHE] Remote lookup failed: %v", err)
		}
	}

	notebookCacheLookups.WithLabelValues("miss").Inc()
	return nil, false
}

// Set replaces the cached listing in both tiers
func (c *NotebookCache) Set(ctx context.Context, notebooks []models.Notebook) {
	if !c.Enabled() {
		return
	}

	c.local.Set(notebookCacheKey, cloneNotebooks(notebooks), cache.DefaultExpiration)

	if c.remote != nil {
		data, err := json.Marshal(notebooks)
		if err != nil {
			return
		}
		if err := c.remote.Set(ctx, notebookCacheKey, string(data), c.ttl); err != nil {
			log.Printf("⚠️  [NOTEBOOK-CACHE] Remote store failed: %v", err)
		}
	}
}

// Invalidate drops the cached listing from both tiers
func (c *NotebookCache) Invalidate(ctx context.Context) {
	if !c.Enabled() {
		return
	}

	c.local.Delete(notebookCacheKey)
	if c.remote != nil {
		if err := c.remote.Delete(ctx, notebookCacheKey); err != nil {
			log.Printf("⚠️  [NOTEBOOK-CACHE] Remote invalidation failed: %v", err)
		}
	}
	log.Println("🗑️  [NOTEBOOK-CACHE] Notebook list invalidated")
}

func cloneNotebooks(notebooks []models.Notebook) []models.Notebook {
	out := make([]models.Notebook, len(notebooks))
	copy(out, notebooks)
	return out
}
