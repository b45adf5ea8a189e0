package record

import (
	"context"
	"encoding/json"
	"time"

	"github.com/strlens/analyzer/internal/models"
	pkgredis "github.com/strlens/analyzer/internal/pkg/redis"
	"go.uber.org/zap"
)

const (
	cacheKeyPrefix     = "sa:string:"
	tombstoneKeyPrefix = "sa:string:del:"
)

// Cache is a best-effort read-through cache of single records keyed by
// content hash. A nil *Cache, or one without a client, caches nothing.
//
// Invalidate leaves a tombstone for one TTL; Set skips hashes that carry
// one, so a read that raced a delete cannot repopulate the entry.
type Cache struct {
	rc     *pkgredis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCache(rc *pkgredis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{rc: rc, ttl: ttl, logger: logger}
}

func (c *Cache) enabled() bool { return c != nil && c.rc != nil && c.ttl > 0 }

func (c *Cache) Get(ctx context.Context, hash string) (*models.AnalyzedString, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.rc.Get(ctx, cacheKeyPrefix+hash)
	if err != nil {
		c.logger.Warn("record cache read failed", zap.String("hash", hash), zap.Error(err))
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	var s models.AnalyzedString
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		c.logger.Warn("record cache entry corrupt", zap.String("hash", hash), zap.Error(err))
		_ = c.rc.Del(ctx, cacheKeyPrefix+hash)
		return nil, false
	}
	return &s, true
}

func (c *Cache) Set(ctx context.Context, s *models.AnalyzedString) {
	if !c.enabled() || s == nil {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	hash := s.Properties.ContentHash
	if _, err := c.rc.SetUnless(ctx, cacheKeyPrefix+hash, tombstoneKeyPrefix+hash, raw, c.ttl); err != nil {
		c.logger.Warn("record cache write failed", zap.String("hash", hash), zap.Error(err))
	}
}

func (c *Cache) Invalidate(ctx context.Context, hash string) {
	if !c.enabled() {
		return
	}
	if err := c.rc.Tombstone(ctx, cacheKeyPrefix+hash, tombstoneKeyPrefix+hash, c.ttl); err != nil {
		c.logger.Warn("record cache invalidation failed", zap.String("hash", hash), zap.Error(err))
	}
}
