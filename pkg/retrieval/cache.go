package retrieval

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"training-builder-be/internal/entity"
	"training-builder-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// CachedSource is a read-through redis cache over a similarity source.
// Redis is best-effort: any cache failure falls through to the inner source
// so an unhealthy cache never degrades retrieval.
type CachedSource struct {
	inner  Source
	client *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewCachedSource(inner Source, client *redis.Client, ttl time.Duration, log logger.ILogger) *CachedSource {
	return &CachedSource{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

func (c *CachedSource) Search(ctx context.Context, query SourceQuery) ([]entity.CorpusItem, error) {
	key := cacheKey(query)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var items []entity.CorpusItem
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
		// Corrupt entry: drop it and refetch.
		c.client.Del(ctx, key)
	}

	items, err := c.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(items); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Debug("retrieval", "failed to cache similarity result", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return items, nil
}

func cacheKey(query SourceQuery) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", query.QueryText, query.Category, query.MaxCandidates)))
	return "retrieval:query:" + hex.EncodeToString(sum[:16])
}
