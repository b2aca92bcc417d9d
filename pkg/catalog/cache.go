package catalog

import (
	"sync"
	"time"

	"github.com/papercomputeco/buildx/pkg/llm"
)

type modelsCache struct {
	mu       sync.RWMutex
	models   []llm.ModelInfo
	cachedAt time.Time
	ttl      time.Duration
	now      func() time.Time
}

func newModelsCache(ttl time.Duration) *modelsCache {
	return &modelsCache{ttl: ttl, now: time.Now}
}

func (c *modelsCache) get() []llm.ModelInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.models == nil || c.now().Sub(c.cachedAt) > c.ttl {
		return nil
	}
	return c.models
}

func (c *modelsCache) set(models []llm.ModelInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.models = models
	c.cachedAt = c.now()
}
