package dataset

import (
	"context"
	"sync"

	"github.com/uyouii/automation-impact/utils"
	"go.uber.org/zap"
)

// Cache holds the latest Snapshot of a Source for a session. The snapshot is
// loaded lazily and reloaded once the source fingerprint changes.
type Cache struct {
	mu       sync.Mutex
	source   Source
	snapshot *Snapshot
}

func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

func (c *Cache) Source() Source {
	return c.source
}

// Get returns the cached snapshot, reloading it first when the source changed.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	logger := utils.GetLogger(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	fingerprint, err := c.source.Fingerprint(ctx)
	if err != nil {
		logger.Error("dataset fingerprint failed", zap.String("source", c.source.Name()), zap.Error(err))
		return nil, err
	}
	if c.snapshot != nil && c.snapshot.Fingerprint == fingerprint {
		return c.snapshot, nil
	}

	snapshot, err := c.source.Load(ctx)
	if err != nil {
		logger.Error("dataset load failed", zap.String("source", c.source.Name()), zap.Error(err))
		return nil, err
	}

	logger.Info("dataset loaded", zap.String("source", c.source.Name()),
		zap.String("snapshot", snapshot.ID), zap.Int("records", len(snapshot.Records)),
		zap.Int("dropped", snapshot.Dropped))
	c.snapshot = snapshot
	return snapshot, nil
}

// Invalidate drops the cached snapshot so the next Get reloads.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
}
