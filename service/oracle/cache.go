package oracle

import (
	"context"
	"math"
	"time"

	"fairprice/core"
	"fairprice/pkg/number"
)

// InfiniteAge age of an asset that was never resolved
const InfiniteAge = time.Duration(math.MaxInt64)

// PriceCache last valid price per asset
type PriceCache struct {
	store    core.PriceStore
	now      func() time.Time
	settings func() core.Settings
}

// Get returns a price with Timestamp == 0 when nothing is cached
func (c *PriceCache) Get(ctx context.Context, assetID string) (*core.Price, error) {
	return c.store.Find(ctx, assetID)
}

// Set stores price observed at ts, an older observation never replaces a newer one
func (c *PriceCache) Set(ctx context.Context, assetID string, price number.Wad, ts int64, source core.PriceSource) (bool, error) {
	return c.store.Save(ctx, &core.Price{
		AssetID:   assetID,
		Price:     price,
		Timestamp: ts,
		Source:    source,
	})
}

// IsFresh a price is cached and not older than the stale period
func (c *PriceCache) IsFresh(ctx context.Context, assetID string) (bool, error) {
	p, err := c.Get(ctx, assetID)
	if err != nil {
		return false, err
	}

	return p.Exists() && c.fresh(p, c.settings().StalePeriod), nil
}

// Age time since the cached price was observed, InfiniteAge when nothing is cached
func (c *PriceCache) Age(ctx context.Context, assetID string) (time.Duration, error) {
	p, err := c.Get(ctx, assetID)
	if err != nil {
		return 0, err
	}

	if !p.Exists() {
		return InfiniteAge, nil
	}

	return time.Duration(c.ageSeconds(p.Timestamp)) * time.Second, nil
}

func (c *PriceCache) fresh(p *core.Price, period time.Duration) bool {
	return c.ageSeconds(p.Timestamp) <= int64(period/time.Second)
}

// ageSeconds whole seconds since ts, never negative
func (c *PriceCache) ageSeconds(ts int64) int64 {
	age := c.now().Unix() - ts
	if age < 0 {
		return 0
	}

	return age
}
