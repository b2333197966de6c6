package core

import (
	"context"
	"time"

	"fairprice/pkg/number"
)

// PriceSource which tier produced a resolution
type PriceSource string

const (
	PriceSourceManual   PriceSource = "manual"
	PriceSourceDerived  PriceSource = "derived"
	PriceSourceFeed     PriceSource = "feed"
	PriceSourceFallback PriceSource = "fallback"
)

// Price last valid price of an asset
type Price struct {
	ID        int64       `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	AssetID   string      `sql:"size:64;unique_index:idx_prices_asset_id" json:"asset_id,omitempty"`
	Price     number.Wad  `sql:"type:varchar(80)" json:"price"`
	Timestamp int64       `sql:"default:0" json:"timestamp"`
	Source    PriceSource `sql:"size:16" json:"source,omitempty"`
	Version   int64       `sql:"default:0" json:"version,omitempty"`
	CreatedAt time.Time   `json:"created_at,omitempty"`
	UpdatedAt time.Time   `json:"updated_at,omitempty"`
}

// Exists price was resolved at least once
func (p *Price) Exists() bool {
	return p != nil && p.Timestamp > 0 && !p.Price.IsZero()
}

// Age time elapsed since the price was observed
func (p *Price) Age(now time.Time) time.Duration {
	return now.Sub(time.Unix(p.Timestamp, 0))
}

// PriceStore last valid price store interface
type PriceStore interface {
	// Find returns an empty price (Timestamp == 0) when the asset was never resolved
	Find(ctx context.Context, assetID string) (*Price, error)
	// Save writes price unless a newer one is already stored, reports whether it applied
	Save(ctx context.Context, price *Price) (bool, error)
}
