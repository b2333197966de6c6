package core

import (
	"context"
	"time"

	"fairprice/pkg/number"
)

// Asset pricing configuration of one asset
type Asset struct {
	ID       int64  `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	AssetID  string `sql:"size:64;unique_index:idx_assets_asset_id" json:"asset_id"`
	Decimals uint8  `sql:"default:0" json:"decimals"`
	// manual override, ManualPrice is kept after the flag is cleared
	IsManual    bool       `sql:"default:false" json:"is_manual"`
	ManualPrice number.Wad `sql:"type:varchar(80)" json:"manual_price"`
	FeedID      string     `sql:"size:128" json:"feed_id,omitempty"`
	// derived (vault share) pricing, Underlying names the asset whose price values the shares
	Underlying string `sql:"size:64" json:"underlying,omitempty"`
	// decimals of the asset the vault itself converts into
	NativeAsset         string     `sql:"size:64" json:"native_asset,omitempty"`
	NativeAssetDecimals uint8      `sql:"default:0" json:"native_asset_decimals,omitempty"`
	MinRate             number.Wad `sql:"type:varchar(80)" json:"min_rate"`
	MaxRate             number.Wad `sql:"type:varchar(80)" json:"max_rate"`
	Version             int64      `sql:"default:0" json:"version"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// IsDerived asset is priced through a vault conversion rate
func (a *Asset) IsDerived() bool {
	return a.Underlying != ""
}

// HasFeed asset has an external feed
func (a *Asset) HasFeed() bool {
	return a.FeedID != ""
}

// RateBounds per-asset rate band, ok is false when unset
func (a *Asset) RateBounds() (min, max number.Wad, ok bool) {
	if a.MaxRate.IsZero() {
		return number.Zero(), number.Zero(), false
	}

	return a.MinRate, a.MaxRate, true
}

// SupportedAsset registry entry, the ID order is the registration order
type SupportedAsset struct {
	ID        int64     `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID   string    `sql:"size:64;unique_index:idx_supported_assets_asset_id" json:"asset_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AssetStore asset store interface
type AssetStore interface {
	// Find returns an empty asset (ID == 0) when nothing is configured
	Find(ctx context.Context, assetID string) (*Asset, error)
	// Save creates or overwrites the asset configuration
	Save(ctx context.Context, asset *Asset) error
	// AddSupported appends to the registry, reports whether it was new
	AddSupported(ctx context.Context, assetID string) (bool, error)
	// ListSupported registry in insertion order
	ListSupported(ctx context.Context) ([]string, error)
}
