package views

import (
	"time"

	"fairprice/core"
	"fairprice/service/oracle"

	"github.com/shopspring/decimal"
)

// Asset asset pricing configuration
type Asset struct {
	AssetID             string          `json:"asset_id"`
	Decimals            uint8           `json:"decimals"`
	Source              string          `json:"source"`
	IsManual            bool            `json:"is_manual"`
	ManualPrice         decimal.Decimal `json:"manual_price"`
	FeedID              string          `json:"feed_id,omitempty"`
	Underlying          string          `json:"underlying,omitempty"`
	NativeAsset         string          `json:"native_asset,omitempty"`
	NativeAssetDecimals uint8           `json:"native_asset_decimals,omitempty"`
	MinRate             decimal.Decimal `json:"min_rate"`
	MaxRate             decimal.Decimal `json:"max_rate"`
}

// AssetView render asset
func AssetView(asset *core.Asset) *Asset {
	v := &Asset{
		AssetID:             asset.AssetID,
		Decimals:            asset.Decimals,
		IsManual:            asset.IsManual,
		FeedID:              asset.FeedID,
		Underlying:          asset.Underlying,
		NativeAsset:         asset.NativeAsset,
		NativeAssetDecimals: asset.NativeAssetDecimals,
	}

	switch {
	case asset.IsManual:
		v.Source = string(core.PriceSourceManual)
		v.ManualPrice = asset.ManualPrice.Decimal()
	case asset.IsDerived():
		v.Source = string(core.PriceSourceDerived)
	case asset.HasFeed():
		v.Source = string(core.PriceSourceFeed)
	}

	if min, max, ok := asset.RateBounds(); ok {
		v.MinRate = min.Decimal()
		v.MaxRate = max.Decimal()
	}

	return v
}

// Price cached price
type Price struct {
	AssetID   string          `json:"asset_id"`
	Price     decimal.Decimal `json:"price"`
	Raw       string          `json:"raw"`
	Source    string          `json:"source"`
	Timestamp int64           `json:"timestamp"`
	Age       int64           `json:"age"`
}

// PriceView render cached price
func PriceView(p *core.Price, now time.Time) *Price {
	return &Price{
		AssetID:   p.AssetID,
		Price:     p.Price.Decimal(),
		Raw:       p.Price.String(),
		Source:    string(p.Source),
		Timestamp: p.Timestamp,
		Age:       int64(p.Age(now) / time.Second),
	}
}

// Resolution resolved price
type Resolution struct {
	AssetID   string          `json:"asset_id"`
	Price     decimal.Decimal `json:"price"`
	Raw       string          `json:"raw"`
	Source    string          `json:"source"`
	Timestamp int64           `json:"timestamp"`
	Rate      decimal.Decimal `json:"rate"`
}

// ResolutionView render resolution
func ResolutionView(r *oracle.Resolution) *Resolution {
	v := &Resolution{
		AssetID:   r.AssetID,
		Price:     r.Price.Decimal(),
		Raw:       r.Price.String(),
		Source:    string(r.Source),
		Timestamp: r.Timestamp,
	}

	if !r.Rate.IsZero() {
		v.Rate = r.Rate.Decimal()
	}

	return v
}

// Age price age, -1 means no price
type Age struct {
	AssetID string `json:"asset_id"`
	Age     int64  `json:"age"`
	Fresh   bool   `json:"fresh"`
}

// AgeView render price age
func AgeView(assetID string, age time.Duration, fresh bool) *Age {
	v := &Age{AssetID: assetID, Age: -1, Fresh: fresh}
	if age != oracle.InfiniteAge {
		v.Age = int64(age / time.Second)
	}

	return v
}

// Settings oracle settings, periods in seconds
type Settings struct {
	StalePeriod         int64  `json:"stale_period"`
	FallbackStalePeriod int64  `json:"fallback_stale_period"`
	Mode                string `json:"mode"`
	MinStalePeriod      int64  `json:"min_stale_period"`
	MaxStalePeriod      int64  `json:"max_stale_period"`
	MaxRecursionDepth   int    `json:"max_recursion_depth"`
}

// SettingsView render settings and limits
func SettingsView(s core.Settings, l core.Limits) *Settings {
	return &Settings{
		StalePeriod:         int64(s.StalePeriod / time.Second),
		FallbackStalePeriod: int64(s.FallbackStalePeriod / time.Second),
		Mode:                string(s.Mode),
		MinStalePeriod:      int64(l.MinStalePeriod / time.Second),
		MaxStalePeriod:      int64(l.MaxStalePeriod / time.Second),
		MaxRecursionDepth:   l.MaxRecursionDepth,
	}
}
