package oracle

import (
	"context"
	"time"

	"fairprice/core"
	"fairprice/pkg/concurrency"
	"fairprice/pkg/number"

	"github.com/holiman/uint256"
)

// Resolution a resolved price and where it came from
type Resolution struct {
	AssetID string           `json:"asset_id"`
	Price   number.Wad       `json:"price"`
	Source  core.PriceSource `json:"source"`
	// observation time, the cached time for fallback and the underlying time for derived prices
	Timestamp int64 `json:"timestamp"`
	// vault conversion rate, derived prices only
	Rate number.Wad `json:"rate"`
}

// Oracle price resolution engine
type Oracle struct {
	assets   core.AssetStore
	feeds    core.FeedProvider
	vaults   core.VaultProvider
	notifier core.Notifier
	limits   core.Limits
	settings *settingsHolder
	cache    *PriceCache
	locks    *concurrency.KeyedMutex
	now      func() time.Time
}

// Option oracle option
type Option func(o *Oracle)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(o *Oracle) {
		o.now = now
	}
}

// WithNotifier receives fallback and price update events
func WithNotifier(n core.Notifier) Option {
	return func(o *Oracle) {
		o.notifier = n
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, *core.Event) {}

// New new oracle, Init must run before use
func New(
	assets core.AssetStore,
	prices core.PriceStore,
	settings core.SettingsStore,
	feeds core.FeedProvider,
	vaults core.VaultProvider,
	limits core.Limits,
	opts ...Option,
) *Oracle {
	o := &Oracle{
		assets:   assets,
		feeds:    feeds,
		vaults:   vaults,
		notifier: nopNotifier{},
		limits:   limits,
		settings: &settingsHolder{store: settings},
		locks:    concurrency.NewKeyedMutex(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(o)
	}

	o.cache = &PriceCache{
		store:    prices,
		now:      o.now,
		settings: o.Settings,
	}

	return o
}

// Limits immutable bounds
func (o *Oracle) Limits() core.Limits {
	return o.limits
}

// Now oracle clock
func (o *Oracle) Now() time.Time {
	return o.now()
}

// Cache last valid prices
func (o *Oracle) Cache() *PriceCache {
	return o.cache
}

// Exclusive runs fn while holding the asset lock shared with FetchAndUpdate
func (o *Oracle) Exclusive(ctx context.Context, assetID string, fn func(ctx context.Context) error) error {
	unlock, err := o.locks.Lock(ctx, assetID)
	if err != nil {
		return err
	}
	defer unlock()

	return fn(ctx)
}

// Asset pricing configuration of asset
func (o *Oracle) Asset(ctx context.Context, assetID string) (*core.Asset, error) {
	if assetID == "" {
		return nil, core.ErrZeroIdentifier
	}

	asset, err := o.assets.Find(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if asset.ID == 0 {
		return nil, core.NewError(core.ErrAssetNotFound, assetID)
	}

	return asset, nil
}

// SupportedAssets registered assets in registration order
func (o *Oracle) SupportedAssets(ctx context.Context) ([]string, error) {
	return o.assets.ListSupported(ctx)
}

// GetPrice cached price if fresh, never calls a provider
func (o *Oracle) GetPrice(ctx context.Context, assetID string) (*core.Price, error) {
	if assetID == "" {
		return nil, core.ErrZeroIdentifier
	}

	p, err := o.cache.Get(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if !p.Exists() {
		return nil, core.NewError(core.ErrNoPrice, assetID)
	}

	if !o.cache.fresh(p, o.Settings().StalePeriod) {
		return nil, core.NewError(core.ErrStalePrice, assetID).WithValue(p.Price).WithTimestamp(p.Timestamp)
	}

	return p, nil
}

// IsPriceFresh a fresh price is cached
func (o *Oracle) IsPriceFresh(ctx context.Context, assetID string) (bool, error) {
	if assetID == "" {
		return false, core.ErrZeroIdentifier
	}

	return o.cache.IsFresh(ctx, assetID)
}

// PriceAge age of the cached price, InfiniteAge if none
func (o *Oracle) PriceAge(ctx context.Context, assetID string) (time.Duration, error) {
	if assetID == "" {
		return 0, core.ErrZeroIdentifier
	}

	return o.cache.Age(ctx, assetID)
}

// ToUSD value of amount native units at the fresh cached price
func (o *Oracle) ToUSD(ctx context.Context, assetID string, amount *uint256.Int) (number.Wad, error) {
	asset, price, err := o.pricedAsset(ctx, assetID)
	if err != nil {
		return number.Zero(), err
	}

	v, err := number.ValueOf(amount, asset.Decimals, price.Price)
	if err != nil {
		return number.Zero(), core.NewError(core.ErrInvalidPrice, assetID).WithReason("%v", err)
	}

	return v, nil
}

// FromUSD native units worth value at the fresh cached price, truncated
func (o *Oracle) FromUSD(ctx context.Context, assetID string, value number.Wad) (*uint256.Int, error) {
	asset, price, err := o.pricedAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	amount, err := number.AmountOf(value, asset.Decimals, price.Price)
	if err != nil {
		return nil, core.NewError(core.ErrInvalidPrice, assetID).WithReason("%v", err)
	}

	return amount, nil
}

func (o *Oracle) pricedAsset(ctx context.Context, assetID string) (*core.Asset, *core.Price, error) {
	asset, err := o.Asset(ctx, assetID)
	if err != nil {
		return nil, nil, err
	}

	price, err := o.GetPrice(ctx, assetID)
	if err != nil {
		return nil, nil, err
	}

	return asset, price, nil
}
