package admin

import (
	"context"
	"time"

	"fairprice/core"
	"fairprice/pkg/id"
	"fairprice/pkg/number"
	"fairprice/service/oracle"

	"github.com/fox-one/pkg/logger"
)

// Service owner gated oracle configuration
type Service struct {
	config   *core.Config
	oracle   *oracle.Oracle
	assets   core.AssetStore
	feeds    core.FeedProvider
	vaults   core.VaultProvider
	notifier core.Notifier
}

// New new admin service
func New(
	config *core.Config,
	o *oracle.Oracle,
	assets core.AssetStore,
	feeds core.FeedProvider,
	vaults core.VaultProvider,
	notifier core.Notifier,
) *Service {
	return &Service{
		config:   config,
		oracle:   o,
		assets:   assets,
		feeds:    feeds,
		vaults:   vaults,
		notifier: notifier,
	}
}

// RegisterFeed points asset at feedID after checking the feed answers sanely.
// Manual mode of the asset is cleared.
func (s *Service) RegisterFeed(ctx context.Context, actor, assetID, feedID string, decimals uint8) (*core.Asset, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}

	if assetID == "" || feedID == "" {
		return nil, core.ErrZeroIdentifier
	}

	if _, err := number.Pow10(decimals); err != nil {
		return nil, core.NewError(core.ErrInvalidConfiguration, assetID).WithReason("decimals %d", decimals)
	}

	if err := s.probeFeed(ctx, assetID, feedID); err != nil {
		return nil, err
	}

	var asset *core.Asset
	err := s.oracle.Exclusive(ctx, assetID, func(ctx context.Context) error {
		var err error
		if asset, err = s.assets.Find(ctx, assetID); err != nil {
			return err
		}

		asset.AssetID = assetID
		asset.FeedID = feedID
		asset.Decimals = decimals
		asset.IsManual = false
		return s.save(ctx, asset)
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.assets.AddSupported(ctx, assetID); err != nil {
		return nil, err
	}

	s.notify(ctx, &core.Event{
		Type:    core.EventFeedRegistered,
		AssetID: assetID,
		Actor:   actor,
		Value:   feedID,
	})

	return asset, nil
}

func (s *Service) probeFeed(ctx context.Context, assetID, feedID string) error {
	ctx, cancel := s.providerContext(ctx)
	defer cancel()

	answer, err := s.feeds.LatestAnswer(ctx, feedID)
	if err != nil {
		return core.NewError(core.ErrSourceUnavailable, assetID).WithReason("feed %s: %v", feedID, err)
	}

	switch {
	case answer == nil || answer.Answer == nil || answer.Answer.Sign() <= 0:
		return core.NewError(core.ErrInvalidConfiguration, assetID).WithReason("feed %s answer not positive", feedID)
	case answer.Decimals > number.WadDecimals:
		return core.NewError(core.ErrInvalidConfiguration, assetID).WithReason("feed %s has %d decimals", feedID, answer.Decimals)
	case answer.UpdatedAt == 0:
		return core.NewError(core.ErrInvalidConfiguration, assetID).WithReason("feed %s never updated", feedID)
	}

	return nil
}

// RegisterVault prices vault shares through underlying. The vault only has to
// answer the capability probe, its own native asset may differ from underlying.
func (s *Service) RegisterVault(ctx context.Context, actor, vaultID, underlying string) (*core.Asset, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}

	if vaultID == "" || underlying == "" {
		return nil, core.ErrZeroIdentifier
	}

	if vaultID == underlying {
		return nil, core.NewError(core.ErrInvalidConfiguration, vaultID).WithReason("vault can not be its own underlying")
	}

	info, err := s.describe(ctx, vaultID)
	if err != nil {
		return nil, err
	}

	var asset *core.Asset
	err = s.oracle.Exclusive(ctx, vaultID, func(ctx context.Context) error {
		var err error
		if asset, err = s.assets.Find(ctx, vaultID); err != nil {
			return err
		}

		asset.AssetID = vaultID
		asset.Underlying = underlying
		asset.Decimals = info.Decimals
		asset.NativeAsset = info.Asset
		asset.NativeAssetDecimals = info.AssetDecimals
		return s.save(ctx, asset)
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.assets.AddSupported(ctx, vaultID); err != nil {
		return nil, err
	}

	s.notify(ctx, &core.Event{
		Type:    core.EventVaultRegistered,
		AssetID: vaultID,
		Actor:   actor,
		Value:   underlying,
	})

	return asset, nil
}

func (s *Service) describe(ctx context.Context, vaultID string) (*core.VaultInfo, error) {
	ctx, cancel := s.providerContext(ctx)
	defer cancel()

	info, err := s.vaults.Describe(ctx, vaultID)
	if err != nil {
		return nil, core.NewError(core.ErrSourceUnavailable, vaultID).WithReason("describe: %v", err)
	}

	if info == nil || info.Asset == "" {
		return nil, core.NewError(core.ErrInvalidConfiguration, vaultID).WithReason("not a share vault")
	}

	for _, d := range []uint8{info.Decimals, info.AssetDecimals} {
		if _, err := number.Pow10(d); err != nil {
			return nil, core.NewError(core.ErrInvalidConfiguration, vaultID).WithReason("decimals %d", d)
		}
	}

	return info, nil
}

// SetManualPrice enables manual mode and stores price as the last valid price.
// A fresh cached price limits how far the manual price may move.
func (s *Service) SetManualPrice(ctx context.Context, actor, assetID string, price number.Wad) error {
	if err := s.authorize(actor); err != nil {
		return err
	}

	if assetID == "" {
		return core.ErrZeroIdentifier
	}

	limits := s.oracle.Limits()
	if !limits.PriceInBounds(price) {
		return core.NewError(core.ErrInvalidPrice, assetID).WithValue(price)
	}

	err := s.oracle.Exclusive(ctx, assetID, func(ctx context.Context) error {
		cache := s.oracle.Cache()
		fresh, err := cache.IsFresh(ctx, assetID)
		if err != nil {
			return err
		}

		if fresh {
			cached, err := cache.Get(ctx, assetID)
			if err != nil {
				return err
			}

			if err := checkDeviation(assetID, cached.Price, price, limits.ManualDeviation); err != nil {
				return err
			}
		}

		asset, err := s.assets.Find(ctx, assetID)
		if err != nil {
			return err
		}

		asset.AssetID = assetID
		asset.IsManual = true
		asset.ManualPrice = price
		if err := s.save(ctx, asset); err != nil {
			return err
		}

		now := s.oracle.Now().Unix()
		applied, err := cache.Set(ctx, assetID, price, now, core.PriceSourceManual)
		if err != nil {
			return err
		}

		if !applied {
			logger.FromContext(ctx).WithField("asset", assetID).WithField("timestamp", now).
				Warnln("manual price not cached, stored price is newer than local clock")
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.notify(ctx, &core.Event{
		Type:    core.EventManualPriceSet,
		AssetID: assetID,
		Actor:   actor,
		Value:   price.String(),
	})

	return nil
}

func checkDeviation(assetID string, reference, price, deviation number.Wad) error {
	delta, err := number.MulWad(reference, deviation)
	if err != nil {
		return core.NewError(core.ErrInvalidConfiguration, assetID).WithReason("%v", err)
	}

	low := number.Sub(reference, delta)
	high, err := number.Add(reference, delta)
	if err != nil {
		return core.NewError(core.ErrInvalidConfiguration, assetID).WithReason("%v", err)
	}

	if price.LessThan(low) || price.GreaterThan(high) {
		return core.NewError(core.ErrInvalidConfiguration, assetID).
			WithValue(price).
			WithReason("manual price outside [%s, %s]", low.Decimal(), high.Decimal())
	}

	return nil
}

// DisableManualPrice clears manual mode, the manual price is kept
func (s *Service) DisableManualPrice(ctx context.Context, actor, assetID string) error {
	if err := s.authorize(actor); err != nil {
		return err
	}

	if assetID == "" {
		return core.ErrZeroIdentifier
	}

	err := s.oracle.Exclusive(ctx, assetID, func(ctx context.Context) error {
		asset, err := s.assets.Find(ctx, assetID)
		if err != nil {
			return err
		}

		if asset.ID == 0 {
			return core.NewError(core.ErrAssetNotFound, assetID)
		}

		asset.IsManual = false
		return s.save(ctx, asset)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, &core.Event{
		Type:    core.EventManualPriceDisabled,
		AssetID: assetID,
		Actor:   actor,
	})

	return nil
}

// SetStalePeriod within the configured bounds and not above the fallback period
func (s *Service) SetStalePeriod(ctx context.Context, actor string, period time.Duration) error {
	if err := s.authorize(actor); err != nil {
		return err
	}

	limits := s.oracle.Limits()
	if period < limits.MinStalePeriod || period > limits.MaxStalePeriod {
		return core.NewError(core.ErrInvalidConfiguration, "").
			WithReason("stale period %s out of [%s, %s]", period, limits.MinStalePeriod, limits.MaxStalePeriod)
	}

	_, err := s.oracle.UpdateSettings(ctx, func(settings *core.Settings) error {
		if period > settings.FallbackStalePeriod {
			return core.NewError(core.ErrInvalidConfiguration, "").
				WithReason("stale period %s above fallback stale period %s", period, settings.FallbackStalePeriod)
		}

		settings.StalePeriod = period
		return nil
	})
	if err != nil {
		return err
	}

	s.notify(ctx, &core.Event{
		Type:  core.EventStalePeriodSet,
		Actor: actor,
		Value: period.String(),
	})

	return nil
}

// SetFallbackStalePeriod not below the stale period
func (s *Service) SetFallbackStalePeriod(ctx context.Context, actor string, period time.Duration) error {
	if err := s.authorize(actor); err != nil {
		return err
	}

	_, err := s.oracle.UpdateSettings(ctx, func(settings *core.Settings) error {
		if period < settings.StalePeriod {
			return core.NewError(core.ErrInvalidConfiguration, "").
				WithReason("fallback stale period %s below stale period %s", period, settings.StalePeriod)
		}

		settings.FallbackStalePeriod = period
		return nil
	})
	if err != nil {
		return err
	}

	s.notify(ctx, &core.Event{
		Type:  core.EventFallbackPeriodSet,
		Actor: actor,
		Value: period.String(),
	})

	return nil
}

// SetVaultRateBounds per asset rate band, 0 < min < max <= ceiling
func (s *Service) SetVaultRateBounds(ctx context.Context, actor, assetID string, min, max number.Wad) error {
	if err := s.authorize(actor); err != nil {
		return err
	}

	if assetID == "" {
		return core.ErrZeroIdentifier
	}

	ceiling := s.oracle.Limits().MaxRateCeiling
	switch {
	case min.IsZero():
		return core.NewError(core.ErrInvalidConfiguration, assetID).WithReason("min rate must be positive")
	case !max.GreaterThan(min):
		return core.NewError(core.ErrInvalidConfiguration, assetID).WithReason("max rate must exceed min rate")
	case max.GreaterThan(ceiling):
		return core.NewError(core.ErrInvalidConfiguration, assetID).
			WithValue(max).
			WithReason("max rate above ceiling %s", ceiling.Decimal())
	}

	err := s.oracle.Exclusive(ctx, assetID, func(ctx context.Context) error {
		asset, err := s.assets.Find(ctx, assetID)
		if err != nil {
			return err
		}

		asset.AssetID = assetID
		asset.MinRate = min
		asset.MaxRate = max
		return s.save(ctx, asset)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, &core.Event{
		Type:    core.EventRateBoundsSet,
		AssetID: assetID,
		Actor:   actor,
		Value:   min.Decimal().String() + "-" + max.Decimal().String(),
	})

	return nil
}

// Pause blocks every fetch until Resume
func (s *Service) Pause(ctx context.Context, actor, reason string) error {
	return s.setMode(ctx, actor, reason, core.ModePaused)
}

// Resume lifts a pause
func (s *Service) Resume(ctx context.Context, actor, reason string) error {
	return s.setMode(ctx, actor, reason, core.ModeNormal)
}

func (s *Service) setMode(ctx context.Context, actor, reason string, mode core.Mode) error {
	if err := s.authorize(actor); err != nil {
		return err
	}

	_, err := s.oracle.UpdateSettings(ctx, func(settings *core.Settings) error {
		if settings.Mode == mode {
			if mode == core.ModePaused {
				return core.NewError(core.ErrInvalidConfiguration, "").WithReason("oracle already paused")
			}
			return core.NewError(core.ErrInvalidConfiguration, "").WithReason("oracle is not paused")
		}

		settings.Mode = mode
		return nil
	})
	if err != nil {
		return err
	}

	eventType := core.EventResumed
	if mode == core.ModePaused {
		eventType = core.EventPaused
	}

	logger.FromContext(ctx).WithField("actor", actor).WithField("reason", reason).Warnln("oracle mode changed to", mode)
	s.notify(ctx, &core.Event{
		Type:   eventType,
		Actor:  actor,
		Reason: reason,
	})

	return nil
}

func (s *Service) authorize(actor string) error {
	if !s.config.IsAdmin(actor) {
		return core.ErrUnauthorized
	}

	return nil
}

func (s *Service) save(ctx context.Context, asset *core.Asset) error {
	if err := s.assets.Save(ctx, asset); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("asset", asset.AssetID).Errorln("assets.Save")
		return err
	}

	return nil
}

func (s *Service) providerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.oracle.Limits().ProviderTimeout
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}

func (s *Service) notify(ctx context.Context, event *core.Event) {
	event.TraceID = id.GenTraceID()
	event.CreatedAt = s.oracle.Now()
	s.notifier.Notify(ctx, event)
}
