package oracle

import (
	"context"
	"errors"

	"fairprice/core"
	"fairprice/internal/metrics"
	"fairprice/pkg/id"

	"github.com/fox-one/pkg/logger"
)

// FetchAndUpdate resolves the asset price and stores it as the last valid price
func (o *Oracle) FetchAndUpdate(ctx context.Context, assetID string) (*Resolution, error) {
	if assetID == "" {
		return nil, core.ErrZeroIdentifier
	}

	if o.Settings().Paused() {
		return nil, core.NewError(core.ErrPaused, assetID)
	}

	var r *Resolution
	err := o.Exclusive(ctx, assetID, func(ctx context.Context) error {
		var err error
		r, err = o.update(ctx, assetID)
		return err
	})
	if err != nil {
		o.observeFailure(ctx, assetID, err)
		return nil, err
	}

	return r, nil
}

// ResolvePrice quotes the asset price without storing anything
func (o *Oracle) ResolvePrice(ctx context.Context, assetID string) (*Resolution, error) {
	if assetID == "" {
		return nil, core.ErrZeroIdentifier
	}

	if o.Settings().Paused() {
		return nil, core.NewError(core.ErrPaused, assetID)
	}

	r, err := o.resolve(ctx, assetID, false)
	if err == nil {
		err = o.checkBounds(r)
	}

	if err != nil {
		o.observeFailure(ctx, assetID, err)
		return nil, err
	}

	return r, nil
}

// update resolves, validates and stores. Only the top level call holds the
// asset lock, nested underlying writes rely on the store compare-and-set.
func (o *Oracle) update(ctx context.Context, assetID string) (*Resolution, error) {
	r, err := o.resolve(ctx, assetID, true)
	if err != nil {
		return nil, err
	}

	if err := o.checkBounds(r); err != nil {
		return nil, err
	}

	applied, err := o.cache.Set(ctx, assetID, r.Price, r.Timestamp, r.Source)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).WithField("asset", assetID).
		WithField("price", r.Price.Decimal().String()).
		WithField("source", r.Source).
		WithField("timestamp", r.Timestamp)

	if !applied {
		log.Debugln("newer price already stored")
		return r, nil
	}

	log.Debugln("price updated")
	price, _ := r.Price.Decimal().Float64()
	metrics.Oracle().SetPrice(assetID, price, r.Timestamp)
	o.notify(ctx, &core.Event{
		Type:      core.EventPriceUpdated,
		AssetID:   assetID,
		Value:     r.Price.String(),
		Timestamp: r.Timestamp,
		Reason:    string(r.Source),
	})

	return r, nil
}

func (o *Oracle) resolve(ctx context.Context, assetID string, persist bool) (*Resolution, error) {
	asset, err := o.assets.Find(ctx, assetID)
	if err != nil {
		return nil, err
	}

	var r *Resolution
	switch {
	case asset.IsManual:
		r = &Resolution{
			AssetID:   assetID,
			Price:     asset.ManualPrice,
			Source:    core.PriceSourceManual,
			Timestamp: o.now().Unix(),
		}
	case asset.IsDerived():
		ctx, err := o.enter(ctx, assetID)
		if err != nil {
			return nil, err
		}

		if r, err = o.vaultPrice(ctx, asset, persist); err != nil {
			return nil, err
		}
	case asset.HasFeed():
		if r, err = o.feedPrice(ctx, asset); err != nil {
			return nil, err
		}
	default:
		return nil, core.NewError(core.ErrNoPriceSource, assetID)
	}

	metrics.Oracle().ObserveResolution(assetID, string(r.Source))
	return r, nil
}

func (o *Oracle) feedPrice(ctx context.Context, asset *core.Asset) (*Resolution, error) {
	feed := o.fetchFeed(ctx, asset.AssetID, asset.FeedID)
	if feed.Valid() {
		return &Resolution{
			AssetID:   asset.AssetID,
			Price:     feed.Price,
			Source:    core.PriceSourceFeed,
			Timestamp: o.now().Unix(),
		}, nil
	}

	cached, err := o.cache.Get(ctx, asset.AssetID)
	if err != nil {
		return nil, err
	}

	if !cached.Exists() {
		return nil, core.NewError(core.ErrNoFallbackPrice, asset.AssetID).WithReason("feed %s", feed.Status)
	}

	if !o.cache.fresh(cached, o.Settings().FallbackStalePeriod) {
		return nil, core.NewError(core.ErrStaleFallback, asset.AssetID).
			WithValue(cached.Price).
			WithTimestamp(cached.Timestamp).
			WithReason("feed %s", feed.Status)
	}

	logger.FromContext(ctx).WithField("asset", asset.AssetID).
		WithField("reason", feed.Status.String()).
		WithField("timestamp", cached.Timestamp).
		Infoln("feed unusable, fallback to last valid price")

	o.notify(ctx, &core.Event{
		Type:      core.EventFallbackUsed,
		AssetID:   asset.AssetID,
		Value:     cached.Price.String(),
		Timestamp: cached.Timestamp,
		Reason:    feed.Status.String(),
	})

	return &Resolution{
		AssetID:   asset.AssetID,
		Price:     cached.Price,
		Source:    core.PriceSourceFallback,
		Timestamp: cached.Timestamp,
	}, nil
}

func (o *Oracle) checkBounds(r *Resolution) error {
	if !o.limits.PriceInBounds(r.Price) {
		return core.NewError(core.ErrInvalidPrice, r.AssetID).WithValue(r.Price).WithTimestamp(r.Timestamp)
	}

	return nil
}

func (o *Oracle) notify(ctx context.Context, event *core.Event) {
	if event.TraceID == "" {
		event.TraceID = id.GenTraceID()
	}

	if event.CreatedAt.IsZero() {
		event.CreatedAt = o.now()
	}

	o.notifier.Notify(ctx, event)
}

func (o *Oracle) observeFailure(ctx context.Context, assetID string, err error) {
	reason := core.ErrUnknown.Error()
	var code core.ErrorCode
	var perr *core.PriceError
	switch {
	case errors.As(err, &perr):
		reason = perr.Code.Error()
	case errors.As(err, &code):
		reason = code.Error()
	}

	metrics.Oracle().ObserveFailure(assetID, reason)
	logger.FromContext(ctx).WithError(err).WithField("asset", assetID).Warnln("price resolution failed")
}
