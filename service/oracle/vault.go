package oracle

import (
	"context"

	"fairprice/core"
	"fairprice/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// maxConvertedAssets conversions above 1e36 raw units are treated as a broken vault
var maxConvertedAssets = new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(36))

// VaultRate per share value of the vault in wad, decimals independent
func (o *Oracle) VaultRate(ctx context.Context, asset *core.Asset) (number.Wad, error) {
	shareUnit, err := number.Pow10(asset.Decimals)
	if err != nil {
		return number.Zero(), core.NewError(core.ErrInvalidConfiguration, asset.AssetID).
			WithReason("share decimals %d", asset.Decimals)
	}

	pctx, cancel := o.providerContext(ctx)
	defer cancel()

	assets, err := o.vaults.ConvertToAssets(pctx, asset.AssetID, shareUnit)
	if err != nil {
		logger.FromContext(ctx).WithError(err).WithField("asset", asset.AssetID).Errorln("vault.ConvertToAssets")
		return number.Zero(), core.NewError(core.ErrSourceUnavailable, asset.AssetID).WithReason("convert: %v", err)
	}

	if assets == nil || assets.IsZero() || assets.Gt(maxConvertedAssets) {
		raw := "nil"
		if assets != nil {
			raw = assets.Dec()
		}
		return number.Zero(), core.NewError(core.ErrSuspiciousRate, asset.AssetID).
			WithReason("converted assets %s out of range", raw)
	}

	scaledAssets, err := number.ToWad(assets, asset.NativeAssetDecimals)
	if err != nil {
		return number.Zero(), core.NewError(core.ErrSuspiciousRate, asset.AssetID).
			WithReason("converted assets %s overflow", assets.Dec())
	}

	scaledShare, err := number.ToWad(shareUnit, asset.Decimals)
	if err != nil || scaledShare.IsZero() {
		return number.Zero(), core.NewError(core.ErrInvalidConfiguration, asset.AssetID).
			WithReason("share decimals %d", asset.Decimals)
	}

	rate, err := number.DivWad(scaledAssets, scaledShare)
	if err != nil {
		return number.Zero(), core.NewError(core.ErrSuspiciousRate, asset.AssetID).WithValue(scaledAssets)
	}

	min, max := o.rateBounds(asset)
	if rate.LessThan(min) || rate.GreaterThan(max) {
		return number.Zero(), core.NewError(core.ErrSuspiciousRate, asset.AssetID).
			WithValue(rate).
			WithReason("rate outside [%s, %s]", min.Decimal(), max.Decimal())
	}

	return rate, nil
}

func (o *Oracle) rateBounds(asset *core.Asset) (min, max number.Wad) {
	if min, max, ok := asset.RateBounds(); ok {
		return min, max
	}

	return o.limits.DefaultMinRate, o.limits.DefaultMaxRate
}

// vaultPrice values one share of a derived asset. With persist the underlying
// goes through the write path and its price is stored on the way.
func (o *Oracle) vaultPrice(ctx context.Context, asset *core.Asset, persist bool) (*Resolution, error) {
	rate, err := o.VaultRate(ctx, asset)
	if err != nil {
		return nil, err
	}

	var underlying *Resolution
	if persist {
		underlying, err = o.update(ctx, asset.Underlying)
	} else {
		underlying, err = o.resolve(ctx, asset.Underlying, false)
	}
	if err != nil {
		return nil, err
	}

	price, err := number.MulWad(underlying.Price, rate)
	if err != nil {
		return nil, core.NewError(core.ErrInvalidPrice, asset.AssetID).WithReason("%v", err)
	}

	return &Resolution{
		AssetID:   asset.AssetID,
		Price:     price,
		Rate:      rate,
		Source:    core.PriceSourceDerived,
		Timestamp: underlying.Timestamp,
	}, nil
}
