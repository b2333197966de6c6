package memory

import (
	"context"
	"testing"

	"fairprice/core"
	"fairprice/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceStoreCompareAndSet(t *testing.T) {
	ctx := context.Background()
	s := NewPriceStore()

	p, err := s.Find(ctx, "usdc")
	require.NoError(t, err)
	assert.False(t, p.Exists())

	applied, err := s.Save(ctx, &core.Price{AssetID: "usdc", Price: number.One(), Timestamp: 200})
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = s.Save(ctx, &core.Price{AssetID: "usdc", Price: number.MustParseWad("0.5"), Timestamp: 100})
	require.NoError(t, err)
	assert.False(t, applied, "older observation must not replace a newer one")

	p, err = s.Find(ctx, "usdc")
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(number.One()))
	assert.EqualValues(t, 200, p.Timestamp)

	applied, err = s.Save(ctx, &core.Price{AssetID: "usdc", Price: number.MustParseWad("0.99"), Timestamp: 200})
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestSupportedAssetsOrder(t *testing.T) {
	ctx := context.Background()
	s := NewAssetStore()

	for _, id := range []string{"wbtc", "usdc", "wbtc", "eth"} {
		_, err := s.AddSupported(ctx, id)
		require.NoError(t, err)
	}

	ids, err := s.ListSupported(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"wbtc", "usdc", "eth"}, ids)
}

func TestAssetStoreVersion(t *testing.T) {
	ctx := context.Background()
	s := NewAssetStore()

	asset := &core.Asset{AssetID: "usdc", Decimals: 6}
	require.NoError(t, s.Save(ctx, asset))

	stale, err := s.Find(ctx, "usdc")
	require.NoError(t, err)

	fresh, err := s.Find(ctx, "usdc")
	require.NoError(t, err)
	fresh.FeedID = "usdc-usd"
	require.NoError(t, s.Save(ctx, fresh))

	stale.IsManual = true
	assert.Error(t, s.Save(ctx, stale))
}

func TestAssetStoreCreateConflict(t *testing.T) {
	ctx := context.Background()
	s := NewAssetStore()

	require.NoError(t, s.Save(ctx, &core.Asset{AssetID: "usdc", Decimals: 6}))

	// a second writer that never saw the row
	other := &core.Asset{AssetID: "usdc", Decimals: 6, FeedID: "usdc-usd"}
	assert.ErrorIs(t, s.Save(ctx, other), db.ErrOptimisticLock)
	assert.Equal(t, "usdc-usd", other.FeedID)

	current, err := s.Find(ctx, "usdc")
	require.NoError(t, err)
	assert.Empty(t, current.FeedID)
}
