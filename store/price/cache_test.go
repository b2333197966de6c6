package price

import (
	"context"
	"sync"
	"testing"

	"fairprice/core"
	"fairprice/pkg/number"
	"fairprice/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	core.PriceStore
	finds int
}

func (s *countingStore) Find(ctx context.Context, assetID string) (*core.Price, error) {
	s.finds++
	return s.PriceStore.Find(ctx, assetID)
}

func TestCacheReadThrough(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{PriceStore: memory.NewPriceStore()}
	s := Cache(backend, 0)

	_, err := s.Save(ctx, &core.Price{AssetID: "eth", Price: number.MustParseWad("2000"), Timestamp: 10})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		p, err := s.Find(ctx, "eth")
		require.NoError(t, err)
		assert.Equal(t, "2000", p.Price.Decimal().String())
	}
	assert.Equal(t, 0, backend.finds)

	// rejected write drops the entry so the next read hits the store
	applied, err := s.Save(ctx, &core.Price{AssetID: "eth", Price: number.MustParseWad("1"), Timestamp: 5})
	require.NoError(t, err)
	assert.False(t, applied)

	p, err := s.Find(ctx, "eth")
	require.NoError(t, err)
	assert.EqualValues(t, 10, p.Timestamp)
	assert.Equal(t, 1, backend.finds)
}

func TestCacheMissingPrice(t *testing.T) {
	backend := &countingStore{PriceStore: memory.NewPriceStore()}
	s := Cache(backend, 0)

	for i := 0; i < 2; i++ {
		p, err := s.Find(context.Background(), "btc")
		require.NoError(t, err)
		assert.False(t, p.Exists())
	}

	// misses are not cached
	assert.Equal(t, 2, backend.finds)
}

// blockingStore parks the first Find after it has read the row
type blockingStore struct {
	core.PriceStore
	loaded  chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *blockingStore) Find(ctx context.Context, assetID string) (*core.Price, error) {
	price, err := s.PriceStore.Find(ctx, assetID)
	s.once.Do(func() {
		close(s.loaded)
		<-s.release
	})
	return price, err
}

func TestCacheFillKeepsNewerWrite(t *testing.T) {
	ctx := context.Background()
	backend := &blockingStore{
		PriceStore: memory.NewPriceStore(),
		loaded:     make(chan struct{}),
		release:    make(chan struct{}),
	}
	_, err := backend.PriceStore.Save(ctx, &core.Price{AssetID: "eth", Price: number.MustParseWad("1"), Timestamp: 10})
	require.NoError(t, err)

	s := Cache(backend, 0)

	done := make(chan *core.Price)
	go func() {
		p, err := s.Find(ctx, "eth")
		assert.NoError(t, err)
		done <- p
	}()

	<-backend.loaded
	applied, err := s.Save(ctx, &core.Price{AssetID: "eth", Price: number.MustParseWad("2"), Timestamp: 20})
	require.NoError(t, err)
	require.True(t, applied)
	close(backend.release)

	read := <-done
	assert.EqualValues(t, 20, read.Timestamp)

	p, err := s.Find(ctx, "eth")
	require.NoError(t, err)
	assert.EqualValues(t, 20, p.Timestamp)
	assert.Equal(t, "2", p.Price.Decimal().String())
}
