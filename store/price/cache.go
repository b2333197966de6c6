package price

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fairprice/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache read-through LRU in front of store, entries are replaced on every applied write
func Cache(store core.PriceStore, exp time.Duration) core.PriceStore {
	b := gcache.New(2048).LRU()
	if exp > 0 {
		b = b.Expiration(exp)
	}

	return &cachePriceStore{
		PriceStore: store,
		cache:      b.Build(),
		sf:         &singleflight.Group{},
	}
}

type cachePriceStore struct {
	core.PriceStore
	mux   sync.Mutex
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cachePriceStore) Find(ctx context.Context, assetID string) (*core.Price, error) {
	key := s.priceKey(assetID)
	if v, err := s.cache.Get(key); err == nil {
		if price, ok := v.(core.Price); ok {
			return &price, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		price, err := s.PriceStore.Find(ctx, assetID)
		if err != nil {
			return nil, err
		}

		if !price.Exists() {
			return *price, nil
		}

		return s.fill(key, *price), nil
	})
	if err != nil {
		return nil, err
	}

	price := v.(core.Price)
	return &price, nil
}

func (s *cachePriceStore) Save(ctx context.Context, price *core.Price) (bool, error) {
	key := s.priceKey(price.AssetID)
	applied, err := s.PriceStore.Save(ctx, price)
	if err != nil || !applied {
		s.cache.Remove(key)
		return applied, err
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	// concurrent applied writes may finish out of order, keep the newest
	if v, err := s.cache.Get(key); err == nil {
		if cached, ok := v.(core.Price); ok && cached.Timestamp > price.Timestamp {
			return true, nil
		}
	}

	s.cache.Set(key, *price)
	return true, nil
}

// fill caches a loaded row unless a write already cached one at least as new
func (s *cachePriceStore) fill(key string, price core.Price) core.Price {
	s.mux.Lock()
	defer s.mux.Unlock()

	if v, err := s.cache.Get(key); err == nil {
		if cached, ok := v.(core.Price); ok && cached.Timestamp >= price.Timestamp {
			return cached
		}
	}

	s.cache.Set(key, price)
	return price
}

func (s *cachePriceStore) priceKey(assetID string) string {
	return fmt.Sprintf("price:asset:%s", assetID)
}
