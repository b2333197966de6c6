// Package memory keeps the oracle state in process, for tests and development runs.
package memory

import (
	"context"
	"sync"

	"fairprice/core"

	"github.com/fox-one/pkg/store/db"
)

// AssetStore in memory asset store
type AssetStore struct {
	mux       sync.RWMutex
	seq       int64
	assets    map[string]core.Asset
	supported []string
}

// NewAssetStore new memory asset store
func NewAssetStore() *AssetStore {
	return &AssetStore{assets: map[string]core.Asset{}}
}

func (s *AssetStore) Find(_ context.Context, assetID string) (*core.Asset, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	asset, ok := s.assets[assetID]
	if !ok {
		return &core.Asset{}, nil
	}

	return &asset, nil
}

func (s *AssetStore) Save(_ context.Context, asset *core.Asset) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if current, ok := s.assets[asset.AssetID]; ok {
		if asset.ID == 0 || current.Version != asset.Version {
			return db.ErrOptimisticLock
		}
	} else {
		s.seq++
		asset.ID = s.seq
	}

	asset.Version++
	s.assets[asset.AssetID] = *asset
	return nil
}

func (s *AssetStore) AddSupported(_ context.Context, assetID string) (bool, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	for _, id := range s.supported {
		if id == assetID {
			return false, nil
		}
	}

	s.supported = append(s.supported, assetID)
	return true, nil
}

func (s *AssetStore) ListSupported(_ context.Context) ([]string, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	ids := make([]string, len(s.supported))
	copy(ids, s.supported)
	return ids, nil
}

// PriceStore in memory price store
type PriceStore struct {
	mux    sync.RWMutex
	seq    int64
	prices map[string]core.Price
}

// NewPriceStore new memory price store
func NewPriceStore() *PriceStore {
	return &PriceStore{prices: map[string]core.Price{}}
}

func (s *PriceStore) Find(_ context.Context, assetID string) (*core.Price, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	price, ok := s.prices[assetID]
	if !ok {
		return &core.Price{AssetID: assetID}, nil
	}

	return &price, nil
}

func (s *PriceStore) Save(_ context.Context, price *core.Price) (bool, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	p := *price
	if current, ok := s.prices[price.AssetID]; ok {
		if current.Timestamp > price.Timestamp {
			return false, nil
		}

		p.ID = current.ID
		p.Version = current.Version + 1
	} else {
		s.seq++
		p.ID = s.seq
		p.Version = 1
	}

	s.prices[price.AssetID] = p
	return true, nil
}

// SettingsStore in memory settings store
type SettingsStore struct {
	mux      sync.RWMutex
	settings core.Settings
}

// NewSettingsStore new memory settings store
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

func (s *SettingsStore) Load(_ context.Context) (*core.Settings, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	settings := s.settings
	return &settings, nil
}

func (s *SettingsStore) Save(_ context.Context, settings *core.Settings) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.settings = *settings
	return nil
}

// EventStore in memory event store
type EventStore struct {
	mux    sync.RWMutex
	events []*core.Event
}

// NewEventStore new memory event store
func NewEventStore() *EventStore {
	return &EventStore{}
}

func (s *EventStore) Create(_ context.Context, event *core.Event) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	for _, e := range s.events {
		if event.TraceID != "" && e.TraceID == event.TraceID {
			*event = *e
			return nil
		}
	}

	e := *event
	e.ID = int64(len(s.events) + 1)
	event.ID = e.ID
	s.events = append(s.events, &e)
	return nil
}

func (s *EventStore) List(_ context.Context, from int64, limit int) ([]*core.Event, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	var events []*core.Event
	for _, e := range s.events {
		if e.ID <= from {
			continue
		}

		if limit > 0 && len(events) >= limit {
			break
		}

		event := *e
		events = append(events, &event)
	}

	return events, nil
}
