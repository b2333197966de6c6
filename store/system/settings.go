package system

import (
	"context"
	"time"

	"fairprice/core"

	"github.com/fox-one/pkg/property"
)

const (
	stalePeriodKey         = "oracle.stale_period"
	fallbackStalePeriodKey = "oracle.fallback_stale_period"
	modeKey                = "oracle.mode"
)

type settingsStore struct {
	property property.Store
}

// New settings store backed by the property store, periods are kept in seconds
func New(property property.Store) core.SettingsStore {
	return &settingsStore{property: property}
}

func (s *settingsStore) Load(ctx context.Context) (*core.Settings, error) {
	stale, err := s.property.Get(ctx, stalePeriodKey)
	if err != nil {
		return nil, err
	}

	fallback, err := s.property.Get(ctx, fallbackStalePeriodKey)
	if err != nil {
		return nil, err
	}

	mode, err := s.property.Get(ctx, modeKey)
	if err != nil {
		return nil, err
	}

	return &core.Settings{
		StalePeriod:         time.Duration(stale.Int64()) * time.Second,
		FallbackStalePeriod: time.Duration(fallback.Int64()) * time.Second,
		Mode:                core.Mode(mode.String()),
	}, nil
}

func (s *settingsStore) Save(ctx context.Context, settings *core.Settings) error {
	if err := s.property.Save(ctx, stalePeriodKey, int64(settings.StalePeriod/time.Second)); err != nil {
		return err
	}

	if err := s.property.Save(ctx, fallbackStalePeriodKey, int64(settings.FallbackStalePeriod/time.Second)); err != nil {
		return err
	}

	return s.property.Save(ctx, modeKey, string(settings.Mode))
}
