package oracle

import (
	"context"
	"sync"

	"fairprice/core"

	"github.com/fox-one/pkg/logger"
)

type settingsHolder struct {
	mux     sync.RWMutex
	store   core.SettingsStore
	current core.Settings
}

// Init loads persisted settings, values never saved fall back to defaults
func (o *Oracle) Init(ctx context.Context, defaults *core.Settings) error {
	h := o.settings
	h.mux.Lock()
	defer h.mux.Unlock()

	saved, err := h.store.Load(ctx)
	if err != nil {
		return err
	}

	s := *saved
	if s.StalePeriod == 0 {
		s.StalePeriod = defaults.StalePeriod
	}

	if s.FallbackStalePeriod == 0 {
		s.FallbackStalePeriod = defaults.FallbackStalePeriod
	}

	if !s.Mode.IsValid() {
		s.Mode = core.ModeNormal
	}

	if s.FallbackStalePeriod < s.StalePeriod {
		s.FallbackStalePeriod = s.StalePeriod
	}

	if s != *saved {
		if err := h.store.Save(ctx, &s); err != nil {
			return err
		}
	}

	logger.FromContext(ctx).WithField("stale_period", s.StalePeriod).
		WithField("fallback_stale_period", s.FallbackStalePeriod).
		WithField("mode", s.Mode).Infoln("oracle settings loaded")

	h.current = s
	return nil
}

// Settings current settings snapshot
func (o *Oracle) Settings() core.Settings {
	o.settings.mux.RLock()
	defer o.settings.mux.RUnlock()
	return o.settings.current
}

// UpdateSettings applies fn to a copy of the settings and persists it,
// nothing changes when fn or the store fails
func (o *Oracle) UpdateSettings(ctx context.Context, fn func(s *core.Settings) error) (core.Settings, error) {
	h := o.settings
	h.mux.Lock()
	defer h.mux.Unlock()

	s := h.current
	if err := fn(&s); err != nil {
		return h.current, err
	}

	if err := h.store.Save(ctx, &s); err != nil {
		return h.current, err
	}

	h.current = s
	return s, nil
}
