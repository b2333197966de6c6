package core

import (
	"context"
	"time"

	"fairprice/pkg/number"
)

// Mode oracle circuit breaker state
type Mode string

const (
	ModeNormal Mode = "NORMAL"
	ModePaused Mode = "PAUSED"
)

// IsValid mode is known
func (m Mode) IsValid() bool {
	return m == ModeNormal || m == ModePaused
}

// Settings admin mutable oracle settings
type Settings struct {
	StalePeriod         time.Duration `json:"stale_period"`
	FallbackStalePeriod time.Duration `json:"fallback_stale_period"`
	Mode                Mode          `json:"mode"`
}

// Paused circuit breaker active
func (s Settings) Paused() bool {
	return s.Mode == ModePaused
}

// SettingsStore persists Settings, missing values load as zero
type SettingsStore interface {
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, settings *Settings) error
}

// Limits immutable oracle bounds fixed at startup
type Limits struct {
	MinStalePeriod    time.Duration
	MaxStalePeriod    time.Duration
	MaxRecursionDepth int
	// default vault rate band, used when an asset has no own bounds
	DefaultMinRate number.Wad
	DefaultMaxRate number.Wad
	MaxRateCeiling number.Wad
	MinPrice       number.Wad
	MaxPrice       number.Wad
	// allowed relative distance of a manual price from a fresh cached one
	ManualDeviation number.Wad
	ProviderTimeout time.Duration
}

// PriceInBounds price within the absolute sanity bounds
func (l *Limits) PriceInBounds(p number.Wad) bool {
	return !p.LessThan(l.MinPrice) && !p.GreaterThan(l.MaxPrice)
}
