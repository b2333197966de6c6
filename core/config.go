package core

import (
	"fmt"
	"time"

	"fairprice/pkg/number"

	"github.com/fox-one/pkg/store/db"
)

// Config fairprice config
type Config struct {
	DB     db.Config `json:"db"`
	Oracle Oracle    `json:"oracle"`
	Feed   Provider  `json:"feed"`
	Vault  Provider  `json:"vault"`
	Admins []Admin   `json:"admins"`
	Keeper Keeper    `json:"keeper"`
}

// Oracle oracle bounds and initial settings, periods are in seconds
type Oracle struct {
	StalePeriod         int64  `json:"stale_period"`
	FallbackStalePeriod int64  `json:"fallback_stale_period"`
	MinStalePeriod      int64  `json:"min_stale_period"`
	MaxStalePeriod      int64  `json:"max_stale_period"`
	MaxRecursionDepth   int    `json:"max_recursion_depth"`
	MinRate             string `json:"min_rate"`
	MaxRate             string `json:"max_rate"`
	MaxRateCeiling      string `json:"max_rate_ceiling"`
	MinPrice            string `json:"min_price"`
	MaxPrice            string `json:"max_price"`
	ManualDeviation     string `json:"manual_deviation"`
	ProviderTimeout     int64  `json:"provider_timeout"`
}

// Provider external provider endpoint
type Provider struct {
	Endpoint string `json:"endpoint"`
	Timeout  int64  `json:"timeout"`
}

// Admin oracle owner, Token authenticates http calls
type Admin struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// Keeper keeper worker config
type Keeper struct {
	Schedule    string `json:"schedule"`
	Concurrency int    `json:"concurrency"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	if len(c.Admins) <= 0 || userID == "" {
		return false
	}

	for _, a := range c.Admins {
		if a.ID == userID {
			return true
		}
	}

	return false
}

// AdminByToken admin owning token
func (c *Config) AdminByToken(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	for _, a := range c.Admins {
		if a.Token == token {
			return a.ID, true
		}
	}

	return "", false
}

// Settings initial settings
func (o *Oracle) Settings() *Settings {
	return &Settings{
		StalePeriod:         time.Duration(o.StalePeriod) * time.Second,
		FallbackStalePeriod: time.Duration(o.FallbackStalePeriod) * time.Second,
		Mode:                ModeNormal,
	}
}

// Limits parse the decimal bounds into wad values
func (o *Oracle) Limits() (*Limits, error) {
	l := &Limits{
		MinStalePeriod:    time.Duration(o.MinStalePeriod) * time.Second,
		MaxStalePeriod:    time.Duration(o.MaxStalePeriod) * time.Second,
		MaxRecursionDepth: o.MaxRecursionDepth,
		ProviderTimeout:   time.Duration(o.ProviderTimeout) * time.Second,
	}

	fields := []struct {
		name  string
		value string
		dst   *number.Wad
	}{
		{"min_rate", o.MinRate, &l.DefaultMinRate},
		{"max_rate", o.MaxRate, &l.DefaultMaxRate},
		{"max_rate_ceiling", o.MaxRateCeiling, &l.MaxRateCeiling},
		{"min_price", o.MinPrice, &l.MinPrice},
		{"max_price", o.MaxPrice, &l.MaxPrice},
		{"manual_deviation", o.ManualDeviation, &l.ManualDeviation},
	}

	for _, f := range fields {
		v, err := number.ParseWad(f.value)
		if err != nil {
			return nil, fmt.Errorf("oracle.%s: %w", f.name, err)
		}
		*f.dst = v
	}

	return l, nil
}
