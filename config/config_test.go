package config

import (
	"testing"

	"fairprice/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *core.Config {
	cfg := &core.Config{}
	defaultOracle(&cfg.Oracle)
	defaultKeeper(&cfg.Keeper)
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, Validate(cfg))

	assert.EqualValues(t, 3600, cfg.Oracle.StalePeriod)
	assert.Equal(t, "@every 1m", cfg.Keeper.Schedule)

	limits, err := cfg.Oracle.Limits()
	require.NoError(t, err)
	assert.Equal(t, "200000000000000000", limits.DefaultMinRate.String())
	assert.Equal(t, "3000000000000000000", limits.DefaultMaxRate.String())
	assert.Equal(t, 3, limits.MaxRecursionDepth)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	cfg.Oracle.FallbackStalePeriod = cfg.Oracle.StalePeriod - 1
	assert.Error(t, Validate(cfg))

	cfg = defaultConfig()
	cfg.Oracle.StalePeriod = cfg.Oracle.MaxStalePeriod + 1
	assert.Error(t, Validate(cfg))

	cfg = defaultConfig()
	cfg.Oracle.MaxRate = "0.1"
	assert.Error(t, Validate(cfg))

	cfg = defaultConfig()
	cfg.Feed.Endpoint = "not a url"
	assert.Error(t, Validate(cfg))

	cfg = defaultConfig()
	cfg.Feed.Endpoint = "https://feeds.example.com:9000"
	assert.NoError(t, Validate(cfg))
}
