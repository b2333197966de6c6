package config

import (
	"errors"
	"fmt"

	"fairprice/core"

	"github.com/asaskevich/govalidator"
	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file, with no file only defaults apply
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("FAIRPRICE")
	if configFile != "" {
		if err := configUtil.LoadYaml(configFile, config); err != nil {
			return err
		}
	}

	defaultOracle(&config.Oracle)
	defaultKeeper(&config.Keeper)
	return Validate(config)
}

func defaultOracle(o *core.Oracle) {
	if o.MinStalePeriod == 0 {
		o.MinStalePeriod = 3600
	}

	if o.MaxStalePeriod == 0 {
		o.MaxStalePeriod = 3 * 3600
	}

	if o.StalePeriod == 0 {
		o.StalePeriod = o.MinStalePeriod
	}

	if o.FallbackStalePeriod == 0 {
		o.FallbackStalePeriod = 4 * 3600
	}

	if o.MaxRecursionDepth == 0 {
		o.MaxRecursionDepth = 3
	}

	if o.MinRate == "" {
		o.MinRate = "0.2"
	}

	if o.MaxRate == "" {
		o.MaxRate = "3.0"
	}

	if o.MaxRateCeiling == "" {
		o.MaxRateCeiling = "100"
	}

	if o.MinPrice == "" {
		o.MinPrice = "0.00000001"
	}

	if o.MaxPrice == "" {
		o.MaxPrice = "1000000000"
	}

	if o.ManualDeviation == "" {
		o.ManualDeviation = "0.1"
	}

	if o.ProviderTimeout == 0 {
		o.ProviderTimeout = 5
	}
}

func defaultKeeper(k *core.Keeper) {
	if k.Schedule == "" {
		k.Schedule = "@every 1m"
	}

	if k.Concurrency <= 0 {
		k.Concurrency = 4
	}
}

// Validate reject inconsistent oracle bounds and malformed endpoints
func Validate(config *core.Config) error {
	o := config.Oracle
	if o.MinStalePeriod <= 0 || o.MaxStalePeriod < o.MinStalePeriod {
		return errors.New("oracle: invalid stale period bounds")
	}

	if o.StalePeriod < o.MinStalePeriod || o.StalePeriod > o.MaxStalePeriod {
		return fmt.Errorf("oracle: stale_period %d out of [%d, %d]", o.StalePeriod, o.MinStalePeriod, o.MaxStalePeriod)
	}

	if o.FallbackStalePeriod < o.StalePeriod {
		return errors.New("oracle: fallback_stale_period must not be below stale_period")
	}

	if o.MaxRecursionDepth < 1 {
		return errors.New("oracle: max_recursion_depth must be positive")
	}

	limits, err := o.Limits()
	if err != nil {
		return err
	}

	if limits.DefaultMinRate.IsZero() || !limits.DefaultMaxRate.GreaterThan(limits.DefaultMinRate) {
		return errors.New("oracle: invalid default rate bounds")
	}

	if limits.MaxRateCeiling.LessThan(limits.DefaultMaxRate) {
		return errors.New("oracle: max_rate_ceiling below max_rate")
	}

	if limits.MinPrice.IsZero() || !limits.MaxPrice.GreaterThan(limits.MinPrice) {
		return errors.New("oracle: invalid price bounds")
	}

	for name, p := range map[string]core.Provider{"feed": config.Feed, "vault": config.Vault} {
		if p.Endpoint != "" && !govalidator.IsURL(p.Endpoint) {
			return fmt.Errorf("%s: invalid endpoint %q", name, p.Endpoint)
		}
	}

	for _, a := range config.Admins {
		if a.ID == "" {
			return errors.New("admins: empty id")
		}
	}

	return nil
}
