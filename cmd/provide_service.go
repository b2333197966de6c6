package cmd

import (
	"context"
	"time"

	"fairprice/core"
	"fairprice/service/admin"
	"fairprice/service/feed"
	"fairprice/service/notifier"
	"fairprice/service/oracle"
	"fairprice/service/vault"
)

func provideConfig() *core.Config {
	return &cfg
}

func provideFeedProvider() core.FeedProvider {
	return feed.New(cfg.Feed.Endpoint, time.Duration(cfg.Feed.Timeout)*time.Second)
}

func provideVaultProvider() core.VaultProvider {
	return vault.New(cfg.Vault.Endpoint, time.Duration(cfg.Vault.Timeout)*time.Second)
}

func provideNotifier(s *stores) core.Notifier {
	return notifier.New(s.events)
}

func provideOracle(ctx context.Context, s *stores, feeds core.FeedProvider, vaults core.VaultProvider, n core.Notifier) *oracle.Oracle {
	limits, err := cfg.Oracle.Limits()
	if err != nil {
		panic(err)
	}

	o := oracle.New(s.assets, s.prices, s.settings, feeds, vaults, *limits, oracle.WithNotifier(n))
	if err := o.Init(ctx, cfg.Oracle.Settings()); err != nil {
		panic(err)
	}

	return o
}

func provideAdminService(o *oracle.Oracle, s *stores, feeds core.FeedProvider, vaults core.VaultProvider, n core.Notifier) *admin.Service {
	return admin.New(provideConfig(), o, s.assets, feeds, vaults, n)
}

// provideEngine wires stores, providers and the oracle the way every command needs them
func provideEngine(ctx context.Context) (*stores, *oracle.Oracle, *admin.Service) {
	s := provideStores()
	feeds := provideFeedProvider()
	vaults := provideVaultProvider()
	n := provideNotifier(s)

	o := provideOracle(ctx, s, feeds, vaults, n)
	return s, o, provideAdminService(o, s, feeds, vaults, n)
}
