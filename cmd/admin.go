package cmd

import (
	"time"

	"fairprice/handler/views"
	"fairprice/pkg/number"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "owner gated oracle configuration",
}

func actorFlag(cmd *cobra.Command) string {
	actor, _ := cmd.Flags().GetString("actor")
	if actor == "" && len(cfg.Admins) > 0 {
		actor = cfg.Admins[0].ID
	}

	return actor
}

var registerFeedCmd = &cobra.Command{
	Use:   "register-feed <asset> <feed> <decimals>",
	Short: "price asset from an external feed",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		decimals, err := cast.ToUint8E(args[2])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		_, _, s := provideEngine(ctx)
		asset, err := s.RegisterFeed(ctx, actorFlag(cmd), args[0], args[1], decimals)
		if err != nil {
			return err
		}

		printJSON(cmd, views.AssetView(asset))
		return nil
	},
}

var registerVaultCmd = &cobra.Command{
	Use:   "register-vault <vault> <underlying>",
	Short: "price vault shares through the underlying asset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, _, s := provideEngine(ctx)
		asset, err := s.RegisterVault(ctx, actorFlag(cmd), args[0], args[1])
		if err != nil {
			return err
		}

		printJSON(cmd, views.AssetView(asset))
		return nil
	},
}

var manualPriceCmd = &cobra.Command{
	Use:   "manual-price <asset> <price>",
	Short: "pin asset to a manual price",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := number.ParseWad(args[1])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		_, _, s := provideEngine(ctx)
		return s.SetManualPrice(ctx, actorFlag(cmd), args[0], price)
	},
}

var disableManualCmd = &cobra.Command{
	Use:   "disable-manual <asset>",
	Short: "return asset to feed or vault pricing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, _, s := provideEngine(ctx)
		return s.DisableManualPrice(ctx, actorFlag(cmd), args[0])
	},
}

var stalePeriodCmd = &cobra.Command{
	Use:   "stale-period <seconds>",
	Short: "set the freshness window of cached prices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds, err := cast.ToInt64E(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		_, _, s := provideEngine(ctx)
		return s.SetStalePeriod(ctx, actorFlag(cmd), time.Duration(seconds)*time.Second)
	},
}

var fallbackStalePeriodCmd = &cobra.Command{
	Use:   "fallback-stale-period <seconds>",
	Short: "set how old a fallback price may be",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds, err := cast.ToInt64E(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		_, _, s := provideEngine(ctx)
		return s.SetFallbackStalePeriod(ctx, actorFlag(cmd), time.Duration(seconds)*time.Second)
	},
}

var rateBoundsCmd = &cobra.Command{
	Use:   "rate-bounds <asset> <min> <max>",
	Short: "set the conversion rate band of a vault asset",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		min, err := number.ParseWad(args[1])
		if err != nil {
			return err
		}

		max, err := number.ParseWad(args[2])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		_, _, s := provideEngine(ctx)
		return s.SetVaultRateBounds(ctx, actorFlag(cmd), args[0], min, max)
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause [reason]",
	Short: "stop every price fetch",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, _, s := provideEngine(ctx)
		return s.Pause(ctx, actorFlag(cmd), reasonArg(args))
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume [reason]",
	Short: "lift a pause",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, _, s := provideEngine(ctx)
		return s.Resume(ctx, actorFlag(cmd), reasonArg(args))
	},
}

func reasonArg(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return args[0]
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.PersistentFlags().String("actor", "", "admin id, defaults to the first configured admin")
	adminCmd.AddCommand(
		registerFeedCmd,
		registerVaultCmd,
		manualPriceCmd,
		disableManualCmd,
		stalePeriodCmd,
		fallbackStalePeriodCmd,
		rateBoundsCmd,
		pauseCmd,
		resumeCmd,
	)
}
