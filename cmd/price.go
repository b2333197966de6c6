package cmd

import (
	"encoding/json"
	"fmt"

	"fairprice/handler/views"

	"github.com/spf13/cobra"
)

func printJSON(cmd *cobra.Command, v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	cmd.Println(string(data))
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "read, refresh or quote asset prices",
}

var priceGetCmd = &cobra.Command{
	Use:   "get <asset>",
	Short: "show the cached price if it is fresh",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, o, _ := provideEngine(ctx)

		p, err := o.GetPrice(ctx, args[0])
		if err != nil {
			return err
		}

		printJSON(cmd, views.PriceView(p, o.Now()))
		return nil
	},
}

var priceRefreshCmd = &cobra.Command{
	Use:   "refresh <asset>...",
	Short: "resolve and store the price of assets",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, o, _ := provideEngine(ctx)

		var failed int
		for _, assetID := range args {
			r, err := o.FetchAndUpdate(ctx, assetID)
			if err != nil {
				cmd.PrintErrln(assetID, err)
				failed++
				continue
			}

			printJSON(cmd, views.ResolutionView(r))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d assets failed", failed, len(args))
		}

		return nil
	},
}

var priceQuoteCmd = &cobra.Command{
	Use:   "quote <asset>",
	Short: "resolve the price without storing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, o, _ := provideEngine(ctx)

		r, err := o.ResolvePrice(ctx, args[0])
		if err != nil {
			return err
		}

		printJSON(cmd, views.ResolutionView(r))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(priceCmd)
	priceCmd.AddCommand(priceGetCmd, priceRefreshCmd, priceQuoteCmd)
}
