package cmd

import (
	"fairprice/service/oracle"
	"fairprice/worker/keeper"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

func provideKeeper(o *oracle.Oracle) *keeper.Worker {
	w, err := keeper.New(o, cfg.Keeper)
	if err != nil {
		panic(err)
	}

	return w
}

var keeperCmd = &cobra.Command{
	Use:   "keeper",
	Short: "refresh every supported asset price on schedule",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		_, o, _ := provideEngine(ctx)
		w := provideKeeper(o)

		once, _ := cmd.Flags().GetBool("once")
		if once {
			r, err := w.Tick(ctx)
			if err != nil {
				cmd.PrintErrln("keeper round failed:", err)
				return
			}

			cmd.Printf("updated %d failed %d skipped %v\n", r.Updated, r.Failed, r.Skipped)
			return
		}

		_ = w.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(keeperCmd)
	keeperCmd.Flags().Bool("once", false, "run a single round and exit")
}
