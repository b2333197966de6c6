package cmd

import (
	"errors"

	"fairprice/handler/views"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

// migrateCmd creates the asset, price, event and property tables
var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"setdb"},
	Short:   "create or upgrade the oracle tables and seed settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if memoryMode {
			return errors.New("migrate needs a database, drop --memory")
		}

		s := provideStores()
		defer s.db.Close()

		if err := db.Migrate(s.db); err != nil {
			cmd.PrintErrln("migrate database error:", err)
			return err
		}

		seed, _ := cmd.Flags().GetBool("seed")
		if !seed {
			cmd.Println("oracle tables migrated")
			return nil
		}

		// Init persists the configured settings when none are stored yet
		_, o, _ := provideEngine(cmd.Context())
		printJSON(cmd, views.SettingsView(o.Settings(), o.Limits()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("seed", true, "store the configured oracle settings if absent")
}
