package main

import (
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	var file, actor string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load currencies, entities, books, accounts and fx rates from YAML",
		Long: `Load reference data into the configured store. Rows are upserted, so the
command can be re-run after editing the file. Without --file the built-in seed is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seed.Load(file)
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer closeStore()

			stats, err := f.Apply(cmd.Context(), store, actor)
			if err != nil {
				return err
			}
			a.logger.Info("Seed applied",
				slog.Int("currencies", stats.Currencies),
				slog.Int("entities", stats.Entities),
				slog.Int("books", stats.Books),
				slog.Int("accounts", stats.Accounts),
				slog.Int("fx_rates", stats.FxRates),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "seed YAML file (default: built-in seed)")
	cmd.Flags().StringVar(&actor, "actor", "system", "actor recorded on seeded rows")
	return cmd
}
