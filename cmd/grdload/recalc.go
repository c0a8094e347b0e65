package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clinifin/grdload/internal/db"
	"github.com/clinifin/grdload/internal/exitcode"
	"github.com/clinifin/grdload/internal/ingest"
	"github.com/clinifin/grdload/internal/logging"
)

var recalcConfigPath string

var recalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Recompute payments for episodes already in the database",
	RunE:  runRecalc,
}

func init() {
	recalcCmd.Flags().StringVar(&recalcConfigPath, "config", "", "Path to YAML config (convention subset)")
	rootCmd.AddCommand(recalcCmd)
}

func runRecalc(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if recalcConfigPath != "" {
		if err := cfg.LoadFromFile(recalcConfigPath); err != nil {
			log.Error().Err(err).Msg("config file invalid")
			os.Exit(exitcode.UsageError)
		}
	}
	if cfg.DSN == "" {
		log.Error().Msg("--dsn or GRDLOAD_DB_URL is required")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	result, err := ingest.Recalc(ctx, pool, log, cfg.ConventionFilter())
	if err != nil {
		log.Error().Err(err).Msg("recalculation failed")
		os.Exit(exitcode.CalcError)
	}

	fmt.Printf("Recalculation complete: %d episode(s), %d degraded (%.1fs)\n",
		result.EpisodesRecalced, result.Degraded, result.Duration.Seconds())
	if result.Degraded > 0 {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
