package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clinifin/grdload/internal/db"
	"github.com/clinifin/grdload/internal/exitcode"
	"github.com/clinifin/grdload/internal/export"
	"github.com/clinifin/grdload/internal/logging"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a payment report to Parquet",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&cfg.OutPath, "out", "", "Output Parquet file path (required)")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

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

	written, err := export.PaymentReport(ctx, pool, log, cfg.OutPath)
	if err != nil {
		log.Error().Err(err).Msg("export failed")
		os.Exit(exitcode.CalcError)
	}

	fmt.Printf("Export complete: %d row(s) written to %s\n", written, cfg.OutPath)
	return nil
}
