package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clinifin/grdload/internal/db"
	"github.com/clinifin/grdload/internal/exitcode"
	"github.com/clinifin/grdload/internal/ingest"
	"github.com/clinifin/grdload/internal/logging"
	"github.com/clinifin/grdload/internal/progress"
)

var configPath string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import an episode sheet CSV into the database",
	RunE:  runImport,
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to episode sheet CSV (required)")
	f.StringVar(&configPath, "config", "", "Path to YAML config (convention subset)")
	f.BoolVar(&cfg.Force, "force", false, "Re-import an already-loaded file and proceed past advisory precheck issues")
	f.BoolVar(&cfg.KeepStaging, "keep-staging", false, "Keep staging rows after merge")
	f.BoolVar(&cfg.SkipRecalc, "skip-recalc", false, "Skip payment recalculation after merge")
	f.BoolVar(&cfg.Progress, "progress", false, "Show a progress bar during staging")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if configPath != "" {
		if err := cfg.LoadFromFile(configPath); err != nil {
			log.Error().Err(err).Msg("config file invalid")
			os.Exit(exitcode.UsageError)
		}
	}
	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	var prog progress.Manager = progress.NoopManager{}
	if cfg.Progress && cfg.LogFormat == "text" {
		prog = progress.NewMPBManager()
	}

	summary, err := ingest.Run(ctx, pool, log, &cfg, prog)
	prog.Wait()
	if err != nil {
		var pe *ingest.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("import failed")
			switch pe.Phase {
			case "preflight", "precheck":
				os.Exit(exitcode.PrecheckError)
			case "stage":
				os.Exit(exitcode.CopyError)
			default:
				os.Exit(exitcode.CalcError)
			}
		}
		log.Error().Err(err).Msg("import failed")
		os.Exit(exitcode.CalcError)
	}

	fmt.Printf("Import complete: %d rows staged, %d episodes merged, %d recalculated (%.1fs)\n",
		summary.RowsStaged, summary.EpisodesMerged, summary.EpisodesRecalc,
		summary.DurationTotal.Seconds())
	if summary.CalcDegraded > 0 {
		fmt.Printf("Warning: %d episode(s) have degraded payment calculations; see log\n", summary.CalcDegraded)
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
