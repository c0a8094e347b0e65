package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/clinifin/grdload/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "grdload",
	Short: "CMBD episode sheet → Postgres loader and GRD payment calculator",
	Long:  "Validates and bulk-loads CMBD episode sheets into Postgres, recomputes GRD-based reimbursement payments (delay rescue and superior outlier), and exports payment reports.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("GRDLOAD_DB_URL"), "Postgres connection string (or set GRDLOAD_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
}
