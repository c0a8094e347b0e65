package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clinifin/grdload/internal/csvread"
	"github.com/clinifin/grdload/internal/exitcode"
	"github.com/clinifin/grdload/internal/logging"
	"github.com/clinifin/grdload/internal/normalize"
	"github.com/clinifin/grdload/internal/precheck"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry-run precheck of an episode sheet (no writes)",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&cfg.FilePath, "file", "", "Path to episode sheet CSV (required)")
	_ = checkCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.PrecheckError)
	}

	stat, err := os.Stat(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to stat file")
		os.Exit(exitcode.PrecheckError)
	}

	headers, rows, err := csvread.ReadAll(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to read file")
		os.Exit(exitcode.PrecheckError)
	}

	issues := precheck.Validate(headers, rows)

	fmt.Println("=== grdload check ===")
	fmt.Printf("File:       %s\n", cfg.FilePath)
	fmt.Printf("SHA-256:    %s\n", sha)
	fmt.Printf("Size:       %d bytes\n", stat.Size())
	fmt.Printf("Columns:    %d\n", len(headers))
	fmt.Printf("Data rows:  %d\n", len(rows))
	fmt.Println()

	if len(issues) == 0 {
		fmt.Println("Precheck: OK")
		if !precheck.CanConfirm(rows, issues) {
			fmt.Println("Upload would still be blocked: sheet has no data rows")
			os.Exit(exitcode.PrecheckError)
		}
		return nil
	}

	counts := map[precheck.Kind]int{}
	for _, is := range issues {
		counts[is.Kind]++
		if is.Row >= 0 {
			fmt.Printf("  row %-5d %-14s %s\n", is.Row+1, is.Kind, is.Message)
		} else {
			fmt.Printf("  sheet     %-14s %s\n", is.Kind, is.Message)
		}
	}
	fmt.Println()
	fmt.Printf("Precheck: %d issue(s)", len(issues))
	for _, kind := range []precheck.Kind{precheck.KindMissingHeader, precheck.KindDuplicate, precheck.KindEmpty, precheck.KindInvalid} {
		if counts[kind] > 0 {
			fmt.Printf("  %s=%d", kind, counts[kind])
		}
	}
	fmt.Println()
	if precheck.HasCritical(issues) {
		fmt.Println("Critical: required columns missing; row checks were skipped")
	}
	os.Exit(exitcode.PrecheckError)
	return nil
}
