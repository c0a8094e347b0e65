package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/clinifin/grdload/internal/config"
	"github.com/clinifin/grdload/internal/model"
	"github.com/clinifin/grdload/internal/precheck"
	"github.com/clinifin/grdload/internal/progress"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full import pipeline: preflight → precheck → stage →
// merge → recalc → finalize → cleanup.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config, prog progress.Manager) (*model.ImportSummary, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	log.Info().Str("file", cfg.FilePath).Msg("starting preflight")
	pf, err := Preflight(ctx, pool, log, cfg.FilePath, cfg.Force)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	if pf.AlreadyLoaded {
		log.Info().
			Int64("import_file_id", pf.ImportFileID).
			Str("sha256", pf.FileSHA256).
			Msg("file already imported, skipping (use --force to re-import)")
		return &model.ImportSummary{
			FilePath:      pf.FilePath,
			FileSHA256:    pf.FileSHA256,
			ImportFileID:  pf.ImportFileID,
			IngestBatchID: pf.IngestBatchID.String(),
			DurationTotal: time.Since(totalStart),
		}, nil
	}

	// Phase 2: Precheck
	log.Info().Msg("starting precheck")
	pcStart := time.Now()
	issues := precheck.Validate(pf.Headers, pf.Rows)
	logIssues(log, issues)
	pcDur := time.Since(pcStart)

	if len(issues) > 0 {
		critical := precheck.HasCritical(issues)
		if critical || !cfg.Force {
			_ = UpdateStatus(ctx, pool, pf.ImportFileID, "rejected")
			return nil, &PipelineError{
				Phase: "precheck",
				Err:   fmt.Errorf("%d issue(s) found (critical=%v)", len(issues), critical),
			}
		}
		log.Warn().Int("issues", len(issues)).Msg("proceeding past advisory issues (--force)")
	}
	if len(pf.Rows) == 0 {
		_ = UpdateStatus(ctx, pool, pf.ImportFileID, "rejected")
		return nil, &PipelineError{Phase: "precheck", Err: fmt.Errorf("sheet has no data rows")}
	}

	// Phase 3: Stage
	log.Info().Msg("starting staging")
	if err := UpdateStatus(ctx, pool, pf.ImportFileID, "staging"); err != nil {
		return nil, &PipelineError{Phase: "stage", Err: err}
	}

	tracker := prog.NewTracker(pf.FilePath)
	stageResult, err := Stage(ctx, pool, log, pf, tracker)
	if err != nil {
		_ = UpdateStatus(ctx, pool, pf.ImportFileID, "failed")
		return nil, &PipelineError{Phase: "stage", Err: err}
	}

	// Phase 4: Merge
	log.Info().Msg("starting merge")
	mergeResult, err := Merge(ctx, pool, log, pf.IngestBatchID)
	if err != nil {
		_ = UpdateStatus(ctx, pool, pf.ImportFileID, "failed")
		return nil, &PipelineError{Phase: "merge", Err: err}
	}

	// Phase 5: Recalculate payments
	var recalcResult *RecalcResult
	if cfg.SkipRecalc {
		log.Info().Msg("skipping payment recalculation (--skip-recalc)")
		recalcResult = &RecalcResult{}
	} else {
		log.Info().Msg("starting payment recalculation")
		recalcResult, err = Recalc(ctx, pool, log, cfg.ConventionFilter())
		if err != nil {
			_ = UpdateStatus(ctx, pool, pf.ImportFileID, "failed")
			return nil, &PipelineError{Phase: "recalc", Err: err}
		}
	}

	// Phase 6: Finalize
	log.Info().Msg("finalizing")
	_, err = Finalize(ctx, pool, log, pf.ImportFileID, stageResult.RowsRead, stageResult.RowsStaged)
	if err != nil {
		_ = UpdateStatus(ctx, pool, pf.ImportFileID, "failed")
		return nil, &PipelineError{Phase: "finalize", Err: err}
	}

	// Phase 7: Cleanup staging
	if !cfg.KeepStaging {
		log.Info().Msg("cleaning up staging")
		if err := Cleanup(ctx, pool, log, pf.IngestBatchID); err != nil {
			log.Warn().Err(err).Msg("staging cleanup failed (non-fatal)")
		}
	}

	summary := &model.ImportSummary{
		FilePath:         pf.FilePath,
		FileSHA256:       pf.FileSHA256,
		ImportFileID:     pf.ImportFileID,
		IngestBatchID:    pf.IngestBatchID.String(),
		RowsRead:         stageResult.RowsRead,
		RowsStaged:       stageResult.RowsStaged,
		RowsRejected:     stageResult.RowsRejected,
		EpisodesMerged:   mergeResult.EpisodesMerged,
		EpisodesRecalc:   recalcResult.EpisodesRecalced,
		CalcDegraded:     recalcResult.Degraded,
		PrecheckIssues:   len(issues),
		DurationPrecheck: pcDur,
		DurationCopy:     stageResult.Duration,
		DurationMerge:    mergeResult.Duration,
		DurationRecalc:   recalcResult.Duration,
		DurationTotal:    time.Since(totalStart),
	}

	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_staged", summary.RowsStaged).
		Int64("episodes_merged", summary.EpisodesMerged).
		Int64("episodes_recalculated", summary.EpisodesRecalc).
		Int64("calc_degraded", summary.CalcDegraded).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("import pipeline complete")

	return summary, nil
}

func logIssues(log zerolog.Logger, issues []precheck.Issue) {
	for _, is := range issues {
		ev := log.Warn().Str("kind", string(is.Kind)).Str("column", is.Column)
		if is.Row >= 0 {
			ev = ev.Int("row", is.Row)
		}
		ev.Msg(is.Message)
	}
}
