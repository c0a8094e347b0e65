package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/clinifin/grdload/internal/db"
	"github.com/clinifin/grdload/internal/model"
	"github.com/clinifin/grdload/internal/normalize"
	"github.com/clinifin/grdload/internal/progress"
	embedsql "github.com/clinifin/grdload/internal/sql"
)

const stageBatchSize = 256

// StageResult holds metrics from the staging phase.
type StageResult struct {
	RowsRead     int64
	RowsStaged   int64
	RowsRejected int64
	Duration     time.Duration
}

// Stage normalizes the sheet rows and COPY-loads them into the staging table
// via a channel-backed CopyFromSource.
func Stage(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, tracker progress.Tracker) (*StageResult, error) {
	start := time.Now()

	ch := make(chan *model.StagingEpisode, stageBatchSize)
	errCh := make(chan error, 1)

	var rowsRead, rowsRejected int64
	tracker.SetTotal(int64(len(pf.Rows)))

	// Producer goroutine: normalize rows → push to channel.
	go func() {
		defer close(ch)
		for i, row := range pf.Rows {
			rowNum := int64(i) + 1
			rowsRead++

			staging, normErr := normalize.ToStagingEpisode(row, pf.IngestBatchID, pf.ImportFileID, rowNum)
			if normErr != nil {
				rowsRejected++
				log.Warn().Err(normErr).Int64("row", rowNum).Msg("row rejected")
				tracker.Increment()
				continue
			}

			select {
			case ch <- staging:
				tracker.Increment()
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
		errCh <- nil
	}()

	// Consumer: COPY from channel into staging table.
	source := db.NewChannelSource(ch)
	rowsStaged, err := pool.CopyFrom(ctx,
		pgx.Identifier{"ingest", "stage_episodes"},
		model.StagingColumns(),
		source,
	)

	prodErr := <-errCh
	tracker.Done()
	if prodErr != nil {
		return nil, fmt.Errorf("stage producer: %w", prodErr)
	}
	if err != nil {
		return nil, fmt.Errorf("stage copy: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int64("rows_read", rowsRead).
		Int64("rows_staged", rowsStaged).
		Int64("rows_rejected", rowsRejected).
		Str("duration", dur.String()).
		Msg("staging complete")

	return &StageResult{
		RowsRead:     rowsRead,
		RowsStaged:   rowsStaged,
		RowsRejected: rowsRejected,
		Duration:     dur,
	}, nil
}

// UpdateStatus updates the import file status.
func UpdateStatus(ctx context.Context, pool *pgxpool.Pool, importFileID int64, status string) error {
	_, err := pool.Exec(ctx, embedsql.UpdateImportStatus, importFileID, status)
	return err
}
