package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/clinifin/grdload/internal/sql"
)

// Finalize marks the import file as imported, records row counts, and runs
// ANALYZE on the touched tables.
func Finalize(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, importFileID, rowsRead, rowsStaged int64) (time.Duration, error) {
	start := time.Now()

	if _, err := pool.Exec(ctx,
		"UPDATE ingest.import_files SET status = 'imported', rows_read = $2, rows_staged = $3, updated_at = now() WHERE import_file_id = $1",
		importFileID, rowsRead, rowsStaged,
	); err != nil {
		return 0, fmt.Errorf("mark import file imported: %w", err)
	}

	if _, err := pool.Exec(ctx, embedsql.AnalyzeEpisodes); err != nil {
		return 0, fmt.Errorf("analyze episodes: %w", err)
	}
	if _, err := pool.Exec(ctx, embedsql.AnalyzeStaging); err != nil {
		return 0, fmt.Errorf("analyze staging: %w", err)
	}
	log.Info().Msg("ANALYZE complete")

	return time.Since(start), nil
}
