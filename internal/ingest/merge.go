package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/clinifin/grdload/internal/sql"
)

// MergeResult holds metrics from the staging→episodes merge.
type MergeResult struct {
	EpisodesMerged int64
	Duration       time.Duration
}

// Merge upserts the staged batch into billing.episodes, keyed by
// episode_code. Existing episodes are updated in place; nothing is deleted.
func Merge(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, batchID uuid.UUID) (*MergeResult, error) {
	start := time.Now()

	tag, err := pool.Exec(ctx, embedsql.MergeEpisodes, batchID)
	if err != nil {
		return nil, fmt.Errorf("merge episodes: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int64("episodes_merged", tag.RowsAffected()).
		Str("duration", dur.String()).
		Msg("merge complete")

	return &MergeResult{
		EpisodesMerged: tag.RowsAffected(),
		Duration:       dur,
	}, nil
}
