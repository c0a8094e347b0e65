package ingest

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/clinifin/grdload/internal/model"
	"github.com/clinifin/grdload/internal/normalize"
	"github.com/clinifin/grdload/internal/refdata"
	embedsql "github.com/clinifin/grdload/internal/sql"
	"github.com/clinifin/grdload/internal/tariff"
)

// RecalcResult holds metrics from a payment recalculation pass.
type RecalcResult struct {
	EpisodesRecalced int64
	Degraded         int64
	Duration         time.Duration
}

// Recalc recomputes both payments for every episode under the given
// conventions. Reference data is loaded once up front; updates go out as a
// single pgx batch. Degraded calculations are logged per episode but never
// stop the pass.
func Recalc(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, conventions []string) (*RecalcResult, error) {
	start := time.Now()

	src, err := refdata.Load(ctx, pool)
	if err != nil {
		return nil, fmt.Errorf("recalc load reference data: %w", err)
	}

	rows, err := pool.Query(ctx, embedsql.SelectRecalcEpisodes, conventions)
	if err != nil {
		return nil, fmt.Errorf("recalc select episodes: %w", err)
	}
	var episodes []model.Episode
	for rows.Next() {
		var r model.Episode
		if err := rows.Scan(
			&r.EpisodeID, &r.EpisodeCode, &r.ConventionCode, &r.GRDCode,
			&r.GRDWeight, &r.BasePriceTierCents, &r.LengthOfStayDays,
			&r.DelayDays, &r.AdmissionDate, &r.InlierOutlier, &r.ManualDelayCents,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("recalc scan episode: %w", err)
		}
		episodes = append(episodes, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recalc read episodes: %w", err)
	}

	var degraded int64
	batch := &pgx.Batch{}
	for _, e := range episodes {
		basePrice := normalize.CentsToAmount(e.BasePriceTierCents)

		delayRes := tariff.DelayRescuePayment(ctx, src, tariff.DelayInput{
			ConventionCode: e.ConventionCode,
			GRDCode:        e.GRDCode,
			DelayDays:      e.DelayDays,
			ManualOverride: normalize.CentsToAmount(e.ManualDelayCents),
			GRDWeight:      e.GRDWeight,
			BasePriceTier:  basePrice,
			AdmissionDate:  e.AdmissionDate,
		})

		outlierRes := tariff.SuperiorOutlierPayment(ctx, src, tariff.OutlierInput{
			ConventionCode:   e.ConventionCode,
			GRDCode:          e.GRDCode,
			LengthOfStayDays: e.LengthOfStayDays,
			GRDWeight:        e.GRDWeight,
			BasePrice:        basePrice,
			InlierOutlier:    e.InlierOutlier,
		})

		isDegraded := delayRes.Degraded() || outlierRes.Degraded()
		if isDegraded {
			degraded++
			ev := log.Warn().Str("episode", e.EpisodeCode)
			if delayRes.Issue != nil {
				ev = ev.Str("delay_issue", string(delayRes.Issue.Kind)).Str("delay_detail", delayRes.Issue.Message)
			}
			if outlierRes.Issue != nil {
				ev = ev.Str("outlier_issue", string(outlierRes.Issue.Kind)).Str("outlier_detail", outlierRes.Issue.Message)
			}
			ev.Msg("payment calculation degraded")
		}

		batch.Queue(embedsql.UpdateEpisodePayments,
			e.EpisodeID,
			amountCents(delayRes.Amount),
			amountCents(outlierRes.Amount),
			isDegraded,
		)
	}

	if batch.Len() > 0 {
		br := pool.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return nil, fmt.Errorf("recalc update payments: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return nil, fmt.Errorf("recalc close batch: %w", err)
		}
	}

	dur := time.Since(start)
	log.Info().
		Int("episodes", len(episodes)).
		Int64("degraded", degraded).
		Str("duration", dur.String()).
		Msg("recalculation complete")

	return &RecalcResult{
		EpisodesRecalced: int64(len(episodes)),
		Degraded:         degraded,
		Duration:         dur,
	}, nil
}

func amountCents(v float64) int64 {
	return int64(math.Round(v * 100))
}
