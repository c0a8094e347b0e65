package refdata

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinifin/grdload/internal/tariff"
)

// Load reads all reference tables into a StaticSource. Payment recalculation
// over a batch then needs no further round trips.
func Load(ctx context.Context, pool *pgxpool.Pool) (*StaticSource, error) {
	src := NewStaticSource()

	rows, err := pool.Query(ctx,
		"SELECT grd_code, percentile50, percentile75, superior_cutpoint FROM ref.grd_norms")
	if err != nil {
		return nil, fmt.Errorf("load grd norms: %w", err)
	}
	for rows.Next() {
		var code string
		var n tariff.GRDNorms
		if err := rows.Scan(&code, &n.Percentile50, &n.Percentile75, &n.SuperiorCutpoint); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan grd norm: %w", err)
		}
		src.Norms[code] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read grd norms: %w", err)
	}

	rows, err = pool.Query(ctx, "SELECT key, value FROM ref.system_config")
	if err != nil {
		return nil, fmt.Errorf("load system config: %w", err)
	}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan system config: %w", err)
		}
		src.Config[k] = v
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read system config: %w", err)
	}

	rows, err = pool.Query(ctx,
		"SELECT effective_from, daily_rate_cents FROM ref.waiting_cost_rates ORDER BY effective_from")
	if err != nil {
		return nil, fmt.Errorf("load waiting-cost rates: %w", err)
	}
	for rows.Next() {
		var from time.Time
		var cents int64
		if err := rows.Scan(&from, &cents); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan waiting-cost rate: %w", err)
		}
		src.rates = append(src.rates, WaitingRate{EffectiveFrom: from, DailyRate: float64(cents) / 100})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read waiting-cost rates: %w", err)
	}

	return src, nil
}
