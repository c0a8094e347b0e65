// Package export writes payment report files for downstream analysis.
package export

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"github.com/clinifin/grdload/internal/model"
	"github.com/clinifin/grdload/internal/normalize"
	embedsql "github.com/clinifin/grdload/internal/sql"
)

const writeBatchSize = 1024

// PaymentReport writes every episode with its computed payments to a
// Parquet file at outPath. Returns the number of rows written.
func PaymentReport(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, outPath string) (int64, error) {
	start := time.Now()

	rows, err := pool.Query(ctx, embedsql.SelectPaymentRows)
	if err != nil {
		return 0, fmt.Errorf("export select episodes: %w", err)
	}
	defer rows.Close()

	f, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("export create file: %w", err)
	}
	w := parquet.NewGenericWriter[model.PaymentRow](f)

	var written int64
	buf := make([]model.PaymentRow, 0, writeBatchSize)
	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("export write rows: %w", err)
		}
		written += int64(len(buf))
		buf = buf[:0]
		return nil
	}

	for rows.Next() {
		var (
			r                       model.PaymentRow
			basePriceCents          *int64
			delayCents, outlierCents *int64
			admission, discharge    *time.Time
		)
		if err := rows.Scan(
			&r.EpisodeCode, &r.ConventionCode, &r.GRDCode, &r.GRDWeight,
			&basePriceCents, &r.LengthOfStayDays, &r.DelayDays,
			&admission, &discharge, &r.InlierOutlier,
			&delayCents, &outlierCents, &r.CalcDegraded,
		); err != nil {
			f.Close()
			return 0, fmt.Errorf("export scan episode: %w", err)
		}
		r.BasePriceTier = normalize.CentsToAmount(basePriceCents)
		r.DelayRescuePayment = normalize.CentsToAmount(delayCents)
		r.SuperiorOutlierPayment = normalize.CentsToAmount(outlierCents)
		r.AdmissionDate = dateString(admission)
		r.DischargeDate = dateString(discharge)

		buf = append(buf, r)
		if len(buf) == writeBatchSize {
			if err := flush(); err != nil {
				f.Close()
				return 0, err
			}
		}
	}
	if err := rows.Err(); err != nil {
		f.Close()
		return 0, fmt.Errorf("export read episodes: %w", err)
	}
	if err := flush(); err != nil {
		f.Close()
		return 0, err
	}

	if err := w.Close(); err != nil {
		f.Close()
		return 0, fmt.Errorf("export close writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("export close file: %w", err)
	}

	log.Info().
		Int64("rows", written).
		Str("file", outPath).
		Dur("duration", time.Since(start)).
		Msg("payment report exported")

	return written, nil
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
