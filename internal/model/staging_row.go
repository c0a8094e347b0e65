package model

import (
	"time"

	"github.com/google/uuid"
)

// StagingEpisode is the normalized, DB-ready representation of a single
// episode sheet row. Money values are stored as int64 cents.
type StagingEpisode struct {
	IngestBatchID uuid.UUID
	ImportFileID  int64

	SourceRowNumber int64
	SourceRowHash   []byte

	EpisodeCode    string
	ConventionCode string
	GRDCode        string
	GRDWeight      *float64

	BasePriceTierCents *int64

	LengthOfStayDays *int32
	DelayDays        *int32

	AdmissionDate *time.Time
	DischargeDate *time.Time

	InlierOutlier    *string
	DischargeService *string
	ATFlag           *bool

	ManualDelayCents *int64
}

// StagingColumns returns the ordered column names for COPY into
// ingest.stage_episodes.
func StagingColumns() []string {
	return []string{
		"ingest_batch_id",
		"import_file_id",
		"source_row_number",
		"source_row_hash",
		"episode_code",
		"convention_code",
		"grd_code",
		"grd_weight",
		"base_price_tier_cents",
		"length_of_stay_days",
		"delay_days",
		"admission_date",
		"discharge_date",
		"inlier_outlier",
		"discharge_service",
		"at_flag",
		"manual_delay_cents",
	}
}

// CopyValues returns the row values in the same order as StagingColumns(),
// suitable for pgx CopyFromSource.
func (r *StagingEpisode) CopyValues() []any {
	return []any{
		r.IngestBatchID,
		r.ImportFileID,
		r.SourceRowNumber,
		r.SourceRowHash,
		r.EpisodeCode,
		r.ConventionCode,
		r.GRDCode,
		r.GRDWeight,
		r.BasePriceTierCents,
		r.LengthOfStayDays,
		r.DelayDays,
		r.AdmissionDate,
		r.DischargeDate,
		r.InlierOutlier,
		r.DischargeService,
		r.ATFlag,
		r.ManualDelayCents,
	}
}
