package model

import "time"

// Episode is a hospital discharge episode as persisted in billing.episodes.
// Money values are stored as int64 cents; day counts and the GRD case weight
// stay nullable because source sheets routinely omit them.
type Episode struct {
	EpisodeID   int64
	EpisodeCode string

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
	AT               TriState

	// Manually entered delay-rescue amount, used as the fallback whenever no
	// formula applies or reference data is unavailable.
	ManualDelayCents *int64

	// Derived payments, recomputed by the tariff calculator.
	DelayRescueCents     *int64
	SuperiorOutlierCents *int64
	CalcDegraded         bool
}

// OutlierSuperior is the only inlier/outlier flag value that triggers the
// superior-outlier payment. Matched exactly, including case.
const OutlierSuperior = "Outlier Superior"
