package tariff

import (
	"context"
	"time"
)

// System-config keys carrying fallback constants when a GRD norm record is
// incomplete. The key spellings are historical and shared with the admin UI.
const (
	ConfigKeyDaysPercentile75 = "diasPercentil75"
	ConfigKeyPercentile50     = "percentil50"
)

// GRDNorms holds the normative length-of-stay references for one GRD group.
// Absent fields stay nil; zero and negative values are treated as absent by
// the calculator.
type GRDNorms struct {
	Percentile50     *float64
	Percentile75     *float64
	SuperiorCutpoint *float64
}

// ReferenceSource provides the external reference data the calculator needs.
// Implementations may hit a database; the calculator treats every failure as
// "absent" and degrades instead of propagating errors.
type ReferenceSource interface {
	// GRDNorms returns the norm record for a GRD code, or (nil, nil) when no
	// record exists.
	GRDNorms(ctx context.Context, grdCode string) (*GRDNorms, error)

	// ConfigValue returns the raw system-config value for key.
	ConfigValue(ctx context.Context, key string) (string, bool, error)

	// DailyWaitingRate returns the daily waiting-cost rate in effect on the
	// given admission date.
	DailyWaitingRate(ctx context.Context, admissionDate time.Time) (float64, bool, error)
}
