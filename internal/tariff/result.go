package tariff

// IssueKind classifies why a calculation degraded to a default value.
type IssueKind string

const (
	// IssueLookupFailed: a reference lookup returned an error; the safe
	// default (manual override or zero) was used instead.
	IssueLookupFailed IssueKind = "lookup_failed"
	// IssueRateUnavailable: no daily waiting-cost rate exists for the
	// episode's admission date.
	IssueRateUnavailable IssueKind = "rate_unavailable"
	// IssueMissingCutpoint: the GRD norm record lacks a positive superior
	// cut-point, which aborts the outlier calculation.
	IssueMissingCutpoint IssueKind = "missing_cutpoint"
	// IssueMissingPercentile50: neither the norm record nor system config
	// carries a positive percentile-50 value.
	IssueMissingPercentile50 IssueKind = "missing_percentile50"
	// IssueCoercedDenominator: the percentile-75 fallback chain ran dry and
	// the denominator was coerced to 1 to avoid dividing by zero.
	IssueCoercedDenominator IssueKind = "coerced_denominator"
)

// Issue describes a degraded calculation.
type Issue struct {
	Kind    IssueKind
	Message string
}

// Result is the outcome of a payment calculation. Amount always holds a
// usable value; Issue is non-nil when the calculation degraded, so callers
// can surface the degradation instead of silently accepting a placeholder.
// Calculations never return Go errors.
type Result struct {
	Amount float64
	Issue  *Issue
}

// Degraded reports whether the amount is a fallback rather than a full
// formula evaluation.
func (r Result) Degraded() bool {
	return r.Issue != nil
}

func degraded(amount float64, kind IssueKind, msg string) Result {
	return Result{Amount: amount, Issue: &Issue{Kind: kind, Message: msg}}
}
