package model

// DelayRule selects which delay-rescue formula applies for a convention.
type DelayRule string

const (
	// DelayRuleNone means no formula applies; manual entry is the only source.
	DelayRuleNone DelayRule = "none"
	// DelayRuleDailyRate multiplies delay days by a dated daily waiting-cost rate.
	DelayRuleDailyRate DelayRule = "daily_rate"
	// DelayRulePercentile divides the weighted tier price by the percentile-75
	// day count and multiplies by delay days.
	DelayRulePercentile DelayRule = "percentile75"
)

// Convention represents one payer contract rule set (FONASA/GES convention code).
type Convention struct {
	Code            string // e.g. "FNS012"
	Description     string
	DelayRule       DelayRule
	SuperiorOutlier bool // whether the superior-outlier payment applies
}

// AllConventions lists the supported convention codes in canonical order.
// Codes not listed here fall through to manual-entry behavior.
var AllConventions = []Convention{
	{Code: "CH0041", Description: "GES waiting-list rescue", DelayRule: DelayRuleDailyRate},
	{Code: "FNS012", Description: "FONASA GRD per-case payment", DelayRule: DelayRulePercentile, SuperiorOutlier: true},
	{Code: "FNS026", Description: "FONASA GRD complementary", DelayRule: DelayRulePercentile},
	{Code: "FNS019", Description: "FONASA GRD transitional", DelayRule: DelayRulePercentile},
}

// ConventionByCode returns the Convention for the given code, or ok=false.
func ConventionByCode(code string) (Convention, bool) {
	for _, c := range AllConventions {
		if c.Code == code {
			return c, true
		}
	}
	return Convention{}, false
}

// ConventionCodes returns just the codes for all conventions.
func ConventionCodes() []string {
	codes := make([]string, len(AllConventions))
	for i, c := range AllConventions {
		codes[i] = c.Code
	}
	return codes
}
