package tariff_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/clinifin/grdload/internal/refdata"
	"github.com/clinifin/grdload/internal/tariff"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int32) *int32     { return &v }
func sptr(s string) *string   { return &s }

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

// newSource builds a StaticSource with one fully-populated GRD norm record.
func newSource(t *testing.T) *refdata.StaticSource {
	t.Helper()
	src := refdata.NewStaticSource()
	src.Norms["014101"] = tariff.GRDNorms{
		Percentile50:     fptr(3),
		Percentile75:     fptr(5),
		SuperiorCutpoint: fptr(12),
	}
	return src
}

// errSource fails every lookup, for exercising the degradation paths.
type errSource struct{}

func (errSource) GRDNorms(context.Context, string) (*tariff.GRDNorms, error) {
	return nil, errors.New("norms table unavailable")
}
func (errSource) ConfigValue(context.Context, string) (string, bool, error) {
	return "", false, errors.New("config table unavailable")
}
func (errSource) DailyWaitingRate(context.Context, time.Time) (float64, bool, error) {
	return 0, false, errors.New("rates table unavailable")
}

// ---------- delay rescue payment ----------

func TestDelayRescue_ZeroDelayReturnsManual(t *testing.T) {
	ctx := context.Background()
	src := newSource(t)

	for _, conv := range []string{"CH0041", "FNS012", "FNS026", "FNS019", "XX9999", ""} {
		res := tariff.DelayRescuePayment(ctx, src, tariff.DelayInput{
			ConventionCode: conv,
			GRDCode:        "014101",
			DelayDays:      iptr(0),
			ManualOverride: fptr(12345),
		})
		if res.Amount != 12345 {
			t.Errorf("conv %q: expected manual override 12345, got %v", conv, res.Amount)
		}
		if res.Degraded() {
			t.Errorf("conv %q: zero delay is not a degradation", conv)
		}
	}
}

func TestDelayRescue_ZeroDelayNoManual(t *testing.T) {
	res := tariff.DelayRescuePayment(context.Background(), newSource(t), tariff.DelayInput{
		ConventionCode: "FNS012",
		GRDCode:        "014101",
		DelayDays:      nil,
	})
	if res.Amount != 0 {
		t.Errorf("expected 0 without delay or manual value, got %v", res.Amount)
	}
}

func TestDelayRescue_NegativeDelayTreatedAsZero(t *testing.T) {
	res := tariff.DelayRescuePayment(context.Background(), newSource(t), tariff.DelayInput{
		ConventionCode: "FNS012",
		GRDCode:        "014101",
		DelayDays:      iptr(-5),
		ManualOverride: fptr(999),
	})
	if res.Amount != 999 {
		t.Errorf("expected manual override for negative delay, got %v", res.Amount)
	}
}

func TestDelayRescue_PercentileFormula(t *testing.T) {
	// (1.5 × 2000 / 5) × 10 = 6000
	res := tariff.DelayRescuePayment(context.Background(), newSource(t), tariff.DelayInput{
		ConventionCode: "FNS012",
		GRDCode:        "014101",
		DelayDays:      iptr(10),
		GRDWeight:      fptr(1.5),
		BasePriceTier:  fptr(2000),
	})
	if res.Amount != 6000 {
		t.Fatalf("expected 6000, got %v", res.Amount)
	}
	if res.Degraded() {
		t.Fatalf("unexpected degradation: %+v", res.Issue)
	}
}

func TestDelayRescue_AppliesToAllPercentileConventions(t *testing.T) {
	for _, conv := range []string{"FNS012", "FNS026", "FNS019"} {
		res := tariff.DelayRescuePayment(context.Background(), newSource(t), tariff.DelayInput{
			ConventionCode: conv,
			GRDCode:        "014101",
			DelayDays:      iptr(10),
			GRDWeight:      fptr(1.5),
			BasePriceTier:  fptr(2000),
		})
		if res.Amount != 6000 {
			t.Errorf("conv %q: expected 6000, got %v", conv, res.Amount)
		}
	}
}

func TestDelayRescue_Percentile75FallbackToCutpoint(t *testing.T) {
	src := refdata.NewStaticSource()
	src.Norms["X"] = tariff.GRDNorms{SuperiorCutpoint: fptr(4)}

	// (2 × 1000 / 4) × 2 = 1000
	res := tariff.DelayRescuePayment(context.Background(), src, tariff.DelayInput{
		ConventionCode: "FNS026",
		GRDCode:        "X",
		DelayDays:      iptr(2),
		GRDWeight:      fptr(2),
		BasePriceTier:  fptr(1000),
	})
	if res.Amount != 1000 {
		t.Fatalf("expected 1000 via cutpoint fallback, got %v", res.Amount)
	}
}

func TestDelayRescue_Percentile75FallbackToConfig(t *testing.T) {
	src := refdata.NewStaticSource()
	src.Norms["X"] = tariff.GRDNorms{}
	src.Config[tariff.ConfigKeyDaysPercentile75] = "8"

	// (2 × 1000 / 8) × 2 = 500
	res := tariff.DelayRescuePayment(context.Background(), src, tariff.DelayInput{
		ConventionCode: "FNS019",
		GRDCode:        "X",
		DelayDays:      iptr(2),
		GRDWeight:      fptr(2),
		BasePriceTier:  fptr(1000),
	})
	if res.Amount != 500 {
		t.Fatalf("expected 500 via config fallback, got %v", res.Amount)
	}
}

func TestDelayRescue_Percentile75CoercedToOne(t *testing.T) {
	src := refdata.NewStaticSource()

	// No norm record, no config: denominator coerced to 1.
	// (2 × 1000 / 1) × 2 = 4000
	res := tariff.DelayRescuePayment(context.Background(), src, tariff.DelayInput{
		ConventionCode: "FNS012",
		GRDCode:        "missing",
		DelayDays:      iptr(2),
		GRDWeight:      fptr(2),
		BasePriceTier:  fptr(1000),
	})
	if res.Amount != 4000 {
		t.Fatalf("expected 4000 with coerced denominator, got %v", res.Amount)
	}
	if !res.Degraded() || res.Issue.Kind != tariff.IssueCoercedDenominator {
		t.Fatalf("expected coerced_denominator issue, got %+v", res.Issue)
	}
}

func TestDelayRescue_MissingWeightAndPriceDefaultToZero(t *testing.T) {
	res := tariff.DelayRescuePayment(context.Background(), newSource(t), tariff.DelayInput{
		ConventionCode: "FNS012",
		GRDCode:        "014101",
		DelayDays:      iptr(10),
	})
	if res.Amount != 0 {
		t.Errorf("expected 0 with absent weight/price, got %v", res.Amount)
	}
}

func TestDelayRescue_DailyRate(t *testing.T) {
	src := newSource(t)
	src.AddRate(*date("2025-01-01"), 15500)

	res := tariff.DelayRescuePayment(context.Background(), src, tariff.DelayInput{
		ConventionCode: "CH0041",
		DelayDays:      iptr(3),
		AdmissionDate:  date("2025-06-15"),
	})
	if res.Amount != 46500 {
		t.Fatalf("expected 3 × 15500 = 46500, got %v", res.Amount)
	}
	if res.Degraded() {
		t.Fatalf("unexpected degradation: %+v", res.Issue)
	}
}

func TestDelayRescue_DailyRateEffectiveDating(t *testing.T) {
	src := newSource(t)
	src.AddRate(*date("2025-01-01"), 100)
	src.AddRate(*date("2025-07-01"), 200)

	res := tariff.DelayRescuePayment(context.Background(), src, tariff.DelayInput{
		ConventionCode: "CH0041",
		DelayDays:      iptr(1),
		AdmissionDate:  date("2025-06-30"),
	})
	if res.Amount != 100 {
		t.Errorf("admission before rate change: expected 100, got %v", res.Amount)
	}

	res = tariff.DelayRescuePayment(context.Background(), src, tariff.DelayInput{
		ConventionCode: "CH0041",
		DelayDays:      iptr(1),
		AdmissionDate:  date("2025-07-01"),
	})
	if res.Amount != 200 {
		t.Errorf("admission on rate change: expected 200, got %v", res.Amount)
	}
}

func TestDelayRescue_DailyRateUnavailable(t *testing.T) {
	src := newSource(t) // no rates registered

	res := tariff.DelayRescuePayment(context.Background(), src, tariff.DelayInput{
		ConventionCode: "CH0041",
		DelayDays:      iptr(3),
		ManualOverride: fptr(777),
		AdmissionDate:  date("2025-06-15"),
	})
	if res.Amount != 777 {
		t.Fatalf("expected manual override 777, got %v", res.Amount)
	}
	if !res.Degraded() || res.Issue.Kind != tariff.IssueRateUnavailable {
		t.Fatalf("expected rate_unavailable issue, got %+v", res.Issue)
	}
}

func TestDelayRescue_DailyRateNoAdmissionDate(t *testing.T) {
	res := tariff.DelayRescuePayment(context.Background(), newSource(t), tariff.DelayInput{
		ConventionCode: "CH0041",
		DelayDays:      iptr(3),
		ManualOverride: fptr(50),
	})
	if res.Amount != 50 || !res.Degraded() {
		t.Fatalf("expected degraded manual override 50, got %v (%+v)", res.Amount, res.Issue)
	}
}

func TestDelayRescue_LookupFailureSwallowed(t *testing.T) {
	for _, conv := range []string{"CH0041", "FNS012"} {
		res := tariff.DelayRescuePayment(context.Background(), errSource{}, tariff.DelayInput{
			ConventionCode: conv,
			GRDCode:        "014101",
			DelayDays:      iptr(5),
			ManualOverride: fptr(321),
			AdmissionDate:  date("2025-06-15"),
		})
		if res.Amount != 321 {
			t.Errorf("conv %q: expected manual override 321, got %v", conv, res.Amount)
		}
		if !res.Degraded() || res.Issue.Kind != tariff.IssueLookupFailed {
			t.Errorf("conv %q: expected lookup_failed issue, got %+v", conv, res.Issue)
		}
	}
}

func TestDelayRescue_UnknownConventionReturnsManual(t *testing.T) {
	res := tariff.DelayRescuePayment(context.Background(), newSource(t), tariff.DelayInput{
		ConventionCode: "ZZ0000",
		DelayDays:      iptr(5),
		ManualOverride: fptr(42),
	})
	if res.Amount != 42 {
		t.Errorf("expected manual override for unknown convention, got %v", res.Amount)
	}
	if res.Degraded() {
		t.Errorf("unknown convention is the documented no-op path, not a degradation")
	}
}

func TestDelayRescue_NaNManualOverrideBecomesZero(t *testing.T) {
	res := tariff.DelayRescuePayment(context.Background(), newSource(t), tariff.DelayInput{
		ConventionCode: "ZZ0000",
		DelayDays:      iptr(5),
		ManualOverride: fptr(math.NaN()),
	})
	if res.Amount != 0 {
		t.Errorf("expected 0 for NaN manual override, got %v", res.Amount)
	}
}

// ---------- superior outlier payment ----------

func TestOutlier_WorkedExample(t *testing.T) {
	// cut=5, p50=3, p75=4: grace=8, stay=20 → 12 days post grace.
	// (12 × 1 × 1000) / 4 = 3000
	src := refdata.NewStaticSource()
	src.Norms["G"] = tariff.GRDNorms{
		Percentile50:     fptr(3),
		Percentile75:     fptr(4),
		SuperiorCutpoint: fptr(5),
	}

	res := tariff.SuperiorOutlierPayment(context.Background(), src, tariff.OutlierInput{
		ConventionCode:   "FNS012",
		GRDCode:          "G",
		LengthOfStayDays: iptr(20),
		GRDWeight:        fptr(1),
		BasePrice:        fptr(1000),
		InlierOutlier:    sptr("Outlier Superior"),
	})
	if res.Amount != 3000 {
		t.Fatalf("expected 3000, got %v", res.Amount)
	}
	if res.Degraded() {
		t.Fatalf("unexpected degradation: %+v", res.Issue)
	}
}

func TestOutlier_OnlyFNS012AndExactFlag(t *testing.T) {
	src := newSource(t)
	base := tariff.OutlierInput{
		GRDCode:          "014101",
		LengthOfStayDays: iptr(30),
		GRDWeight:        fptr(1),
		BasePrice:        fptr(1000),
	}

	for _, tc := range []struct {
		conv string
		flag *string
	}{
		{"FNS026", sptr("Outlier Superior")},
		{"FNS019", sptr("Outlier Superior")},
		{"CH0041", sptr("Outlier Superior")},
		{"ZZ0000", sptr("Outlier Superior")},
		{"FNS012", sptr("Inlier")},
		{"FNS012", sptr("outlier superior")}, // case matters
		{"FNS012", sptr("Outlier Inferior")},
		{"FNS012", nil},
	} {
		in := base
		in.ConventionCode = tc.conv
		in.InlierOutlier = tc.flag
		res := tariff.SuperiorOutlierPayment(context.Background(), src, in)
		if res.Amount != 0 || res.Degraded() {
			t.Errorf("conv=%q flag=%v: expected plain 0, got %v (%+v)", tc.conv, tc.flag, res.Amount, res.Issue)
		}
	}
}

func TestOutlier_MissingCutpointAborts(t *testing.T) {
	src := refdata.NewStaticSource()
	src.Norms["G"] = tariff.GRDNorms{Percentile50: fptr(3), Percentile75: fptr(4)}
	src.Config[tariff.ConfigKeyDaysPercentile75] = "6"

	res := tariff.SuperiorOutlierPayment(context.Background(), src, tariff.OutlierInput{
		ConventionCode:   "FNS012",
		GRDCode:          "G",
		LengthOfStayDays: iptr(20),
		GRDWeight:        fptr(1),
		BasePrice:        fptr(1000),
		InlierOutlier:    sptr("Outlier Superior"),
	})
	if res.Amount != 0 {
		t.Fatalf("expected hard abort 0, got %v", res.Amount)
	}
	if !res.Degraded() || res.Issue.Kind != tariff.IssueMissingCutpoint {
		t.Fatalf("expected missing_cutpoint issue, got %+v", res.Issue)
	}
}

func TestOutlier_Percentile50ConfigFallback(t *testing.T) {
	src := refdata.NewStaticSource()
	src.Norms["G"] = tariff.GRDNorms{Percentile75: fptr(4), SuperiorCutpoint: fptr(5)}
	src.Config[tariff.ConfigKeyPercentile50] = "3"

	res := tariff.SuperiorOutlierPayment(context.Background(), src, tariff.OutlierInput{
		ConventionCode:   "FNS012",
		GRDCode:          "G",
		LengthOfStayDays: iptr(20),
		GRDWeight:        fptr(1),
		BasePrice:        fptr(1000),
		InlierOutlier:    sptr("Outlier Superior"),
	})
	if res.Amount != 3000 {
		t.Fatalf("expected 3000 via config percentile50, got %v", res.Amount)
	}
}

func TestOutlier_Percentile50MissingAborts(t *testing.T) {
	src := refdata.NewStaticSource()
	src.Norms["G"] = tariff.GRDNorms{Percentile75: fptr(4), SuperiorCutpoint: fptr(5)}

	res := tariff.SuperiorOutlierPayment(context.Background(), src, tariff.OutlierInput{
		ConventionCode:   "FNS012",
		GRDCode:          "G",
		LengthOfStayDays: iptr(20),
		GRDWeight:        fptr(1),
		BasePrice:        fptr(1000),
		InlierOutlier:    sptr("Outlier Superior"),
	})
	if res.Amount != 0 {
		t.Fatalf("expected abort 0, got %v", res.Amount)
	}
	if !res.Degraded() || res.Issue.Kind != tariff.IssueMissingPercentile50 {
		t.Fatalf("expected missing_percentile50 issue, got %+v", res.Issue)
	}
}

func TestOutlier_Percentile75FallsBackToCutpoint(t *testing.T) {
	src := refdata.NewStaticSource()
	src.Norms["G"] = tariff.GRDNorms{Percentile50: fptr(3), SuperiorCutpoint: fptr(5)}

	// grace=8, stay=20 → 12 post-grace days; denominator is the cutpoint.
	// (12 × 1 × 1000) / 5 = 2400
	res := tariff.SuperiorOutlierPayment(context.Background(), src, tariff.OutlierInput{
		ConventionCode:   "FNS012",
		GRDCode:          "G",
		LengthOfStayDays: iptr(20),
		GRDWeight:        fptr(1),
		BasePrice:        fptr(1000),
		InlierOutlier:    sptr("Outlier Superior"),
	})
	if res.Amount != 2400 {
		t.Fatalf("expected 2400 via cutpoint fallback, got %v", res.Amount)
	}
}

func TestOutlier_WithinGracePeriod(t *testing.T) {
	src := newSource(t) // cut=12, p50=3 → grace=15

	res := tariff.SuperiorOutlierPayment(context.Background(), src, tariff.OutlierInput{
		ConventionCode:   "FNS012",
		GRDCode:          "014101",
		LengthOfStayDays: iptr(15),
		GRDWeight:        fptr(1),
		BasePrice:        fptr(1000),
		InlierOutlier:    sptr("Outlier Superior"),
	})
	if res.Amount != 0 || res.Degraded() {
		t.Fatalf("stay inside grace period must yield plain 0, got %v (%+v)", res.Amount, res.Issue)
	}
}

func TestOutlier_NonPositiveInputs(t *testing.T) {
	src := newSource(t)
	base := tariff.OutlierInput{
		ConventionCode: "FNS012",
		GRDCode:        "014101",
		InlierOutlier:  sptr("Outlier Superior"),
	}

	for name, mod := range map[string]func(*tariff.OutlierInput){
		"zero stay":   func(in *tariff.OutlierInput) { in.LengthOfStayDays = iptr(0); in.GRDWeight = fptr(1); in.BasePrice = fptr(1) },
		"nil stay":    func(in *tariff.OutlierInput) { in.GRDWeight = fptr(1); in.BasePrice = fptr(1) },
		"zero weight": func(in *tariff.OutlierInput) { in.LengthOfStayDays = iptr(20); in.GRDWeight = fptr(0); in.BasePrice = fptr(1) },
		"zero price":  func(in *tariff.OutlierInput) { in.LengthOfStayDays = iptr(20); in.GRDWeight = fptr(1); in.BasePrice = fptr(0) },
	} {
		in := base
		mod(&in)
		res := tariff.SuperiorOutlierPayment(context.Background(), src, in)
		if res.Amount != 0 {
			t.Errorf("%s: expected 0, got %v", name, res.Amount)
		}
	}
}

func TestOutlier_LookupFailureSwallowed(t *testing.T) {
	res := tariff.SuperiorOutlierPayment(context.Background(), errSource{}, tariff.OutlierInput{
		ConventionCode:   "FNS012",
		GRDCode:          "G",
		LengthOfStayDays: iptr(20),
		GRDWeight:        fptr(1),
		BasePrice:        fptr(1000),
		InlierOutlier:    sptr("Outlier Superior"),
	})
	if res.Amount != 0 {
		t.Fatalf("expected 0, got %v", res.Amount)
	}
	if !res.Degraded() || res.Issue.Kind != tariff.IssueLookupFailed {
		t.Fatalf("expected lookup_failed issue, got %+v", res.Issue)
	}
}

func TestOutlier_UnparsableConfigTreatedAsAbsent(t *testing.T) {
	src := refdata.NewStaticSource()
	src.Norms["G"] = tariff.GRDNorms{Percentile75: fptr(4), SuperiorCutpoint: fptr(5)}
	src.Config[tariff.ConfigKeyPercentile50] = "not-a-number"

	res := tariff.SuperiorOutlierPayment(context.Background(), src, tariff.OutlierInput{
		ConventionCode:   "FNS012",
		GRDCode:          "G",
		LengthOfStayDays: iptr(20),
		GRDWeight:        fptr(1),
		BasePrice:        fptr(1000),
		InlierOutlier:    sptr("Outlier Superior"),
	})
	if !res.Degraded() || res.Issue.Kind != tariff.IssueMissingPercentile50 {
		t.Fatalf("unparsable config must read as absent, got %+v", res.Issue)
	}
}
