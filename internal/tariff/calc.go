// Package tariff computes GRD-based reimbursement payments: the delay
// rescue payment and the superior outlier payment. Both calculations follow
// a "never block the reviewer" policy: reference failures degrade to the
// manual override or zero and are reported through Result.Issue, never as
// errors.
package tariff

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/clinifin/grdload/internal/model"
)

// DelayInput carries the episode fields consumed by DelayRescuePayment.
// Every field is optional; absent numbers default to zero.
type DelayInput struct {
	ConventionCode string
	GRDCode        string

	DelayDays      *int32
	ManualOverride *float64

	GRDWeight     *float64
	BasePriceTier *float64

	AdmissionDate *time.Time
}

// OutlierInput carries the episode fields consumed by SuperiorOutlierPayment.
type OutlierInput struct {
	ConventionCode string
	GRDCode        string

	LengthOfStayDays *int32
	GRDWeight        *float64
	BasePrice        *float64

	InlierOutlier *string
}

// DelayRescuePayment computes the delay rescue payment for an episode.
//
// With zero delay days no formula applies and the manual override (or zero)
// is returned. CH0041 episodes are paid delay_days times the dated daily
// waiting-cost rate. The FONASA GRD conventions divide the weighted tier
// price by the percentile-75 day count, resolved through a fallback chain
// ending in a guard value of 1. Unknown conventions keep the manual value.
func DelayRescuePayment(ctx context.Context, src ReferenceSource, in DelayInput) Result {
	delay := dayCount(in.DelayDays)
	if delay == 0 {
		return Result{Amount: fallback(in.ManualOverride)}
	}

	conv, _ := model.ConventionByCode(strings.TrimSpace(in.ConventionCode))
	switch conv.DelayRule {
	case model.DelayRuleDailyRate:
		if in.AdmissionDate == nil {
			return degraded(fallback(in.ManualOverride), IssueRateUnavailable,
				"no admission date to resolve a daily waiting-cost rate")
		}
		rate, ok, err := src.DailyWaitingRate(ctx, *in.AdmissionDate)
		if err != nil {
			return degraded(fallback(in.ManualOverride), IssueLookupFailed,
				fmt.Sprintf("daily waiting-cost rate lookup: %v", err))
		}
		if !ok || math.IsNaN(rate) {
			return degraded(fallback(in.ManualOverride), IssueRateUnavailable,
				fmt.Sprintf("no daily waiting-cost rate for %s", in.AdmissionDate.Format("2006-01-02")))
		}
		return Result{Amount: nonNegative(float64(delay) * rate)}

	case model.DelayRulePercentile:
		norms, err := src.GRDNorms(ctx, in.GRDCode)
		if err != nil {
			return degraded(fallback(in.ManualOverride), IssueLookupFailed,
				fmt.Sprintf("GRD norms lookup for %q: %v", in.GRDCode, err))
		}
		p75, issue, err := resolveDaysPercentile75(ctx, src, norms)
		if err != nil {
			return degraded(fallback(in.ManualOverride), IssueLookupFailed,
				fmt.Sprintf("system config lookup: %v", err))
		}
		amount := nonNegative(orZero(in.GRDWeight) * orZero(in.BasePriceTier) / p75 * float64(delay))
		return Result{Amount: amount, Issue: issue}

	default:
		return Result{Amount: fallback(in.ManualOverride)}
	}
}

// SuperiorOutlierPayment computes the superior outlier payment for an
// episode. It applies only to FNS012 episodes flagged exactly as
// "Outlier Superior"; everything else yields zero.
//
// The superior cut-point is a hard requirement: if the norm record lacks a
// positive value the calculation aborts. Percentile-50 falls back to system
// config before aborting. Percentile-75 falls back softly all the way to a
// guard value of 1. The asymmetry between these strategies is deliberate
// observed behavior and must not be unified.
func SuperiorOutlierPayment(ctx context.Context, src ReferenceSource, in OutlierInput) Result {
	conv, ok := model.ConventionByCode(strings.TrimSpace(in.ConventionCode))
	if !ok || !conv.SuperiorOutlier {
		return Result{}
	}
	if in.InlierOutlier == nil || *in.InlierOutlier != model.OutlierSuperior {
		return Result{}
	}

	norms, err := src.GRDNorms(ctx, in.GRDCode)
	if err != nil {
		return degraded(0, IssueLookupFailed,
			fmt.Sprintf("GRD norms lookup for %q: %v", in.GRDCode, err))
	}

	cutpoint, ok := positiveNorm(norms, func(n *GRDNorms) *float64 { return n.SuperiorCutpoint })
	if !ok {
		return degraded(0, IssueMissingCutpoint,
			fmt.Sprintf("GRD %q has no positive superior cut-point", in.GRDCode))
	}

	p50, ok := positiveNorm(norms, func(n *GRDNorms) *float64 { return n.Percentile50 })
	if !ok {
		v, cfgOK, err := configFloat(ctx, src, ConfigKeyPercentile50)
		if err != nil {
			return degraded(0, IssueLookupFailed, fmt.Sprintf("system config lookup: %v", err))
		}
		if !cfgOK {
			return degraded(0, IssueMissingPercentile50,
				fmt.Sprintf("no percentile-50 for GRD %q and no %q config", in.GRDCode, ConfigKeyPercentile50))
		}
		p50 = v
	}

	p75, ok := positiveNorm(norms, func(n *GRDNorms) *float64 { return n.Percentile75 })
	if !ok {
		// Soft chain: cut-point (always positive here), then config, then 1.
		p75 = cutpoint
		if p75 <= 0 {
			v, cfgOK, err := configFloat(ctx, src, ConfigKeyDaysPercentile75)
			if err != nil {
				return degraded(0, IssueLookupFailed, fmt.Sprintf("system config lookup: %v", err))
			}
			if cfgOK {
				p75 = v
			} else {
				p75 = 1
			}
		}
	}

	stay := dayCount(in.LengthOfStayDays)
	weight := orZero(in.GRDWeight)
	price := orZero(in.BasePrice)
	if stay <= 0 || weight <= 0 || price <= 0 {
		return Result{}
	}

	gracePeriod := cutpoint + p50
	daysPostGrace := float64(stay) - gracePeriod
	if daysPostGrace <= 0 {
		return Result{}
	}

	return Result{Amount: nonNegative(daysPostGrace * weight * price / p75)}
}

// resolveDaysPercentile75 walks the delay-payment denominator fallback chain:
// norm percentile-75, norm superior cut-point, system config, literal 1.
func resolveDaysPercentile75(ctx context.Context, src ReferenceSource, norms *GRDNorms) (float64, *Issue, error) {
	if v, ok := positiveNorm(norms, func(n *GRDNorms) *float64 { return n.Percentile75 }); ok {
		return v, nil, nil
	}
	if v, ok := positiveNorm(norms, func(n *GRDNorms) *float64 { return n.SuperiorCutpoint }); ok {
		return v, nil, nil
	}
	v, ok, err := configFloat(ctx, src, ConfigKeyDaysPercentile75)
	if err != nil {
		return 0, nil, err
	}
	if ok {
		return v, nil, nil
	}
	return 1, &Issue{
		Kind:    IssueCoercedDenominator,
		Message: "no positive percentile-75 reference; denominator coerced to 1",
	}, nil
}

func configFloat(ctx context.Context, src ReferenceSource, key string) (float64, bool, error) {
	raw, ok, err := src.ConfigValue(ctx, key)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || v <= 0 {
		return 0, false, nil
	}
	return v, true, nil
}

func positiveNorm(norms *GRDNorms, field func(*GRDNorms) *float64) (float64, bool) {
	if norms == nil {
		return 0, false
	}
	v := field(norms)
	if v == nil || math.IsNaN(*v) || *v <= 0 {
		return 0, false
	}
	return *v, true
}

// fallback returns the manual override when it is a finite number, else 0.
func fallback(manual *float64) float64 {
	if manual == nil || math.IsNaN(*manual) || math.IsInf(*manual, 0) {
		return 0
	}
	return *manual
}

// dayCount normalizes a nullable day count to a non-negative int.
func dayCount(v *int32) int32 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

func orZero(v *float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return *v
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
