// Package refdata supplies reference data (GRD norms, system config,
// waiting-cost rates) to the tariff calculator. The data set is small enough
// to hold in memory, so recalculation runs load it once and then work
// against a StaticSource.
package refdata

import (
	"context"
	"sort"
	"time"

	"github.com/clinifin/grdload/internal/tariff"
)

// WaitingRate is one effective-dated daily waiting-cost rate.
type WaitingRate struct {
	EffectiveFrom time.Time
	DailyRate     float64
}

// StaticSource is an in-memory tariff.ReferenceSource.
type StaticSource struct {
	Norms  map[string]tariff.GRDNorms
	Config map[string]string
	rates  []WaitingRate
}

// NewStaticSource returns an empty source ready for population.
func NewStaticSource() *StaticSource {
	return &StaticSource{
		Norms:  make(map[string]tariff.GRDNorms),
		Config: make(map[string]string),
	}
}

// AddRate registers a waiting-cost rate, keeping rates ordered by date.
func (s *StaticSource) AddRate(effectiveFrom time.Time, dailyRate float64) {
	s.rates = append(s.rates, WaitingRate{EffectiveFrom: effectiveFrom, DailyRate: dailyRate})
	sort.Slice(s.rates, func(i, j int) bool {
		return s.rates[i].EffectiveFrom.Before(s.rates[j].EffectiveFrom)
	})
}

// GRDNorms returns the norm record for a GRD code, or (nil, nil) when absent.
func (s *StaticSource) GRDNorms(_ context.Context, grdCode string) (*tariff.GRDNorms, error) {
	n, ok := s.Norms[grdCode]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

// ConfigValue returns the system-config value for key.
func (s *StaticSource) ConfigValue(_ context.Context, key string) (string, bool, error) {
	v, ok := s.Config[key]
	return v, ok, nil
}

// DailyWaitingRate returns the most recent rate effective on or before the
// admission date.
func (s *StaticSource) DailyWaitingRate(_ context.Context, admissionDate time.Time) (float64, bool, error) {
	for i := len(s.rates) - 1; i >= 0; i-- {
		if !s.rates[i].EffectiveFrom.After(admissionDate) {
			return s.rates[i].DailyRate, true, nil
		}
	}
	return 0, false, nil
}

var _ tariff.ReferenceSource = (*StaticSource)(nil)
