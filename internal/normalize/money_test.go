package normalize

import (
	"math"
	"testing"
)

func TestToCents(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	if got := ToCents(nil); got != nil {
		t.Errorf("ToCents(nil) = %v", got)
	}
	if got := ToCents(f(math.NaN())); got != nil {
		t.Errorf("ToCents(NaN) = %v", got)
	}
	if got := ToCents(f(math.Inf(1))); got != nil {
		t.Errorf("ToCents(+Inf) = %v", got)
	}
	if got := ToCents(f(19.99)); got == nil || *got != 1999 {
		t.Errorf("ToCents(19.99) = %v, want 1999", got)
	}
	if got := ToCents(f(12.345)); got == nil || *got != 1235 {
		t.Errorf("ToCents rounds, got %v, want 1235", got)
	}
	if got := ToCents(f(0)); got == nil || *got != 0 {
		t.Errorf("ToCents(0) = %v, want 0", got)
	}
}

func TestCentsToAmount(t *testing.T) {
	c := int64(1999)
	if got := CentsToAmount(&c); got == nil || *got != 19.99 {
		t.Errorf("CentsToAmount(1999) = %v, want 19.99", got)
	}
	if got := CentsToAmount(nil); got != nil {
		t.Errorf("CentsToAmount(nil) = %v", got)
	}
}
