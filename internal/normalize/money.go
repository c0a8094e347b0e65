package normalize

import "math"

// ToCents converts a nullable float64 money amount to nullable int64 cents.
// Uses math.Round to avoid truncation bias. NaN and infinities map to nil.
func ToCents(v *float64) *int64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	c := int64(math.Round(*v * 100))
	return &c
}

// CentsToAmount converts nullable int64 cents back to a nullable float64
// amount, for calculation inputs and export.
func CentsToAmount(v *int64) *float64 {
	if v == nil {
		return nil
	}
	a := float64(*v) / 100
	return &a
}
