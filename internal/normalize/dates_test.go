package normalize

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"02-06-2025", "02/06/2025", "2/6/2025", "2025-06-02", "2025/06/02"} {
		got := ParseDate(in)
		if got == nil {
			t.Errorf("ParseDate(%q) = nil", in)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDate_DayFirstWins(t *testing.T) {
	// "03-04-2025" is April 3rd in the sheet's locale, not March 4th.
	got := ParseDate("03-04-2025")
	if got == nil || got.Month() != time.April || got.Day() != 3 {
		t.Fatalf("ParseDate(\"03-04-2025\") = %v, want 3 April", got)
	}
}

func TestParseDate_WithTime(t *testing.T) {
	got := ParseDate("15-06-2025 09:30")
	if got == nil || got.Day() != 15 || got.Hour() != 9 {
		t.Fatalf("ParseDate with time component = %v", got)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "  ", "not a date", "32-01-2025", "2025"} {
		if got := ParseDate(in); got != nil {
			t.Errorf("ParseDate(%q) = %v, want nil", in, got)
		}
	}
}
