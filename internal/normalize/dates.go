package normalize

import (
	"strings"
	"time"
)

// Date formats found in CMBD episode sheets. Day-first formats come first;
// the sheets originate from es-CL locales.
var dateFormats = []string{
	"02-01-2006",
	"02/01/2006",
	"2/1/2006",
	"2006-01-02",
	"2006/01/02",
	"02-01-2006 15:04",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
}

// ParseDate attempts to parse a date string in multiple common formats.
// Returns nil if the input is empty or unparseable.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, fmt := range dateFormats {
		if t, err := time.Parse(fmt, s); err == nil {
			return &t
		}
	}
	return nil
}
