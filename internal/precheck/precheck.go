// Package precheck validates raw episode sheet data before it is staged.
// It is pure: issues are returned as data, never as errors, and repeated
// invocation on unchanged input yields an identical issue list.
package precheck

import (
	"fmt"
	"math"
	"strings"

	"github.com/clinifin/grdload/internal/model"
	"github.com/clinifin/grdload/internal/normalize"
)

// Kind classifies a precheck issue.
type Kind string

const (
	// KindMissingHeader is the only critical kind: it blocks row evaluation
	// entirely and always blocks confirmation.
	KindMissingHeader Kind = "missing_header"
	KindDuplicate     Kind = "duplicate"
	KindEmpty         Kind = "empty"
	KindInvalid       Kind = "invalid"
)

// Issue is one problem found in the uploaded sheet. Row is the zero-based
// row index, or -1 for sheet-level issues.
type Issue struct {
	Kind    Kind
	Row     int
	Column  string
	Message string
}

// Validate checks headers and rows and returns every issue found, in
// deterministic order: missing headers first (short-circuiting row checks),
// then duplicates, empties, and numeric-domain violations row by row.
func Validate(headers []string, rows []map[string]string) []Issue {
	var issues []Issue

	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = true
	}
	for _, col := range model.RequiredHeaders {
		if !present[col] {
			issues = append(issues, Issue{
				Kind:    KindMissingHeader,
				Row:     -1,
				Column:  col,
				Message: fmt.Sprintf("required column %q is missing", col),
			})
		}
	}
	// Row-level checks are meaningless without the right columns.
	if len(issues) > 0 {
		return issues
	}

	keyCounts := make(map[string]int, len(rows))
	for _, row := range rows {
		keyCounts[strings.TrimSpace(row[model.KeyColumn])]++
	}
	for i, row := range rows {
		key := strings.TrimSpace(row[model.KeyColumn])
		if keyCounts[key] > 1 {
			issues = append(issues, Issue{
				Kind:    KindDuplicate,
				Row:     i,
				Column:  model.KeyColumn,
				Message: fmt.Sprintf("episode %q appears more than once", key),
			})
		}
	}

	for i, row := range rows {
		for _, col := range model.RequiredFields {
			if strings.TrimSpace(row[col]) == "" {
				issues = append(issues, Issue{
					Kind:    KindEmpty,
					Row:     i,
					Column:  col,
					Message: fmt.Sprintf("required value for %q is empty", col),
				})
			}
		}
	}

	for i, row := range rows {
		for _, col := range model.NumericColumns {
			if math.IsNaN(normalize.ParseLooseNumber(row[col])) {
				issues = append(issues, Issue{
					Kind:    KindInvalid,
					Row:     i,
					Column:  col,
					Message: fmt.Sprintf("value %q for %q is not a number", row[col], col),
				})
			}
		}
	}

	return issues
}

// CanConfirm reports whether an upload may proceed: no issues of any kind
// and at least one data row.
func CanConfirm(rows []map[string]string, issues []Issue) bool {
	return len(issues) == 0 && len(rows) > 0
}

// HasCritical reports whether any issue is of the critical kind.
func HasCritical(issues []Issue) bool {
	for _, is := range issues {
		if is.Kind == KindMissingHeader {
			return true
		}
	}
	return false
}
