package precheck

// ApplyEdit returns a new row slice with the single cell at (idx, column)
// replaced. The input slice and its row maps are never mutated; only the
// edited row is copied, so callers can re-run Validate and diff cheaply.
func ApplyEdit(rows []map[string]string, idx int, column, value string) []map[string]string {
	if idx < 0 || idx >= len(rows) {
		return rows
	}
	out := make([]map[string]string, len(rows))
	copy(out, rows)

	edited := make(map[string]string, len(rows[idx])+1)
	for k, v := range rows[idx] {
		edited[k] = v
	}
	edited[column] = value
	out[idx] = edited
	return out
}
