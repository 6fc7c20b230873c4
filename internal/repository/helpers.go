package repository

import (
	"database/sql"
	"encoding/json"
	"time"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the
// given layout. Returns nil for NULL, empty or unparseable values.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a SQLite storage value:
// SQL NULL for nil, the formatted string otherwise.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableStr converts "" to SQL NULL so empty cross-references are stored
// as absent, not as empty strings.
func nullableStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// stringsToJSON encodes a string slice as a JSON array for TEXT storage.
// Used for the assigned_to column.
func stringsToJSON(vals []string) string {
	if len(vals) == 0 {
		return "[]"
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// jsonToStrings decodes a JSON array column back into a string slice.
func jsonToStrings(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var vals []string
	if err := json.Unmarshal([]byte(raw), &vals); err != nil {
		return nil
	}
	return vals
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
