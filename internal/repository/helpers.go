package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Deadlines are calendar days; timestamps are RFC3339 in UTC.
const dateLayout = "2006-01-02"

// nullableString converts an empty string to SQL NULL.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// stringFromNull converts a sql.NullString to a plain string, NULL becoming "".
func stringFromNull(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

// encodeStrings stores a string list in a JSON TEXT column.
func encodeStrings(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encoding string list: %w", err)
	}
	return string(b), nil
}

// decodeStrings reads a JSON TEXT column back into a non-nil string list.
func decodeStrings(raw string) ([]string, error) {
	out := []string{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decoding string list: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// nowUTC returns the current UTC time truncated to what RFC3339 stores.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
