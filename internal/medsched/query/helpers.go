package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/vaibhaw-/medsched/internal/medsched/store"
)

// NormalizeDate parses s in any common layout and returns it as YYYY-MM-DD.
// An empty string means today according to now.
func NormalizeDate(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.Format(store.DateLayout), nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.Format(store.DateLayout), nil
}

// NormalizeSex accepts M/F in any case, plus male/female.
func NormalizeSex(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return "M", nil
	case "f", "female":
		return "F", nil
	}
	return "", fmt.Errorf("invalid sex %q: want M or F", s)
}

// formatValue renders one scanned cell as text.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case string:
		return x
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(store.DateLayout)
		}
		return x.Format(time.RFC3339)
	case float64:
		return fmt.Sprintf("%.2f", x)
	default:
		return fmt.Sprint(x)
	}
}

// jsonValue converts a scanned cell into something encoding/json and yaml
// render naturally.
func jsonValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case time.Time:
		return formatValue(x)
	default:
		return x
	}
}
