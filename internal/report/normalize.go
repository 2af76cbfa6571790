package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Placeholder is rendered for fields the upstream record does not carry.
const Placeholder = "-"

// Record is one upstream JSON object.
type Record = map[string]any

// Extract returns the value of the first alias present in rec whose value is
// neither null nor the empty string, or def when none matches.
func Extract(rec Record, def any, aliases ...string) any {
	for _, k := range aliases {
		v, ok := rec[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v
	}
	return def
}

// Text is Extract with the result formatted as a string.
func Text(rec Record, def string, aliases ...string) string {
	return Format(Extract(rec, def, aliases...))
}

// Format renders a decoded JSON value as cell text.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}

// Int coerces a decoded JSON value to an int. Values that cannot be read as a
// number yield 0.
func Int(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return truncate(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case json.Number:
		return parseInt(x.String())
	case string:
		return parseInt(x)
	default:
		return parseInt(fmt.Sprint(x))
	}
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return truncate(f)
	}
	return 0
}

// truncate drops the fraction of f, clamping finite values to the int range.
func truncate(f float64) int {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		return 0
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	}
	return int(f)
}

// AsRecord reports whether v is a JSON object.
func AsRecord(v any) (Record, bool) {
	r, ok := v.(map[string]any)
	return r, ok
}

// Records returns the JSON objects in a JSON array, skipping any other entry.
// Anything that is not an array yields no records.
func Records(v any) []Record {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(items))
	for _, it := range items {
		if r, ok := AsRecord(it); ok {
			out = append(out, r)
		}
	}
	return out
}

// Nested returns the first alias holding a JSON object.
func Nested(rec Record, aliases ...string) (Record, bool) {
	for _, k := range aliases {
		if r, ok := AsRecord(rec[k]); ok {
			return r, true
		}
	}
	return nil, false
}

// List returns the first alias holding a non-empty JSON array.
func List(rec Record, aliases ...string) []any {
	for _, k := range aliases {
		if items, ok := rec[k].([]any); ok && len(items) > 0 {
			return items
		}
	}
	return nil
}
