package AbstractFunctions

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Date layouts accepted from the store, spreadsheet imports and form input.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"20060102",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// NormalizePhone strips every non-digit character and returns the last 9
// digits. Returns "" when fewer than 9 digits survive, so numbers pasted
// with a country prefix still normalize to the local 9-digit form.
func NormalizePhone(s string) string {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 9 {
		return ""
	}
	return d[len(d)-9:]
}

// NormalizeDate coerces any supported date representation into a date.
// Returns the zero time when the value cannot be interpreted; it never fails.
func NormalizeDate(v interface{}) time.Time {
	switch t := v.(type) {
	case nil:
		return time.Time{}
	case time.Time:
		if t.IsZero() {
			return time.Time{}
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case *time.Time:
		if t == nil {
			return time.Time{}
		}
		return NormalizeDate(*t)
	case string:
		s := strings.TrimSpace(t)
		if IsNullish(s) {
			return time.Time{}
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}

// IsNullish reports whether a value should be treated as missing: nil, empty
// strings and the textual leftovers of a null exported from a dataframe.
func IsNullish(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nat", "nan", "none", "null", "<nil>":
		return true
	}
	return false
}

// ToStoreValue maps a domain value to a value the document store accepts.
// Null-ish inputs become nil, dates become a midnight datetime, numbers stay
// numeric, booleans and strings pass through, lists are mapped element-wise,
// anything else falls back to its string form. Total: bad input yields nil,
// never an error.
func ToStoreValue(v interface{}) interface{} {
	if IsNullish(v) {
		return nil
	}
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case *time.Time:
		if t == nil {
			return nil
		}
		return ToStoreValue(*t)
	case bool, string, int, int32, int64, float32:
		return t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return t
	case []string:
		return t
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, item := range t {
			out = append(out, ToStoreValue(item))
		}
		return out
	default:
		return fmt.Sprintf("%v", t)
	}
}

// ToInt coerces a store scalar into an int. The second return reports
// whether the value carried a usable number.
func ToInt(v interface{}) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case float32:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// ToFloat coerces a store scalar into a float64, returning 0 for anything
// that is not numeric.
func ToFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(t), ",", ".", 1), 64); err == nil {
			return f
		}
	}
	return 0
}

// ToBool coerces a store scalar into a bool. Numeric values follow the
// usual 0/non-0 convention; strings accept true/false and si/no spellings.
func ToBool(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "si", "sí", "yes":
			return true
		}
	}
	return false
}

// ToString renders a store scalar as a string, with nil mapped to "".
func ToString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
