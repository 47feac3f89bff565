package formschema

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// IsBlank reports whether a submitted value counts as absent: missing, null,
// the empty string or an empty list. Zero and false are present.
func IsBlank(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case []any:
		return len(typed) == 0
	case []string:
		return len(typed) == 0
	case []FileDescriptor:
		return len(typed) == 0
	default:
		return false
	}
}

func fieldBlank(data Payload, name string) bool {
	value, ok := data[name]
	return !ok || IsBlank(value)
}

// toNumber coerces the way form inputs arrive: JSON numbers pass through and
// strings are parsed after trimming. A whitespace-only string is zero.
func toNumber(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, !math.IsNaN(typed)
	case float32:
		return float64(typed), !math.IsNaN(float64(typed))
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case json.Number:
		parsed, err := typed.Float64()
		return parsed, err == nil
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return 0, true
		}
		return parseDecimal(trimmed)
	default:
		return 0, false
	}
}

var (
	leadingIntPattern   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloatPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	decimalPattern      = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

// parseDecimal accepts plain decimal literals and the spelled-out Infinity
// forms only. Hex, binary, underscores, "inf" and "NaN" are not numbers to a
// form. Literals too large for float64 become infinite.
func parseDecimal(text string) (float64, bool) {
	switch text {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	if !decimalPattern.MatchString(text) {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return parsed, true
}

// leadingInt reads the integer prefix of a value, ignoring trailing text.
func leadingInt(value any) (int64, bool) {
	switch typed := value.(type) {
	case string:
		match := leadingIntPattern.FindString(strings.TrimSpace(typed))
		if match == "" {
			return 0, false
		}
		parsed, err := strconv.ParseInt(match, 10, 64)
		return parsed, err == nil
	default:
		number, ok := toNumber(value)
		if !ok || math.IsInf(number, 0) {
			return 0, false
		}
		return int64(math.Trunc(number)), true
	}
}

// leadingFloat reads the decimal prefix of a value, ignoring trailing text
// such as a percent sign.
func leadingFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case string:
		match := leadingFloatPattern.FindString(strings.TrimSpace(typed))
		if match == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(match, 64)
		return parsed, err == nil
	default:
		return toNumber(value)
	}
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

func parseDate(value any) (time.Time, bool) {
	raw, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

func asList(value any) ([]any, bool) {
	switch typed := value.(type) {
	case []any:
		return typed, true
	case []string:
		items := make([]any, 0, len(typed))
		for _, item := range typed {
			items = append(items, item)
		}
		return items, true
	case []FileDescriptor:
		items := make([]any, 0, len(typed))
		for _, item := range typed {
			items = append(items, item)
		}
		return items, true
	default:
		return nil, false
	}
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
