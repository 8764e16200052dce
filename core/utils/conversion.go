package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToInt folds a loosely typed registry value into an int. Floats truncate;
// strings may be padded or carry thousands separators. Anything unparseable,
// including nil, is 0.
func ToInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return truncate(v)
	case float32:
		return truncate(float64(v))
	case json.Number:
		return atoi(string(v))
	case string:
		return atoi(v)
	case []byte:
		return atoi(string(v))
	case nil:
		return 0
	default:
		return atoi(fmt.Sprint(v))
	}
}

func truncate(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

func atoi(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return 0
}

// ToString renders a registry value as text. nil is the empty string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// ToFloat folds a loosely typed registry value into a float64. Strings are
// trimmed and may carry thousands separators ("1,234.5"). Unparseable values
// are 0.
func ToFloat(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := parseFloat(string(v))
		return f
	case string:
		f, _ := parseFloat(v)
		return f
	case []byte:
		f, _ := parseFloat(string(v))
		return f
	case nil:
		return 0
	default:
		f, _ := parseFloat(fmt.Sprint(v))
		return f
	}
}

// ToIntOK parses a placement-style string ("3rd", "1,024") and reports whether
// it held a number.
func ToIntOK(s string) (int, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "stndrh")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return i, true
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseFloat(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
