package common

import (
	"strconv"
	"strings"
)

// StringToBool reports whether value spells "true" in any letter case.
// Anything else, including "1" and "yes", is false.
func StringToBool(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

// StringToFloat parses value with '.' as the decimal point, returning 0 when
// it can't be parsed.
func StringToFloat(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}

// StringToInt parses a base 10 integer, returning 0 when it can't be parsed.
// Values written as floats ("3.0") are truncated.
func StringToInt(value string) int {
	trimmed := strings.TrimSpace(value)
	if i, err := strconv.Atoi(trimmed); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return int(f)
	}
	return 0
}

// BoolToString renders b the way field values store booleans.
func BoolToString(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// SplitList splits a separator-delimited list, trimming each item and
// dropping empty ones.
func SplitList(value, sep string) []string {
	var items []string
	for _, item := range strings.Split(value, sep) {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
