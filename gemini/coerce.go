package gemini

import (
	"fmt"
	"strconv"
	"strings"
)

// Coercion primitives for decoded model JSON. Nil and unconvertible values
// map to nil pointers (or "" for strings) so a sloppy field never sinks the
// whole offer.

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func asFloat(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(strings.ReplaceAll(t, ",", ""), "$"))
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
	}
	return nil
}

func asInt(v any) *int {
	switch t := v.(type) {
	case float64:
		i := int(t)
		return &i
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", ""))
		if i, err := strconv.Atoi(s); err == nil {
			return &i
		}
	}
	return nil
}
