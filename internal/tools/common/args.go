package common

import (
	"fmt"
	"strings"
)

// StringArg returns a required, non-empty string argument
func StringArg(args map[string]any, name string) (string, error) {
	value, ok := args[name].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return value, nil
}

// OptionalString returns a string argument, or "" when absent
func OptionalString(args map[string]any, name string) string {
	value, _ := args[name].(string)
	return value
}

// FirstString returns the first non-empty string argument among names.
// It resolves argument aliases.
func FirstString(args map[string]any, names ...string) (string, error) {
	for _, name := range names {
		if value := OptionalString(args, name); value != "" {
			return value, nil
		}
	}
	return "", fmt.Errorf("%s is required", strings.Join(names, " or "))
}

// OptionalBool returns a boolean argument, or nil when absent
func OptionalBool(args map[string]any, name string) *bool {
	value, ok := args[name].(bool)
	if !ok {
		return nil
	}
	return &value
}

// BoolArgOrDefault returns a boolean argument, or def when absent
func BoolArgOrDefault(args map[string]any, name string, def bool) bool {
	if value := OptionalBool(args, name); value != nil {
		return *value
	}
	return def
}

// NumberArg returns a numeric argument. JSON numbers decode as float64.
func NumberArg(args map[string]any, name string) (float64, bool) {
	switch v := args[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// OptionalInt returns an integer argument, or nil when absent
func OptionalInt(args map[string]any, name string) *int {
	f, ok := NumberArg(args, name)
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}

// OptionalInt64 returns a 64-bit integer argument, or nil when absent
func OptionalInt64(args map[string]any, name string) *int64 {
	f, ok := NumberArg(args, name)
	if !ok {
		return nil
	}
	n := int64(f)
	return &n
}

// StringSliceArg returns an array-of-strings argument exactly as sent,
// including an empty array and empty items. It returns nil when the argument
// is absent or not an array; non-string items are skipped.
func StringSliceArg(args map[string]any, name string) []string {
	switch v := args[name].(type) {
	case []string:
		return append(make([]string, 0, len(v)), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// ObjectArg returns an object argument, or nil when absent
func ObjectArg(args map[string]any, name string) map[string]any {
	value, _ := args[name].(map[string]any)
	return value
}
