package policy

import (
	"encoding/json"
	"strings"
	"time"
)

// Facts is the field->value mapping a specialist extracted for a claim.
// Values typically come from parsed JSON, so numbers may arrive as float64
// or json.Number and booleans may be absent entirely. Accessors never panic;
// a missing or mistyped field reads as its zero form, and validation rules
// turn that into a pending audit entry rather than an error.
type Facts map[string]any

// Has reports whether the field is present at all.
func (f Facts) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// True reports whether the field is present and boolean true.
func (f Facts) True(key string) bool {
	v, ok := f[key].(bool)
	return ok && v
}

// False reports whether the field is present and boolean false. Absent
// fields are neither True nor False, which lets rules distinguish "answered
// no" from "not answered".
func (f Facts) False(key string) bool {
	v, ok := f[key].(bool)
	return ok && !v
}

// String returns the trimmed string value, or "" when absent or mistyped.
func (f Facts) String(key string) string {
	v, _ := f[key].(string)
	return strings.TrimSpace(v)
}

// Number returns the numeric value and whether it was present and valid.
func (f Facts) Number(key string) (float64, bool) {
	switch v := f[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		n, err := v.Float64()
		return n, err == nil
	default:
		return 0, false
	}
}

// DateLayout is the wire format for incident dates.
const DateLayout = "2006-01-02"

// ValidDate reports whether the field parses as a YYYY-MM-DD date.
func (f Facts) ValidDate(key string) bool {
	s := f.String(key)
	if s == "" {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidClockTime reports whether the field looks like an HH:MM clock time.
// The original intake only ever checked for a single colon separator.
func (f Facts) ValidClockTime(key string) bool {
	s := f.String(key)
	return strings.Count(s, ":") == 1
}

// List returns the field as a slice of item maps, for multi-item facts such
// as a personal-belongings inventory.
func (f Facts) List(key string) []Facts {
	raw, ok := f[key].([]any)
	if !ok {
		return nil
	}
	items := make([]Facts, 0, len(raw))
	for _, entry := range raw {
		if m, ok := entry.(map[string]any); ok {
			items = append(items, Facts(m))
		}
	}
	return items
}
