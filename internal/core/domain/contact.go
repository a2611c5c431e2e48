package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// ContactValue is a tagged union over the two shapes the profile backend uses
// for addresses and emergency contacts: a bare string, or a structured record
// with free-form named fields. Older records are plain strings; newer ones
// are objects, and the exact field set varies by record vintage.
type ContactValue struct {
	text       string
	fields     map[string]any
	structured bool
}

// NewTextValue wraps a plain display string.
func NewTextValue(s string) ContactValue {
	return ContactValue{text: s}
}

// NewStructuredValue wraps a structured record.
func NewStructuredValue(fields map[string]any) ContactValue {
	return ContactValue{fields: fields, structured: true}
}

// Structured reports whether the value carries a structured record.
func (v ContactValue) Structured() bool { return v.structured }

// Field returns a named field from a structured value, or nil.
func (v ContactValue) Field(name string) any {
	if !v.structured {
		return nil
	}
	return v.fields[name]
}

// UnmarshalJSON accepts either a JSON string or a JSON object.
func (v *ContactValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = NewTextValue(s)
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*v = NewStructuredValue(fields)
	return nil
}

// MarshalJSON restores the original shape.
func (v ContactValue) MarshalJSON() ([]byte, error) {
	if v.structured {
		return json.Marshal(v.fields)
	}
	return json.Marshal(v.text)
}

// preferredContactKeys is the fixed, ordered subset of fields concatenated
// when rendering a structured record for display.
var preferredContactKeys = []string{
	"value", "name", "relationship", "phone", "email",
	"line1", "line2", "city", "county", "postcode", "country",
}

// Display renders the value as a single human-readable string.
//
// Structured records concatenate present preferred fields with ", ". When no
// preferred field is present, any string-valued fields are used instead, in
// lexicographic key order so the output is deterministic. As a last resort
// the whole record is serialized, so no information is silently dropped.
func (v ContactValue) Display() string {
	if !v.structured {
		return strings.TrimSpace(v.text)
	}

	var parts []string
	for _, key := range preferredContactKeys {
		if s, ok := v.fields[key].(string); ok && strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}

	keys := make([]string, 0, len(v.fields))
	for key := range v.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if s, ok := v.fields[key].(string); ok && strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}

	raw, err := json.Marshal(v.fields)
	if err != nil || string(raw) == "{}" {
		return ""
	}
	return string(raw)
}

// ToDisplayList converts heterogeneous values to display strings. Blank
// results are dropped, and an empty result collapses to nil so "no data"
// stays distinguishable from an explicitly cleared list one layer up.
func ToDisplayList(items []ContactValue) []string {
	var out []string
	for _, item := range items {
		if s := item.Display(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ToRequestList is the inverse direction: each display string becomes a
// minimal structured record. When building an address list the first entry
// is marked as the default address. Empty input collapses to nil.
func ToRequestList(display []string, address bool) []ContactValue {
	var out []ContactValue
	for i, s := range display {
		if strings.TrimSpace(s) == "" {
			continue
		}
		fields := map[string]any{"value": s}
		if address && i == 0 {
			fields["is_default"] = true
		}
		out = append(out, NewStructuredValue(fields))
	}
	return out
}
