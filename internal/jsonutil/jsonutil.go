// Package jsonutil holds the tolerant JSON helpers used around webhook
// responses. Every function is total: malformed input yields a zero-ish
// value instead of an error.
package jsonutil

import (
	"bytes"
	"encoding/json"
)

// Format renders v as two-space indented JSON. If marshaling fails and v is
// already a string, the string is returned unchanged; any other failure
// yields the empty string.
func Format(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return ""
	}
	return string(b)
}

// FormatRaw re-indents text that is already JSON-encoded. Input that does
// not parse is returned unchanged.
func FormatRaw(text string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(text), "", "  "); err != nil {
		return text
	}
	return buf.String()
}

// ParseSafely parses text as strict JSON, returning nil on any malformed
// input. Callers use the nil result to tell "webhook returned JSON" apart
// from "webhook returned plain text".
func ParseSafely(text string) any {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil
	}
	return v
}
