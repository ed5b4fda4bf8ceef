package jsonutil_test

import (
	"reflect"
	"testing"

	"github.com/aulalab/gradegate/internal/jsonutil"
)

func TestFormatIndentsTwoSpaces(t *testing.T) {
	got := jsonutil.Format(map[string]int{"x": 1})
	want := "{\n  \"x\": 1\n}"
	if got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormatUnmarshalableFallsBack(t *testing.T) {
	if got := jsonutil.Format(make(chan int)); got != "" {
		t.Fatalf("Format(chan) = %q, want empty", got)
	}
}

func TestFormatRaw(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"compact object", `{"a":1}`, "{\n  \"a\": 1\n}"},
		{"not json passes through", "plain text", "plain text"},
		{"empty passes through", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := jsonutil.FormatRaw(tc.in); got != tc.want {
				t.Fatalf("FormatRaw(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseSafely(t *testing.T) {
	if v := jsonutil.ParseSafely("not json"); v != nil {
		t.Fatalf("ParseSafely(not json) = %v, want nil", v)
	}
	v := jsonutil.ParseSafely(`{"x":1}`)
	want := map[string]any{"x": float64(1)}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("ParseSafely = %#v, want %#v", v, want)
	}
	if v := jsonutil.ParseSafely(`{"x":1} trailing`); v != nil {
		t.Fatalf("ParseSafely with trailing garbage = %v, want nil", v)
	}
}
