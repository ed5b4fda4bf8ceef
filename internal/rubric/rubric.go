// Package rubric holds the rubric document state and the bundled preset
// catalog. A rubric is an opaque JSON document; no schema is enforced here,
// field names are consumed by the external grading workflow only.
package rubric

import (
	"errors"

	"github.com/aulalab/gradegate/internal/jsonutil"
)

// Provenance records how the current rubric was obtained.
type Provenance string

const (
	ProvenanceGenerated Provenance = "generated"
	ProvenanceImported  Provenance = "imported"
	ProvenancePreset    Provenance = "preset"
)

const (
	ExportName = "rubrica.json"
	ExportMIME = "application/json"
)

// ErrNotJSON is the fixed import failure: the selected file must parse as
// JSON before it can replace the current rubric.
var ErrNotJSON = errors.New("rubric file is not valid JSON")

// State is the current rubric held as pretty-printed text plus its
// provenance tag. It is replaced wholesale on each generation, import or
// preset selection.
type State struct {
	Text       string     `json:"text"`
	Provenance Provenance `json:"provenance,omitempty"`
}

func (s State) Empty() bool { return s.Text == "" }

// Import validates data as JSON and returns the imported state with the
// document pretty-printed. No webhook is contacted on failure.
func Import(data []byte) (State, error) {
	v := jsonutil.ParseSafely(string(data))
	if v == nil {
		return State{}, ErrNotJSON
	}
	return State{Text: jsonutil.Format(v), Provenance: ProvenanceImported}, nil
}
