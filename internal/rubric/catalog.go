package rubric

import "sort"

// Preset is a rubric document bundled with the application.
type Preset struct {
	Name     string `json:"name"`
	Document string `json:"-"` // JSON text
}

// Catalog is an immutable lookup table of preset rubrics keyed by
// institution and course.
type Catalog struct {
	entries map[string]map[string][]Preset
}

func NewCatalog(entries map[string]map[string][]Preset) *Catalog {
	copied := make(map[string]map[string][]Preset, len(entries))
	for inst, courses := range entries {
		cc := make(map[string][]Preset, len(courses))
		for course, presets := range courses {
			cc[course] = append([]Preset(nil), presets...)
		}
		copied[inst] = cc
	}
	return &Catalog{entries: copied}
}

func (c *Catalog) Institutions() []string {
	out := make([]string, 0, len(c.entries))
	for inst := range c.entries {
		out = append(out, inst)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Courses(institution string) []string {
	courses := c.entries[institution]
	out := make([]string, 0, len(courses))
	for course := range courses {
		out = append(out, course)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Presets(institution, course string) []Preset {
	return append([]Preset(nil), c.entries[institution][course]...)
}

// Get looks up a single preset. The bool result reports whether the
// (institution, course, name) triple exists.
func (c *Catalog) Get(institution, course, name string) (Preset, bool) {
	for _, p := range c.entries[institution][course] {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
