package student

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter narrows a roster by shift, grade and a free-text query. Zero values
// match everything; ShiftAll behaves like no shift filter.
type Filter struct {
	Shift Shift
	Grade string
	Query string
}

// Matches applies the predicate to one student. The query is matched
// case-insensitively against name, RA and RGA.
func (f Filter) Matches(s Student) bool {
	if f.Shift != "" && f.Shift != ShiftAll && s.Shift != f.Shift {
		return false
	}
	if f.Grade != "" && s.Grade != f.Grade {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.RegistrationNumber), q) &&
			!strings.Contains(strings.ToLower(s.RGA), q) {
			return false
		}
	}
	return true
}

// Apply returns the matching students as a new slice.
func (f Filter) Apply(students []Student) []Student {
	out := make([]Student, 0, len(students))
	for _, s := range students {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}

// SortByName orders students by name using Portuguese collation, so accented
// names land where staff expect them in the gallery.
func SortByName(students []Student) {
	col := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(students, func(i, j int) bool {
		return col.CompareString(students[i].Name, students[j].Name) < 0
	})
}
