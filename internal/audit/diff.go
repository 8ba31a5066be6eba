package audit

import (
	"fmt"
	"strings"
)

// Snapshot is a flattened string view of an entity's comparable fields,
// keyed by field name. Identity fields are simply left out.
type Snapshot map[string]string

// FieldSpec names one comparable field and its human-readable label.
// The slice order defines the emission order of changes.
type FieldSpec struct {
	Field string
	Label string
}

// FieldChange records a single detected difference between two snapshots.
type FieldChange struct {
	Field string
	Label string
	Old   string
	New   string
}

// noChanges is the canonical sentence for an empty change list.
const noChanges = "Nenhuma alteração detectada."

// maxValueLen caps rendered values so long free text stays scannable in the log.
const maxValueLen = 50

// Detect compares two snapshots of the same entity field by field and returns
// the ordered list of changes. nil, absent and empty values compare equal.
// It is pure and never fails: a partially populated snapshot just yields a
// different set of changes.
func Detect(old, new Snapshot, fields []FieldSpec) []FieldChange {
	var changes []FieldChange
	for _, spec := range fields {
		oldVal := old[spec.Field]
		newVal := new[spec.Field]
		if oldVal == newVal {
			continue
		}
		label := spec.Label
		if label == "" {
			label = spec.Field
		}
		changes = append(changes, FieldChange{
			Field: spec.Field,
			Label: label,
			Old:   oldVal,
			New:   newVal,
		})
	}
	return changes
}

// FormatChanges renders a change list into the audit string: a count header
// followed by one bullet line per change. Deterministic for a given input.
func FormatChanges(changes []FieldChange) string {
	if len(changes) == 0 {
		return noChanges
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d campo(s) alterado(s):", len(changes))
	for _, c := range changes {
		fmt.Fprintf(&b, "\n• %s: %q → %q", c.Label, formatValue(c.Old), formatValue(c.New))
	}
	return b.String()
}

// formatValue keeps log entries readable: image payloads and URLs collapse to
// a placeholder token, long values are truncated, empty values are spelled out.
func formatValue(v string) string {
	if v == "" {
		return "(vazio)"
	}
	if strings.HasPrefix(v, "data:image") || strings.HasPrefix(v, "http") {
		return "[Imagem/URL]"
	}
	if runes := []rune(v); len(runes) > maxValueLen {
		return string(runes[:maxValueLen-3]) + "..."
	}
	return v
}
