package occurrence

import "carometro/internal/audit"

// Category classifies an incident.
type Category string

const (
	CategoryBehavioral Category = "Comportamental"
	CategoryAcademic   Category = "Acadêmica"
	CategoryMedical    Category = "Médica"
	CategoryOther      Category = "Outros"
)

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryBehavioral, CategoryAcademic, CategoryMedical, CategoryOther:
		return true
	default:
		return false
	}
}

// Occurrence is one incident record attached to exactly one student.
// Records sharing a non-empty GroupID are the same logical incident
// replicated across students and must stay content-identical except for
// ID and StudentID.
type Occurrence struct {
	ID           string   `json:"id"`
	StudentID    string   `json:"student_id"`
	GroupID      string   `json:"group_id,omitempty"`
	Date         string   `json:"date"` // YYYY-MM-DD
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	RegisteredBy string   `json:"registered_by"`
	Confidential bool     `json:"is_confidential"`
}

// Content carries the shared fields that must stay identical across a group.
type Content struct {
	Date         string   `json:"date"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Confidential bool     `json:"is_confidential"`
}

// withContent returns a copy with the shared fields replaced.
func (o Occurrence) withContent(c Content) Occurrence {
	o.Date = c.Date
	o.Title = c.Title
	o.Description = c.Description
	o.Category = c.Category
	o.Confidential = c.Confidential
	return o
}

// FieldSpecs is the canonical attribute order used for change detection on
// occurrences.
var FieldSpecs = []audit.FieldSpec{
	{Field: "date", Label: "Data"},
	{Field: "title", Label: "Título"},
	{Field: "description", Label: "Descrição"},
	{Field: "category", Label: "Categoria"},
	{Field: "confidential", Label: "Sigilosa"},
}

// Snapshot flattens the record for the change-detection engine.
func (o Occurrence) Snapshot() audit.Snapshot {
	confidential := ""
	if o.Confidential {
		confidential = "Sim"
	}
	return audit.Snapshot{
		"date":         o.Date,
		"title":        o.Title,
		"description":  o.Description,
		"category":     string(o.Category),
		"confidential": confidential,
	}
}
