package student

import "carometro/internal/audit"

// Shift is the school session period a class belongs to.
type Shift string

const (
	ShiftMorning   Shift = "Manhã"
	ShiftAfternoon Shift = "Tarde"
	ShiftIntegral  Shift = "Integral"
	// ShiftAll is only used as a filter value, never stored.
	ShiftAll Shift = "Todos"
)

// Status is the enrollment status.
type Status string

const (
	StatusActive      Status = "Ativo"
	StatusInactive    Status = "Inativo"
	StatusTransferred Status = "Transferido"
)

// DepartureMethod records how the student leaves school.
type DepartureMethod string

const (
	DepartureGuardian  DepartureMethod = "Responsável"
	DepartureAlone     DepartureMethod = "Sozinho"
	DepartureTransport DepartureMethod = "Transporte"
	DepartureTEG       DepartureMethod = "TEG"
)

// ImageRightsSigned is the consent value that allows showing the real photo.
const ImageRightsSigned = "Sim"

// Student is one roster record. The ID is numeric in storage and a string
// everywhere in the application.
type Student struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	RegistrationNumber string          `json:"registration_number"` // RA
	RGA                string          `json:"rga"`
	StudentRG          string          `json:"student_rg"`
	StudentCPF         string          `json:"student_cpf"`
	RoomNumber         string          `json:"room_number"`
	Shift              Shift           `json:"shift"`
	Grade              string          `json:"grade"` // e.g. "6º A"
	PhotoURL           string          `json:"photo_url"`
	BirthDate          string          `json:"birth_date"`
	DepartureMethod    DepartureMethod `json:"departure_method"`
	Status             Status          `json:"status"`
	ImageRights        string          `json:"image_rights_signed"` // "Sim" / "Não"

	Guardian1Name  string `json:"guardian1_name"`
	Guardian1Note  string `json:"guardian1_note"`
	Guardian1Phone string `json:"guardian1_phone"`
	Guardian1RG    string `json:"guardian1_rg"`
	Guardian1CPF   string `json:"guardian1_cpf"`

	Guardian2Name  string `json:"guardian2_name"`
	Guardian2Note  string `json:"guardian2_note"`
	Guardian2Phone string `json:"guardian2_phone"`
	Guardian2RG    string `json:"guardian2_rg"`
	Guardian2CPF   string `json:"guardian2_cpf"`

	Phone3     string `json:"phone3"`
	Phone3Note string `json:"phone3_note"`
	Phone4     string `json:"phone4"`
	Phone4Note string `json:"phone4_note"`
}

// HasImageRights reports whether the consent form is signed. Absent or any
// other value counts as unsigned.
func (s Student) HasImageRights() bool {
	return s.ImageRights == ImageRightsSigned
}

// PresentedPhoto returns the photo URL a display surface may use. Without
// signed image rights the stored photo never leaves the service; callers get
// the placeholder plus rights=false so the absence is visibly marked.
func (s Student) PresentedPhoto(placeholderURL string) (url string, rights bool) {
	if !s.HasImageRights() {
		return placeholderURL, false
	}
	if s.PhotoURL == "" {
		return placeholderURL, true
	}
	return s.PhotoURL, true
}

// FieldSpecs is the canonical attribute order used for change detection on
// students. The ID stays out; labels follow the school's own vocabulary.
var FieldSpecs = []audit.FieldSpec{
	{Field: "name", Label: "Nome"},
	{Field: "registrationNumber", Label: "RA"},
	{Field: "rga", Label: "RGA"},
	{Field: "studentRG", Label: "RG do Aluno"},
	{Field: "studentCPF", Label: "CPF do Aluno"},
	{Field: "roomNumber", Label: "Número da Sala"},
	{Field: "shift", Label: "Período"},
	{Field: "grade", Label: "Turma"},
	{Field: "photoUrl", Label: "Foto"},
	{Field: "guardian1Name", Label: "Filiação 1"},
	{Field: "guardian1Note", Label: "Obs. Filiação 1"},
	{Field: "guardian1Phone", Label: "Telefone 1"},
	{Field: "guardian1RG", Label: "RG Responsável 1"},
	{Field: "guardian1CPF", Label: "CPF Responsável 1"},
	{Field: "guardian2Name", Label: "Filiação 2"},
	{Field: "guardian2Note", Label: "Obs. Filiação 2"},
	{Field: "guardian2Phone", Label: "Telefone 2"},
	{Field: "guardian2RG", Label: "RG Responsável 2"},
	{Field: "guardian2CPF", Label: "CPF Responsável 2"},
	{Field: "phone3", Label: "Telefone 3"},
	{Field: "phone3Note", Label: "Obs. Telefone 3"},
	{Field: "phone4", Label: "Telefone 4"},
	{Field: "phone4Note", Label: "Obs. Telefone 4"},
	{Field: "birthDate", Label: "Data de Nascimento"},
	{Field: "departureMethod", Label: "Como Vai Embora"},
	{Field: "status", Label: "Status do Aluno"},
	{Field: "imageRights", Label: "Direito de Imagem"},
}

// Snapshot flattens the record for the change-detection engine.
func (s Student) Snapshot() audit.Snapshot {
	return audit.Snapshot{
		"name":               s.Name,
		"registrationNumber": s.RegistrationNumber,
		"rga":                s.RGA,
		"studentRG":          s.StudentRG,
		"studentCPF":         s.StudentCPF,
		"roomNumber":         s.RoomNumber,
		"shift":              string(s.Shift),
		"grade":              s.Grade,
		"photoUrl":           s.PhotoURL,
		"guardian1Name":      s.Guardian1Name,
		"guardian1Note":      s.Guardian1Note,
		"guardian1Phone":     s.Guardian1Phone,
		"guardian1RG":        s.Guardian1RG,
		"guardian1CPF":       s.Guardian1CPF,
		"guardian2Name":      s.Guardian2Name,
		"guardian2Note":      s.Guardian2Note,
		"guardian2Phone":     s.Guardian2Phone,
		"guardian2RG":        s.Guardian2RG,
		"guardian2CPF":       s.Guardian2CPF,
		"phone3":             s.Phone3,
		"phone3Note":         s.Phone3Note,
		"phone4":             s.Phone4,
		"phone4Note":         s.Phone4Note,
		"birthDate":          s.BirthDate,
		"departureMethod":    string(s.DepartureMethod),
		"status":             string(s.Status),
		"imageRights":        s.ImageRights,
	}
}
