package handler

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"carometro/internal/auth"
	"carometro/internal/photo"
	"carometro/internal/student"
)

// studentView is the wire shape of a student. The outer photo fields shadow
// the stored URL: without signed image rights only the placeholder ever
// leaves the service, and image_rights lets the UI mark the restriction.
type studentView struct {
	student.Student
	PhotoURL    string `json:"photo_url"`
	ImageRights bool   `json:"image_rights"`
}

func (h *Handler) present(s student.Student) studentView {
	url, rights := s.PresentedPhoto(h.cfg.PhotoPlaceholderURL)
	return studentView{Student: s, PhotoURL: url, ImageRights: rights}
}

// ListStudents returns the roster filtered by shift, grade and query.
func (h *Handler) ListStudents(c *gin.Context) {
	f := student.Filter{
		Shift: student.Shift(c.Query("shift")),
		Grade: c.Query("grade"),
		Query: c.Query("q"),
	}
	students, err := h.students.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	views := make([]studentView, 0, len(students))
	for _, s := range students {
		views = append(views, h.present(s))
	}
	c.JSON(http.StatusOK, gin.H{"students": views})
}

// GetStudent returns a single record.
func (h *Handler) GetStudent(c *gin.Context) {
	s, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(s))
}

type studentRequest struct {
	ID                 string `json:"id"`
	Name               string `json:"name" binding:"required"`
	RegistrationNumber string `json:"registration_number"`
	RGA                string `json:"rga"`
	StudentRG          string `json:"student_rg"`
	StudentCPF         string `json:"student_cpf"`
	RoomNumber         string `json:"room_number"`
	Shift              string `json:"shift" binding:"required"`
	Grade              string `json:"grade" binding:"required"`
	BirthDate          string `json:"birth_date"`
	DepartureMethod    string `json:"departure_method"`
	Status             string `json:"status"`
	ImageRights        string `json:"image_rights_signed"`

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
	Phone3         string `json:"phone3"`
	Phone3Note     string `json:"phone3_note"`
	Phone4         string `json:"phone4"`
	Phone4Note     string `json:"phone4_note"`
}

func (r studentRequest) toStudent(photoURL string) student.Student {
	status := student.Status(r.Status)
	if r.Status == "" {
		status = student.StatusActive
	}
	departure := student.DepartureMethod(r.DepartureMethod)
	if r.DepartureMethod == "" {
		departure = student.DepartureGuardian
	}
	return student.Student{
		ID:                 r.ID,
		Name:               r.Name,
		RegistrationNumber: r.RegistrationNumber,
		RGA:                r.RGA,
		StudentRG:          r.StudentRG,
		StudentCPF:         r.StudentCPF,
		RoomNumber:         r.RoomNumber,
		Shift:              student.Shift(r.Shift),
		Grade:              r.Grade,
		PhotoURL:           photoURL,
		BirthDate:          r.BirthDate,
		DepartureMethod:    departure,
		Status:             status,
		ImageRights:        r.ImageRights,
		Guardian1Name:      r.Guardian1Name,
		Guardian1Note:      r.Guardian1Note,
		Guardian1Phone:     r.Guardian1Phone,
		Guardian1RG:        r.Guardian1RG,
		Guardian1CPF:       r.Guardian1CPF,
		Guardian2Name:      r.Guardian2Name,
		Guardian2Note:      r.Guardian2Note,
		Guardian2Phone:     r.Guardian2Phone,
		Guardian2RG:        r.Guardian2RG,
		Guardian2CPF:       r.Guardian2CPF,
		Phone3:             r.Phone3,
		Phone3Note:         r.Phone3Note,
		Phone4:             r.Phone4,
		Phone4Note:         r.Phone4Note,
	}
}

// CreateStudent registers a new student record.
func (h *Handler) CreateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}
	actor := auth.CurrentUser(c)
	st := req.toStudent("")
	if err := h.students.Create(c.Request.Context(), actor, st); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.present(st))
}

// UpdateStudent persists an edit; the stored photo URL is untouched here,
// photo changes go through UploadStudentPhoto.
func (h *Handler) UpdateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := c.Param("id")
	current, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	req.ID = id
	updated := req.toStudent(current.PhotoURL)
	actor := auth.CurrentUser(c)
	if err := h.students.Update(c.Request.Context(), actor, updated); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(updated))
}

// UploadStudentPhoto stores a new photo under the deterministic public ID
// derived from grade and name, then saves the returned URL on the record.
// Accepts a multipart "photo" file or a JSON body with a base64 data URL.
func (h *Handler) UploadStudentPhoto(c *gin.Context) {
	if h.photos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo storage not configured"})
		return
	}

	st, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	publicID := photo.PublicID(st.Grade, st.Name)

	var result *photo.UploadResult
	switch {
	case strings.Contains(c.ContentType(), "multipart/form-data"):
		file, header, ferr := c.Request.FormFile("photo")
		if ferr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "photo field required"})
			return
		}
		defer file.Close()
		data, ferr := io.ReadAll(file)
		if ferr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "read file failed"})
			return
		}
		result, err = h.photos.UploadBytes(data, header.Filename, publicID)

	default:
		var body struct {
			Data string `json:"data" binding:"required"`
		}
		if berr := c.ShouldBindJSON(&body); berr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "provide {\"data\": \"<base64 data URL>\"}"})
			return
		}
		result, err = h.photos.UploadBase64(body.Data, publicID)
	}
	if err != nil {
		log.Printf("photo upload failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "photo upload failed"})
		return
	}

	actor := auth.CurrentUser(c)
	if err := h.students.SetPhoto(c.Request.Context(), actor, st.ID, result.SecureURL); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": result.SecureURL, "public_id": result.PublicID})
}
