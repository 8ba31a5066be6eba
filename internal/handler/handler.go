package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carometro/internal/audit"
	"carometro/internal/auth"
	"carometro/internal/config"
	"carometro/internal/occurrence"
	"carometro/internal/photo"
	"carometro/internal/portal"
	"carometro/internal/student"
)

// Handler carries the wired services for all HTTP routes.
type Handler struct {
	cfg      config.App
	students *student.Service
	occs     *occurrence.Service
	logs     *audit.Repo
	photos   *photo.Client // nil when Cloudinary is not configured
	portal   *portal.Client
}

// New creates a handler.
func New(cfg config.App, students *student.Service, occs *occurrence.Service, logs *audit.Repo, photos *photo.Client, portalClient *portal.Client) *Handler {
	return &Handler{
		cfg:      cfg,
		students: students,
		occs:     occs,
		logs:     logs,
		photos:   photos,
		portal:   portalClient,
	}
}

// Register mounts all versioned routes.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/v1/session", h.Session)

	authed := r.Group("/v1", auth.RequireUser(h.cfg.JWTSigningKey, h.cfg.JWTIssuer))

	authed.GET("/students", h.ListStudents)
	authed.GET("/students/:id", h.GetStudent)
	authed.POST("/students", auth.RequireAction(auth.ActionStudentCreate), h.CreateStudent)
	authed.PUT("/students/:id", auth.RequireAction(auth.ActionStudentEdit), h.UpdateStudent)
	authed.POST("/students/:id/photo", auth.RequireAction(auth.ActionPhotoUpload), h.UploadStudentPhoto)

	authed.GET("/occurrences", h.ListOccurrences)
	authed.GET("/occurrences/:id", h.GetOccurrence)
	authed.POST("/occurrences", auth.RequireAction(auth.ActionOccurrenceCreate), h.CreateOccurrence)
	authed.PUT("/occurrences/:id", h.UpdateOccurrence)
	authed.DELETE("/occurrences/:id", h.DeleteOccurrence)

	authed.GET("/logs", auth.RequireAction(auth.ActionLogsView), h.ListLogs)
}

// fail translates service errors into JSON responses. Audit failures never
// reach here; they are swallowed upstream.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, student.ErrNotFound), errors.Is(err, occurrence.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, occurrence.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
