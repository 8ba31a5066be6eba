package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carometro/internal/auth"
	"carometro/internal/occurrence"
)

// ListOccurrences returns visible occurrences, newest first.
func (h *Handler) ListOccurrences(c *gin.Context) {
	f := occurrence.Filter{
		StudentID: c.Query("student_id"),
		Category:  occurrence.Category(c.Query("category")),
		From:      c.Query("from"),
		To:        c.Query("to"),
	}
	viewer := auth.CurrentUser(c)
	occs, err := h.occs.List(c.Request.Context(), viewer, f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"occurrences": occs})
}

// GetOccurrence returns one record plus the student IDs of its group peers.
func (h *Handler) GetOccurrence(c *gin.Context) {
	viewer := auth.CurrentUser(c)
	o, err := h.occs.Get(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	groupStudents := []string{}
	if o.GroupID != "" {
		peers, err := h.occs.GroupMembers(c.Request.Context(), o)
		if err != nil {
			fail(c, err)
			return
		}
		for _, p := range peers {
			groupStudents = append(groupStudents, p.StudentID)
		}
	}
	c.JSON(http.StatusOK, gin.H{"occurrence": o, "group_student_ids": groupStudents})
}

type occurrenceRequest struct {
	Date         string `json:"date" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Category     string `json:"category" binding:"required"`
	Confidential bool   `json:"is_confidential"`
}

func (r occurrenceRequest) content() occurrence.Content {
	return occurrence.Content{
		Date:         r.Date,
		Title:        r.Title,
		Description:  r.Description,
		Category:     occurrence.Category(r.Category),
		Confidential: r.Confidential,
	}
}

// CreateOccurrence registers the incident for one or more students.
func (h *Handler) CreateOccurrence(c *gin.Context) {
	var req struct {
		occurrenceRequest
		StudentIDs []string `json:"student_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	actor := auth.CurrentUser(c)
	created, err := h.occs.Create(c.Request.Context(), actor, req.content(), req.StudentIDs)
	if err != nil {
		if len(created) > 0 {
			// Part of the batch went through before the failure.
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "created": created})
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"occurrences": created})
}

// UpdateOccurrence reconciles an edit against the record's group. The author
// or a moderator may edit; student_ids is the desired set of other students
// sharing the incident.
func (h *Handler) UpdateOccurrence(c *gin.Context) {
	viewer := auth.CurrentUser(c)
	prior, err := h.occs.Get(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !auth.CanModifyOccurrence(viewer, prior.RegisteredBy) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the author"})
		return
	}

	var req struct {
		occurrenceRequest
		StudentIDs []string `json:"student_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.occs.Edit(c.Request.Context(), viewer, prior.ID, req.content(), req.StudentIDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"occurrence": updated})
}

// DeleteOccurrence removes a single record.
func (h *Handler) DeleteOccurrence(c *gin.Context) {
	viewer := auth.CurrentUser(c)
	o, err := h.occs.Get(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !auth.CanModifyOccurrence(viewer, o.RegisteredBy) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the author"})
		return
	}
	if err := h.occs.Delete(c.Request.Context(), viewer, o.ID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
