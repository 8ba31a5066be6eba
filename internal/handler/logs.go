package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListLogs returns the most recent audit entries, newest first.
func (h *Handler) ListLogs(c *gin.Context) {
	entries, err := h.logs.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": entries})
}
