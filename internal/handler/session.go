package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carometro/internal/auth"
)

// Handshake pacing against the portal: it answers the readiness signal
// whenever its directory is warm, so a couple of short retries cover the
// startup race without holding the request long.
const (
	handshakeInterval = 700 * time.Millisecond
	handshakeAttempts = 3
)

// Session resolves the external employee ID through the portal handshake and
// issues the session token. The outcome is always terminal: a token, or 401
// with the anonymous state.
func (h *Handler) Session(c *gin.Context) {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id required"})
		return
	}

	user, ok := auth.Handshake(c.Request.Context(), func(ctx context.Context) (auth.User, error) {
		return h.portal.ResolveEmployee(ctx, employeeID)
	}, handshakeInterval, handshakeAttempts)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "anonymous"})
		return
	}

	token, expiresAt, err := auth.Issue(user, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.SessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "authenticated",
		"token":      token,
		"expires_at": expiresAt.Unix(),
		"user":       user,
	})
}
