package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/creator-studio/internal/logger"
)

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a login response.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login validates credentials and issues a session token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidRequest, "invalid request"))
		return
	}

	if req.Username != h.cfg.Auth.Username || req.Password != h.cfg.Auth.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.jwt.GenerateToken(req.Username)
	if err != nil {
		h.log.Error("Token generation failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(codeInternalError, "failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token})
}
