package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/creator-studio/internal/logger"
	"github.com/jonesrussell/creator-studio/internal/routes"
)

// ShareRequest asks for a share link to an in-app path.
type ShareRequest struct {
	Path string `json:"path" binding:"required"`
}

// CreateShareLink builds the canonical share URL for a known route and
// renders its QR code. Paths outside the route table are rejected.
func (h *Handler) CreateShareLink(c *gin.Context) {
	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidRequest, "invalid request body: "+err.Error()))
		return
	}

	if _, ok := routes.Resolve(req.Path); !ok {
		c.JSON(http.StatusNotFound, errorResponse(codeNotFound, "no route matches path"))
		return
	}

	link, err := h.share.Generate(req.Path)
	if err != nil {
		h.log.Error("Failed to generate share link",
			logger.String("path", req.Path),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, errorResponse(codeInternalError, "failed to generate share link"))
		return
	}

	c.JSON(http.StatusOK, link)
}
