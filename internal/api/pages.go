package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/creator-studio/internal/auth"
	"github.com/jonesrussell/creator-studio/internal/routes"
)

// ListPages returns the full page route table for the frontend shell.
func (h *Handler) ListPages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"routes": routes.Table})
}

// ResolvePage resolves a path against the route table and applies the auth
// gate. The caller's session (if any) comes from the Authorization header.
func (h *Handler) ResolvePage(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidRequest, "path query parameter is required"))
		return
	}

	match, decision := routes.Guard(path, auth.SessionChecker(h.jwt, c))
	switch decision {
	case routes.NotFound:
		c.JSON(http.StatusNotFound, errorResponse(codeNotFound, "no route matches path"))
	case routes.Redirect:
		c.JSON(http.StatusOK, gin.H{
			"decision":    "redirect",
			"redirect_to": "/login",
			"route":       match.Route,
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"decision": "allow",
			"route":    match.Route,
			"params":   match.Params,
		})
	}
}
