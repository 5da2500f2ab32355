package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/creator-studio/internal/tokens"
)

// ListCaptionStyles returns every caption style with its resolved tokens.
func (h *Handler) ListCaptionStyles(c *gin.Context) {
	ids := tokens.IDs()
	styles := make([]tokens.Style, len(ids))
	for i, id := range ids {
		styles[i] = tokens.Resolve(id)
	}
	c.JSON(http.StatusOK, gin.H{"styles": styles})
}

// GetCaptionStyle resolves one caption style. Unknown identifiers resolve
// to the default style rather than failing.
func (h *Handler) GetCaptionStyle(c *gin.Context) {
	c.JSON(http.StatusOK, tokens.Resolve(tokens.StyleID(c.Param("id"))))
}
