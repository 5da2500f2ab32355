package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/creator-studio/internal/logger"
	"github.com/jonesrussell/creator-studio/internal/products"
)

// SurfacedProducts returns the products surfaced on the storefront page.
// The response shape is fixed; the deployed frontend consumes it as-is.
func (h *Handler) SurfacedProducts(c *gin.Context) {
	list, err := h.products.ListSurfaced(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to load surfaced products", logger.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(codeInternalError, "failed to load products"))
		return
	}
	if list == nil {
		list = []products.SurfacedProduct{}
	}

	c.JSON(http.StatusOK, gin.H{"products": list})
}
