package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/creator-studio/internal/knowledge"
	"github.com/jonesrussell/creator-studio/internal/logger"
)

// SearchKnowledge ranks the knowledge base against the q query parameter.
// An empty query returns the catalog in stored order.
func (h *Handler) SearchKnowledge(c *gin.Context) {
	query := c.Query("q")

	ranked, err := h.knowledge.Search(c.Request.Context(), query)
	if err != nil {
		h.log.Error("Knowledge search failed",
			logger.Error(err),
			logger.String("query", query),
		)
		c.JSON(http.StatusInternalServerError, errorResponse(codeInternalError, "search failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": ranked,
	})
}

// CreateKnowledgeItem adds a record to the knowledge base.
func (h *Handler) CreateKnowledgeItem(c *gin.Context) {
	var item knowledge.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidRequest, "invalid request body: "+err.Error()))
		return
	}
	if !item.Kind.Valid() {
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidRequest, "unknown knowledge kind"))
		return
	}

	if err := h.knowledge.Create(c.Request.Context(), &item); err != nil {
		h.log.Error("Knowledge item create failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(codeInternalError, "create failed"))
		return
	}

	c.JSON(http.StatusCreated, item)
}

// DeleteKnowledgeItem removes a record from the knowledge base.
func (h *Handler) DeleteKnowledgeItem(c *gin.Context) {
	err := h.knowledge.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, errorResponse(codeNotFound, "knowledge item not found"))
		return
	}
	if err != nil {
		h.log.Error("Knowledge item delete failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(codeInternalError, "delete failed"))
		return
	}

	c.Status(http.StatusNoContent)
}
