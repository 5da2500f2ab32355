package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/creator-studio/internal/brief"
	"github.com/jonesrussell/creator-studio/internal/events"
)

// maxBriefBytes bounds the accepted document size.
const maxBriefBytes = 1 << 20

// ParseBrief extracts a producer brief from a semi-structured text document
// and validates it. Findings come back as data; the response is 200 even
// when the document has errors.
func (h *Handler) ParseBrief(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBriefBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidRequest, "unreadable request body"))
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidRequest, "empty document"))
		return
	}

	result := brief.Parse(string(body))
	h.publishBriefEvent(result)
	c.JSON(http.StatusOK, result)
}

// ValidateBrief validates a producer brief submitted as JSON.
func (h *Handler) ValidateBrief(c *gin.Context) {
	var doc brief.ProducerBrief
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidRequest, "invalid request body: "+err.Error()))
		return
	}

	result := brief.Validate(&doc)
	h.publishBriefEvent(result)
	c.JSON(http.StatusOK, result)
}

func (h *Handler) publishBriefEvent(result *brief.Result) {
	eventType := events.BriefValidated
	if !result.OK() {
		eventType = events.BriefRejected
	}
	h.events.PublishAsync(events.BriefEvent{
		EventType:  eventType,
		BriefTitle: result.Brief.Title,
		Warnings:   len(result.Warnings),
		Errors:     len(result.Errors),
	})
}
