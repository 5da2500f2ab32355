package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/creator-studio/internal/events"
	"github.com/jonesrussell/creator-studio/internal/logger"
	"github.com/jonesrussell/creator-studio/internal/pipeline"
)

// StartRunRequest registers a pipeline run for tracking.
type StartRunRequest struct {
	BriefID string   `json:"brief_id" binding:"required"`
	Steps   []string `json:"steps" binding:"required"`
}

// UpdateStepRequest is a status report from the generation pipeline.
type UpdateStepRequest struct {
	Status   pipeline.Status `json:"status" binding:"required"`
	Progress int             `json:"progress"`
}

// StartRun registers a new pipeline run with the given step labels.
func (h *Handler) StartRun(c *gin.Context) {
	var req StartRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidRequest, "invalid request body: "+err.Error()))
		return
	}

	run, err := h.tracker.StartRun(req.BriefID, req.Steps)
	if errors.Is(err, pipeline.ErrNoSteps) {
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidRequest, "at least one step is required"))
		return
	}
	if err != nil {
		h.log.Error("Failed to start run", logger.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(codeInternalError, "failed to start run"))
		return
	}

	h.log.Info("Pipeline run started",
		logger.String("run_id", run.ID),
		logger.String("brief_id", run.BriefID),
		logger.Int("steps", len(run.Steps)),
	)
	c.JSON(http.StatusCreated, run)
}

// GetRun returns the current state of a run.
func (h *Handler) GetRun(c *gin.Context) {
	run, err := h.tracker.Get(c.Param("id"))
	if errors.Is(err, pipeline.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, errorResponse(codeNotFound, "run not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(codeInternalError, "failed to load run"))
		return
	}
	c.JSON(http.StatusOK, run)
}

// UpdateRunStep applies a step status report and fans the updated run out to
// stream subscribers.
func (h *Handler) UpdateRunStep(c *gin.Context) {
	var req UpdateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidRequest, "invalid request body: "+err.Error()))
		return
	}

	run, err := h.tracker.UpdateStep(c.Param("id"), c.Param("stepId"), req.Status, req.Progress)
	switch {
	case errors.Is(err, pipeline.ErrRunNotFound):
		c.JSON(http.StatusNotFound, errorResponse(codeNotFound, "run not found"))
		return
	case errors.Is(err, pipeline.ErrStepNotFound):
		c.JSON(http.StatusNotFound, errorResponse(codeNotFound, "step not found"))
		return
	case errors.Is(err, pipeline.ErrStepTerminal), errors.Is(err, pipeline.ErrBadTransition):
		c.JSON(http.StatusConflict, errorResponse(codeConflict, err.Error()))
		return
	case errors.Is(err, pipeline.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidRequest, err.Error()))
		return
	case err != nil:
		h.log.Error("Failed to update step", logger.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(codeInternalError, "failed to update step"))
		return
	}

	if publishErr := h.broker.Publish(pipeline.EventFor(run)); publishErr != nil {
		h.log.Warn("Run event dropped", logger.String("run_id", run.ID), logger.Error(publishErr))
	}
	if run.Status == pipeline.StatusDone || run.Status == pipeline.StatusFailed {
		h.events.PublishAsync(events.BriefEvent{
			EventType: events.RunCompleted,
			RunID:     run.ID,
		})
	}

	c.JSON(http.StatusOK, run)
}

// StreamRunEvents streams run updates to the client over SSE. The current
// run state is sent first, then every update until the client disconnects.
func (h *Handler) StreamRunEvents(c *gin.Context) {
	runID := c.Param("id")

	run, err := h.tracker.Get(runID)
	if errors.Is(err, pipeline.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, errorResponse(codeNotFound, "run not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(codeInternalError, "failed to load run"))
		return
	}

	eventCh, cleanup := h.broker.Subscribe(runID)
	defer cleanup()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	if writeErr := writeSSEEvent(c, pipeline.EventFor(run)); writeErr != nil {
		return
	}

	heartbeat := time.NewTicker(h.cfg.Pipeline.HeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case event, ok := <-eventCh:
			if !ok {
				return
			}
			if writeErr := writeSSEEvent(c, event); writeErr != nil {
				h.log.Debug("SSE client write failed, disconnecting",
					logger.String("run_id", runID),
					logger.Error(writeErr),
				)
				return
			}
		case <-heartbeat.C:
			if _, writeErr := fmt.Fprint(c.Writer, ": heartbeat\n\n"); writeErr != nil {
				return
			}
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func writeSSEEvent(c *gin.Context, event pipeline.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event.Type, payload); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	c.Writer.Flush()
	return nil
}
