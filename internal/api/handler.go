// Package api wires the studio's HTTP handlers onto the gin router.
package api

import (
	"time"

	"github.com/jonesrussell/creator-studio/internal/auth"
	"github.com/jonesrussell/creator-studio/internal/config"
	"github.com/jonesrussell/creator-studio/internal/events"
	"github.com/jonesrussell/creator-studio/internal/knowledge"
	"github.com/jonesrussell/creator-studio/internal/logger"
	"github.com/jonesrussell/creator-studio/internal/pipeline"
	"github.com/jonesrussell/creator-studio/internal/products"
	"github.com/jonesrussell/creator-studio/internal/share"
)

// Handler holds the HTTP request handlers and their collaborators.
type Handler struct {
	cfg       *config.Config
	log       logger.Logger
	jwt       *auth.JWTManager
	knowledge *knowledge.Service
	products  products.Lister
	tracker   *pipeline.Tracker
	broker    *pipeline.Broker
	share     *share.Service
	events    *events.Publisher
}

// Deps bundles the handler's collaborators.
type Deps struct {
	Config    *config.Config
	Log       logger.Logger
	JWT       *auth.JWTManager
	Knowledge *knowledge.Service
	Products  products.Lister
	Tracker   *pipeline.Tracker
	Broker    *pipeline.Broker
	Share     *share.Service
	Events    *events.Publisher
}

// NewHandler creates a new handler instance.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		cfg:       deps.Config,
		log:       deps.Log,
		jwt:       deps.JWT,
		knowledge: deps.Knowledge,
		products:  deps.Products,
		tracker:   deps.Tracker,
		broker:    deps.Broker,
		share:     deps.Share,
		events:    deps.Events,
	}
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// Error codes returned by the API.
const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeNotFound       = "NOT_FOUND"
	codeConflict       = "CONFLICT"
	codeInternalError  = "INTERNAL_ERROR"
)

func errorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     message,
		Code:      code,
		Timestamp: time.Now(),
	}
}
