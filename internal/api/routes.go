package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/creator-studio/internal/auth"
)

// SetupRoutes configures all API routes. Protected routes carry the JWT
// middleware; health routes are registered by the server shell.
func SetupRoutes(router *gin.Engine, h *Handler) {
	// Legacy path served to the deployed frontend; must not move.
	router.GET("/api/smartglasses/surfaced-products", h.SurfacedProducts)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", h.Login)

		pages := v1.Group("/pages")
		{
			pages.GET("", h.ListPages)
			pages.GET("/resolve", h.ResolvePage)
		}

		captions := v1.Group("/captions")
		{
			captions.GET("/styles", h.ListCaptionStyles)
			captions.GET("/styles/:id", h.GetCaptionStyle)
		}

		v1.GET("/knowledge/search", h.SearchKnowledge)
	}

	protected := v1.Group("")
	protected.Use(auth.Middleware(h.jwt))
	{
		protected.POST("/knowledge", h.CreateKnowledgeItem)
		protected.DELETE("/knowledge/:id", h.DeleteKnowledgeItem)

		briefs := protected.Group("/briefs")
		{
			briefs.POST("/parse", h.ParseBrief)
			briefs.POST("/validate", h.ValidateBrief)
		}

		runs := protected.Group("/pipeline/runs")
		{
			runs.POST("", h.StartRun)
			runs.GET("/:id", h.GetRun)
			runs.POST("/:id/steps/:stepId", h.UpdateRunStep)
			runs.GET("/:id/events", h.StreamRunEvents)
		}

		protected.POST("/share", h.CreateShareLink)
	}
}
