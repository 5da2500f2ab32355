package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports the health of one dependency.
type HealthChecker func() error

// HealthOptions configures the health endpoints.
type HealthOptions struct {
	ServiceName    string
	ServiceVersion string
	Checks         map[string]HealthChecker
}

// RegisterHealthRoutes mounts /health and /ready. /health always answers
// 200 while the process is up; /ready runs the dependency checks and
// answers 503 when any fail.
func RegisterHealthRoutes(router *gin.Engine, opts HealthOptions) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   opts.ServiceName,
			"version":   opts.ServiceVersion,
			"timestamp": time.Now().UTC(),
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		dependencies := make(map[string]string, len(opts.Checks))
		healthy := true
		for name, check := range opts.Checks {
			if err := check(); err != nil {
				dependencies[name] = "unhealthy: " + err.Error()
				healthy = false
				continue
			}
			dependencies[name] = "healthy"
		}

		status := http.StatusOK
		statusText := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			statusText = "not ready"
		}
		c.JSON(status, gin.H{
			"status":       statusText,
			"service":      opts.ServiceName,
			"dependencies": dependencies,
			"timestamp":    time.Now().UTC(),
		})
	})
}
