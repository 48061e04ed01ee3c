package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/courtkeeper/courtside/internal/service"
)

// APIV1Prefix is the canonical base path for public HTTP API v1.
// Keep a single source of truth to avoid path drift across handlers and tests.
const APIV1Prefix = "/api/v1"

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, repo Pinger, sessions service.SessionService) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewSessionHandler(sessions).Register(api)
	}
}
