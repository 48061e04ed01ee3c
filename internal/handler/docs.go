package handler

import (
	_ "embed"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// openapiPath is where the session API description lives, relative to the
// server working directory. Served from disk rather than embedded so the
// description can be tweaked without rebuilding.
const openapiPath = "api/openapi.yaml"

// Minimal HTML that loads Swagger UI from a CDN and points to /openapi.yaml.
// This avoids bundling assets and keeps the binary small.
//
//go:embed swagger.html
var swaggerHTML string

// RegisterDocs mounts the documentation endpoints for the session API
// (create/join, rosters, clock control, actions, undo):
//   - GET /openapi.yaml: the raw API description
//   - GET /docs: Swagger UI rendering of it
func RegisterDocs(r *gin.Engine) {
	r.GET("/openapi.yaml", func(c *gin.Context) {
		data, err := os.ReadFile(openapiPath)
		if err != nil {
			c.String(http.StatusInternalServerError, "failed to read api description: %v", err)
			return
		}
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", data)
	})
	r.GET("/docs", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerHTML))
	})
}
