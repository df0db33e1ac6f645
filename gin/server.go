// Package gin provides the HTTP boundary for the extraction engine: thin
// JSON endpoints over the fetch-parse-extract flow.
package gin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a gin engine with all routes configured.
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	// CORS for API endpoints.
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	api := r.Group("/api")
	{
		api.GET("/parse", handler.ParseListing)
		api.GET("/parse/detail", handler.ParseDetail)
		api.GET("/parse/categories", handler.ParseCategories)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "pagex",
			"endpoints": gin.H{
				"parse":      "/api/parse?url=YOUR_URL",
				"detail":     "/api/parse/detail?url=YOUR_URL",
				"categories": "/api/parse/categories?url=YOUR_URL",
				"health":     "/health",
			},
		})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response{
			Success: false,
			Error:   "Route " + c.Request.URL.Path + " not found",
		})
	})

	return r
}
