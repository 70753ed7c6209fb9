package gateway

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the gateway endpoints and middleware onto a fresh gin engine.
func NewRouter(h *Handler, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(RecoveryMiddleware(logger))
	router.Use(CORSMiddleware())
	router.Use(LoggingMiddleware(logger))

	api := router.Group("/api")
	api.POST("/chat", h.HandleChat)
	api.GET("/models", h.HandleModels)
	api.GET("/providers", h.HandleProviders)
	api.GET("/health", h.HandleHealth)

	router.NoMethod(h.HandleMethodNotAllowed)
	router.NoRoute(func(c *gin.Context) {
		sendError(c, http.StatusNotFound, "Not found")
	})

	return router
}
