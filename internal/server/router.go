package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the relay's endpoints. Subscribe and schedule are open to
// the client; tick, debug and test-send require the shared cron secret.
func NewRouter(handler *Handler, secret string, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))

	api := router.Group("/api/push")
	api.POST("/subscribe", handler.HandleSubscribe)
	api.POST("/schedule", handler.HandleSchedule)

	protected := api.Group("", RequireSecret(secret))
	protected.GET("/tick", handler.HandleTick)
	protected.POST("/tick", handler.HandleTick)
	protected.GET("/debug", handler.HandleDebug)
	protected.POST("/test-send", handler.HandleTestSend)

	return router
}
