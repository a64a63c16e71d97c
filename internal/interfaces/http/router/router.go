package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/finledger/cashmatch/internal/interfaces/http/handler"
	"github.com/finledger/cashmatch/internal/interfaces/http/middleware"
)

// New builds the gin engine with all routes registered
func New(env string, logger *zap.Logger, match *handler.MatchHandler, health *handler.HealthHandler) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))

	r.GET("/healthz", health.Check)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/payments/:id/match", match.TriggerMatch)
	}

	return r
}
