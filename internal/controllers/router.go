package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fsdevblog/geolink/internal/controllers/middlewares"
)

// RouterParams зависимости роутера.
type RouterParams struct {
	Verifier    AccessVerifier
	LinkInfo    LinkInfoProvider
	PingService ConnectionChecker
	Metrics     http.Handler // nil отключает /metrics
	Logger      *zap.Logger
}

func SetupRouter(params RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.LoggerMiddleware(params.Logger, "/ping", "/metrics"))
	r.Use(gin.Recovery())
	r.Use(middlewares.GzipMiddleware("/ping"))

	pingController := NewPingController(params.PingService)
	accessController := NewAccessController(params.Verifier, params.LinkInfo)

	r.GET("/ping", pingController.Ping)
	if params.Metrics != nil {
		r.GET("/metrics", gin.WrapH(params.Metrics))
	}
	r.GET("/:shortCode", accessController.Redirect)

	api := r.Group("/api")
	api.POST("/verify/:shortCode", accessController.Verify)
	api.GET("/public/:shortCode", accessController.PublicInfo)
	return r
}
