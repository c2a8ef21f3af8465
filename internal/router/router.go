package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"ssoverify/internal/config"
	"ssoverify/internal/handler"
	"ssoverify/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, authH *handler.AuthHandler, log zerolog.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORS))

	auth := r.Group("/auth")
	auth.POST("/verify-google-token", authH.VerifyGoogleToken)
	auth.POST("/verify-microsoft-token", authH.VerifyMicrosoftToken)
	auth.POST("/logout", authH.Logout)
	auth.GET("/health", authH.Health)

	return r
}
