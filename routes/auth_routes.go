package routes

import (
	handlers "taxihail/internal/handlers/shared"
	"taxihail/internal/middleware"
	"taxihail/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the local session routes. Only mounted when the
// JWT auth provider is configured.
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, verifier services.TokenVerifier) {
	auth := r.Group("/auth")
	{
		auth.POST("/session", authHandler.CreateSession)

		me := auth.Group("")
		me.Use(middleware.AuthRequired(verifier))
		{
			me.GET("/me", authHandler.Me)
		}
	}
}
