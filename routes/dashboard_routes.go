package routes

import (
	handlers "taxihail/internal/handlers/shared"
	"taxihail/internal/middleware"
	"taxihail/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupDashboardRoutes sets up the live dashboard stream and place search
func SetupDashboardRoutes(r *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler, placeHandler *handlers.PlaceHandler, verifier services.TokenVerifier) {
	ws := r.Group("/ws")
	ws.Use(middleware.AuthRequired(verifier))
	{
		ws.GET("/dashboard", dashboardHandler.Stream)
	}

	places := r.Group("/places")
	places.Use(middleware.AuthRequired(verifier))
	{
		places.GET("/search", placeHandler.Search)
	}
}
