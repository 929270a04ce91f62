package routes

import (
	handlers "taxihail/internal/handlers/shared"
	"taxihail/internal/middleware"
	"taxihail/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupRideRoutes sets up the rider-facing booking routes
func SetupRideRoutes(r *gin.RouterGroup, rideHandler *handlers.RideHandler, verifier services.TokenVerifier) {
	rides := r.Group("/rides")
	rides.Use(middleware.AuthRequired(verifier))
	{
		rides.POST("/", rideHandler.BookRide)
		rides.POST("/quote", rideHandler.QuoteFare)
		rides.GET("/", rideHandler.MyRides)
		rides.POST("/:id/cancel", rideHandler.CancelRide)
	}
}
