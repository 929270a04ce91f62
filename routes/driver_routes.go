package routes

import (
	handlers "taxihail/internal/handlers/shared"
	"taxihail/internal/middleware"
	"taxihail/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupDriverRoutes sets up the driver-facing claim/status routes and the
// profile routes shared by both roles.
func SetupDriverRoutes(r *gin.RouterGroup, driverHandler *handlers.DriverHandler, verifier services.TokenVerifier, driverService services.DriverService) {
	// Profile routes: any authenticated user can read and save a profile
	profile := r.Group("/profile")
	profile.Use(middleware.AuthRequired(verifier))
	{
		profile.GET("/", driverHandler.GetProfile)
		profile.PUT("/", driverHandler.UpsertProfile)
	}

	// Driver routes: claim, status transitions and the driver board all
	// require a driver-role profile.
	driver := r.Group("/driver")
	driver.Use(middleware.AuthRequired(verifier), middleware.DriverRequired(driverService))
	{
		driver.GET("/rides", driverHandler.Board)
		driver.POST("/rides/:id/claim", driverHandler.ClaimRide)
		driver.PUT("/rides/:id/status", driverHandler.UpdateRideStatus)
		driver.POST("/rides/:id/release", driverHandler.ReleaseRide)
		driver.PUT("/availability", driverHandler.SetAvailability)
	}
}
