package handlers

import (
	"net/http"

	"taxihail/internal/middleware"
	"taxihail/internal/models"
	"taxihail/internal/services"
	"taxihail/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideHandler struct {
	bookingService   services.BookingService
	dashboardService services.DashboardService
}

func NewRideHandler(bookingService services.BookingService, dashboardService services.DashboardService) *RideHandler {
	return &RideHandler{
		bookingService:   bookingService,
		dashboardService: dashboardService,
	}
}

// BookRide creates a new ride in the pending pool
func (h *RideHandler) BookRide(c *gin.Context) {
	var request models.BookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	uid := c.GetString(middleware.ContextUID)
	if uid == "" {
		utils.UnauthorizedResponse(c)
		return
	}

	ride, fieldErrors, err := h.bookingService.CreateRide(c.Request.Context(), uid, &request)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	if len(fieldErrors) > 0 {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	utils.CreatedResponse(c, "Ride booked successfully", ride)
}

// QuoteFare estimates distance and fare without booking
func (h *RideHandler) QuoteFare(c *gin.Context) {
	var request models.BookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	quote := h.bookingService.QuoteFare(&request)
	utils.SuccessResponse(c, "Fare estimated", quote)
}

// MyRides returns the rider's board, sorted by status priority
func (h *RideHandler) MyRides(c *gin.Context) {
	uid := c.GetString(middleware.ContextUID)
	if uid == "" {
		utils.UnauthorizedResponse(c)
		return
	}

	rides, err := h.dashboardService.Board(c.Request.Context(), services.Viewer{
		UID:  uid,
		Role: models.RoleRider,
	})
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Rides retrieved", rides)
}

// CancelRide cancels the rider's own pending ride
func (h *RideHandler) CancelRide(c *gin.Context) {
	rideID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ride ID")
		return
	}

	uid := c.GetString(middleware.ContextUID)
	if uid == "" {
		utils.UnauthorizedResponse(c)
		return
	}

	if err := h.bookingService.CancelRide(c.Request.Context(), rideID, uid); err != nil {
		protocolFailure(c, err)
		return
	}

	utils.OperationSuccess(c)
}

// protocolFailure adapts a protocol error into the discriminated
// {success:false, error} result the UI consumes.
func protocolFailure(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		utils.OperationFailure(c, http.StatusNotFound, services.FailureMessage(err))
	case services.IsPreconditionFailed(err):
		utils.OperationFailure(c, http.StatusConflict, services.FailureMessage(err))
	default:
		utils.OperationFailure(c, http.StatusInternalServerError, services.FailureMessage(err))
	}
}
