package handlers

import (
	"taxihail/internal/middleware"
	"taxihail/internal/models"
	"taxihail/internal/services"
	"taxihail/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverHandler struct {
	protocolService  services.RideProtocolService
	driverService    services.DriverService
	dashboardService services.DashboardService
}

func NewDriverHandler(protocolService services.RideProtocolService, driverService services.DriverService, dashboardService services.DashboardService) *DriverHandler {
	return &DriverHandler{
		protocolService:  protocolService,
		driverService:    driverService,
		dashboardService: dashboardService,
	}
}

// ClaimRide assigns a pending ride to the calling driver. At most one
// concurrent claimer wins; the losers get a conflict result.
func (h *DriverHandler) ClaimRide(c *gin.Context) {
	rideID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ride ID")
		return
	}

	uid := c.GetString(middleware.ContextUID)
	if err := h.protocolService.ClaimRide(c.Request.Context(), rideID, uid); err != nil {
		protocolFailure(c, err)
		return
	}

	utils.OperationSuccess(c)
}

type statusUpdateRequest struct {
	Status models.RideStatus `json:"status" binding:"required"`
}

// UpdateRideStatus moves an assigned ride forward (in_progress, completed)
func (h *DriverHandler) UpdateRideStatus(c *gin.Context) {
	rideID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ride ID")
		return
	}

	var request statusUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	uid := c.GetString(middleware.ContextUID)
	if err := h.protocolService.AdvanceStatus(c.Request.Context(), rideID, uid, request.Status); err != nil {
		protocolFailure(c, err)
		return
	}

	utils.OperationSuccess(c)
}

// ReleaseRide puts the driver's claimed ride back in the pending pool
func (h *DriverHandler) ReleaseRide(c *gin.Context) {
	rideID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ride ID")
		return
	}

	uid := c.GetString(middleware.ContextUID)
	if err := h.protocolService.ReleaseRide(c.Request.Context(), rideID, uid); err != nil {
		protocolFailure(c, err)
		return
	}

	utils.OperationSuccess(c)
}

// Board returns the driver dashboard: the open pool plus the driver's
// own claimed and completed rides.
func (h *DriverHandler) Board(c *gin.Context) {
	uid := c.GetString(middleware.ContextUID)
	rides, err := h.dashboardService.Board(c.Request.Context(), services.Viewer{
		UID:  uid,
		Role: models.RoleDriver,
	})
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Rides retrieved", rides)
}

// GetProfile returns the calling user's profile
func (h *DriverHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.ContextUID)
	profile, err := h.driverService.GetProfile(c.Request.Context(), uid)
	if err != nil {
		protocolFailure(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved", profile)
}

type profileRequest struct {
	DisplayName string          `json:"display_name" binding:"required"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Role        models.UserRole `json:"role"`
	Vehicle     *models.Vehicle `json:"vehicle"`
}

// UpsertProfile creates or updates the calling user's profile
func (h *DriverHandler) UpsertProfile(c *gin.Context) {
	var request profileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	uid := c.GetString(middleware.ContextUID)
	profile, err := h.driverService.UpsertProfile(c.Request.Context(), &models.DriverProfile{
		UID:         uid,
		DisplayName: request.DisplayName,
		Email:       request.Email,
		Phone:       request.Phone,
		Role:        request.Role,
		Vehicle:     request.Vehicle,
	})
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Profile saved", profile)
}

type availabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// SetAvailability toggles whether the driver is shown as on duty
func (h *DriverHandler) SetAvailability(c *gin.Context) {
	var request availabilityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	uid := c.GetString(middleware.ContextUID)
	if err := h.driverService.SetAvailability(c.Request.Context(), uid, *request.Available); err != nil {
		protocolFailure(c, err)
		return
	}

	utils.OperationSuccess(c)
}
