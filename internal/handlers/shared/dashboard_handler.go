package handlers

import (
	"taxihail/internal/middleware"
	"taxihail/internal/models"
	"taxihail/internal/services"
	"taxihail/internal/utils"
	"taxihail/pkg/logger"
	"taxihail/pkg/websocket"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	driverService services.DriverService
	hub           *websocket.Hub
	logger        *logger.Logger
}

func NewDashboardHandler(driverService services.DriverService, hub *websocket.Hub, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		driverService: driverService,
		hub:           hub,
		logger:        logger,
	}
}

// Stream upgrades the connection and attaches the caller to the live ride
// feed. The viewer's role decides which ride updates reach them.
func (h *DashboardHandler) Stream(c *gin.Context) {
	uid := c.GetString(middleware.ContextUID)
	if uid == "" {
		utils.UnauthorizedResponse(c)
		return
	}

	role := models.RoleRider
	profile, err := h.driverService.GetProfile(c.Request.Context(), uid)
	if err == nil && profile.IsDriver() {
		role = models.RoleDriver
	}

	viewer := websocket.Viewer{UID: uid, Role: string(role)}
	if err := websocket.ServeWS(h.hub, c.Writer, c.Request, viewer); err != nil {
		h.logger.WithError(err).WithUID(uid).Warn("Dashboard stream upgrade failed")
	}
}
