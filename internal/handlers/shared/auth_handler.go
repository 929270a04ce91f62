package handlers

import (
	"taxihail/internal/middleware"
	"taxihail/internal/services"
	"taxihail/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler issues locally signed session tokens. It is only mounted when
// the JWT auth provider is configured; with Firebase, clients obtain ID
// tokens from the Firebase SDK directly.
type AuthHandler struct {
	issuer *services.JWTVerifier
}

func NewAuthHandler(issuer *services.JWTVerifier) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

type sessionRequest struct {
	UID         string `json:"uid" binding:"required"`
	DisplayName string `json:"display_name"`
}

// CreateSession signs a session token for the given identity
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var request sessionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	token, err := h.issuer.IssueToken(&services.Principal{
		UID:         request.UID,
		DisplayName: request.DisplayName,
	})
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Session created", gin.H{"token": token})
}

// Me returns the principal resolved from the bearer token
func (h *AuthHandler) Me(c *gin.Context) {
	principal, exists := c.Get(middleware.ContextPrincipal)
	if !exists {
		utils.UnauthorizedResponse(c)
		return
	}

	utils.SuccessResponse(c, "Session retrieved", principal)
}
