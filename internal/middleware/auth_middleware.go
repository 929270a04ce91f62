package middleware

import (
	"net/http"
	"strings"

	"taxihail/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	ContextUID       = "uid"
	ContextPrincipal = "principal"
	ContextProfile   = "profile"
)

// AuthRequired validates the bearer token with the configured verifier and
// stores the resolved principal on the request context.
func AuthRequired(verifier services.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		switch {
		case authHeader != "":
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
				c.Abort()
				return
			}
		default:
			// Browsers cannot set headers on websocket upgrades, so the
			// dashboard stream passes the token as a query parameter.
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		principal, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextUID, principal.UID)
		c.Set(ContextPrincipal, principal)

		c.Next()
	}
}

// DriverRequired loads the caller's profile and rejects anyone who is not a
// registered driver. Must run after AuthRequired.
func DriverRequired(drivers services.DriverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(ContextUID)
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		profile, err := drivers.GetProfile(c.Request.Context(), uid)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Driver profile missing"})
			c.Abort()
			return
		}

		if !profile.IsDriver() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Driver access required"})
			c.Abort()
			return
		}

		c.Set(ContextProfile, profile)

		c.Next()
	}
}
