package handlers

import (
	"github.com/imovia/imovia-backend/internal/models"
	"github.com/labstack/echo/v4"
)

// currentUserID resolves the authenticated user's id from the JWT claims the
// auth middleware stored on the request context. Returns 0 when the request
// carries no resolved identity.
func currentUserID(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}
