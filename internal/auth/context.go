package auth

import "github.com/labstack/echo/v4"

// ClaimsContextKey is where the secured middleware chain stores parsed claims.
const ClaimsContextKey = "user_claims"

// ClaimsFrom returns the authenticated user's claims, or nil outside the
// secured route group.
func ClaimsFrom(c echo.Context) *Claims {
	claims, ok := c.Get(ClaimsContextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}
