package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Cookie names used for session delivery.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// SetAuthCookies attaches access and refresh tokens as HTTP-only cookies.
func SetAuthCookies(c echo.Context, accessToken, refreshToken string) {
	c.SetCookie(sessionCookie(AccessTokenCookie, accessToken, AccessTokenExpiry))
	c.SetCookie(sessionCookie(RefreshTokenCookie, refreshToken, RefreshTokenExpiry))
}

// SetAccessCookie attaches only a fresh access token cookie.
func SetAccessCookie(c echo.Context, accessToken string) {
	c.SetCookie(sessionCookie(AccessTokenCookie, accessToken, AccessTokenExpiry))
}

// ClearAuthCookies expires both session cookies.
func ClearAuthCookies(c echo.Context) {
	c.SetCookie(sessionCookie(AccessTokenCookie, "", -time.Hour))
	c.SetCookie(sessionCookie(RefreshTokenCookie, "", -time.Hour))
}

func sessionCookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
