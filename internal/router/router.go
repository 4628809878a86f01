package router

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"artfeeds/internal/auth"
	"artfeeds/internal/config"
	apperrors "artfeeds/internal/errors"
	"artfeeds/internal/handler"
)

// maxUploadBody bounds multipart requests on the article routes.
const maxUploadBody = "50M"

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenStore auth.TokenStoreInterface,
	uploadDir string,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	articleHandler *handler.ArticleHandler,
	categoryHandler *handler.CategoryHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler(cfg)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded attachments are served straight from disk.
	e.Static("/uploads", uploadDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register/user", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/auth/refresh-token", authHandler.Refresh)
	api.POST("/auth/verifyEmail", authHandler.ForgotPassword)
	api.POST("/auth/verify-otp", authHandler.VerifyOTP)
	api.POST("/auth/reset-password", authHandler.ResetPassword)

	api.GET("/auth/me/:userId", authHandler.Me)

	api.GET("/categories", categoryHandler.List)

	// The feed is browsable without a session.
	api.GET("/articles", articleHandler.List)
	api.GET("/articles/:articleId", articleHandler.Get)

	// Secured routes: JWT from the access cookie, then a blacklist check.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "cookie:" + auth.AccessTokenCookie,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: jwtErrorHandler,
	}), extractClaims(tokenStore), requireRole("user"))

	secured.GET("/users/:userId", userHandler.GetProfile)
	secured.PUT("/users/:userId", userHandler.UpdateProfile)
	secured.PUT("/users/:userId/preferences", userHandler.UpdatePreferences)
	secured.POST("/users/change-password", userHandler.ChangePassword)

	secured.POST("/articles", articleHandler.Create, middleware.BodyLimit(maxUploadBody))
	secured.PUT("/articles/:articleId", articleHandler.Update, middleware.BodyLimit(maxUploadBody))
	secured.DELETE("/articles/:articleId", articleHandler.Delete)
	secured.POST("/articles/:articleId/like", articleHandler.Like)
	secured.POST("/articles/:articleId/dislike", articleHandler.Dislike)
	secured.POST("/articles/:articleId/block", articleHandler.Block)
}

// jwtErrorHandler keeps the expired-token case distinguishable so clients
// know to hit the refresh endpoint.
func jwtErrorHandler(c echo.Context, err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return echo.NewHTTPError(http.StatusUnauthorized, "access token expired")
	}
	return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid access token")
}

// extractClaims rejects blacklisted access tokens and exposes the parsed
// claims to handlers under auth.ClaimsContextKey.
func extractClaims(tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid access token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid access token")
			}

			if claims.ID != "" {
				blacklisted, _ := tokenStore.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
				if blacklisted {
					return echo.NewHTTPError(http.StatusUnauthorized, "session has been logged out")
				}
			}

			c.Set(auth.ClaimsContextKey, claims)
			return next(c)
		}
	}
}

// requireRole gates a route group by the role claim, case-insensitively.
func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := auth.ClaimsFrom(c)
			if claims == nil || !strings.EqualFold(claims.Role, role) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

// errorHandler normalizes every error into the common envelope. Stack traces
// are attached in development only.
func errorHandler(cfg *config.Config) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			status  int
			message string
			details []string
		)

		var echoErr *echo.HTTPError
		var httpErr *apperrors.HTTPError
		switch {
		case errors.As(err, &echoErr):
			status = echoErr.Code
			if msg, ok := echoErr.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(status)
			}
		case errors.As(err, &httpErr):
			status = httpErr.StatusCode
			message = httpErr.Message
			details = []string{httpErr.Code}
		default:
			mapped := apperrors.MapErrorToHTTP(err)
			status = mapped.StatusCode
			message = mapped.Message
			details = []string{mapped.Code}
		}

		body := map[string]interface{}{
			"success":    false,
			"statusCode": status,
			"message":    message,
		}
		if len(details) > 0 {
			body["errors"] = details
		}
		if cfg.IsDevelopment() && status >= http.StatusInternalServerError {
			c.Logger().Error(err)
			body["stack"] = string(debug.Stack())
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
