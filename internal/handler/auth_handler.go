package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"artfeeds/internal/auth"
	apperrors "artfeeds/internal/errors"
	"artfeeds/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	FirstName   string   `json:"firstName" validate:"required,min=2,max=50"`
	LastName    string   `json:"lastName" validate:"required,min=2,max=50"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone" validate:"required,len=10,numeric"`
	DOB         string   `json:"dob" validate:"required,datetime=2006-01-02"`
	Password    string   `json:"password" validate:"required,min=8"`
	Preferences []string `json:"preferences" validate:"required,min=1"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// EmailRequest carries a bare email, used by the OTP flows.
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyOTPRequest represents an OTP verification request.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// ResetPasswordRequest covers both reset flows: with CurrentPassword set the
// previous password is re-checked; without it this is the OTP recovery path.
type ResetPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// validatePasswordPattern enforces the password shape beyond length: at
// least one letter and one digit.
func validatePasswordPattern(password string) error {
	hasLetter := strings.ContainsFunc(password, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
	hasDigit := strings.ContainsFunc(password, func(r rune) bool {
		return r >= '0' && r <= '9'
	})
	if !hasLetter {
		return echo.NewHTTPError(http.StatusBadRequest, "password must contain at least one letter")
	}
	if !hasDigit {
		return echo.NewHTTPError(http.StatusBadRequest, "password must contain at least one number")
	}
	return nil
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/register/user [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validatePasswordPattern(req.Password); err != nil {
		return err
	}

	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dob must be in YYYY-MM-DD format")
	}

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DOB:         &dob,
		Password:    req.Password,
		Preferences: req.Preferences,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "user registered successfully",
		"data":    user,
	})
}

// Login godoc
// @Summary Login and receive session cookies
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	accessToken, refreshToken, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	auth.SetAuthCookies(c, accessToken, refreshToken)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "login successful",
		"user":    user,
	})
}

// Logout godoc
// @Summary Clear session cookies
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// Best effort: logout always succeeds even with missing or stale cookies.
	_ = h.authService.Logout(c.Request().Context(), cookieValue(c, auth.RefreshTokenCookie), cookieValue(c, auth.AccessTokenCookie))

	auth.ClearAuthCookies(c)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "logout successful",
	})
}

// Refresh godoc
// @Summary Mint a new access token from the refresh cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	refreshToken := cookieValue(c, auth.RefreshTokenCookie)
	if refreshToken == "" {
		return apperrors.ErrInvalidRefreshToken
	}

	accessToken, err := h.authService.Refresh(c.Request().Context(), refreshToken)
	if err != nil {
		return err
	}

	auth.SetAccessCookie(c, accessToken)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"accessToken": accessToken,
	})
}

// ForgotPassword godoc
// @Summary Send a password-reset OTP to the email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body EmailRequest true "Account email"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/verifyEmail [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req EmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "OTP sent successfully",
	})
}

// VerifyOTP godoc
// @Summary Verify a password-reset OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Email and code"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.VerifyOTP(c.Request().Context(), req.Email, req.OTP); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "OTP verified successfully",
	})
}

// ResetPassword godoc
// @Summary Reset the account password
// @Description With currentPassword present the stored password is re-checked
// @Description first; without it this is the OTP recovery flow.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validatePasswordPattern(req.NewPassword); err != nil {
		return err
	}

	ctx := c.Request().Context()
	var err error
	if req.CurrentPassword != "" {
		err = h.authService.ResetPassword(ctx, req.Email, req.CurrentPassword, req.NewPassword)
	} else {
		err = h.authService.ResetPasswordByEmail(ctx, req.Email, req.NewPassword)
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "password reset successfully",
	})
}

// Me godoc
// @Summary Fetch a user's account data by id
// @Tags auth
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/me/{userId} [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user, err := h.authService.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Data retrieved",
		"userData": user,
	})
}

func cookieValue(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
