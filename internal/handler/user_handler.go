package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"artfeeds/internal/auth"
	"artfeeds/internal/service"
)

// UserHandler handles profile and preference endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest carries partial profile data.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName  string `json:"lastName" validate:"omitempty,min=2,max=50"`
	Phone     string `json:"phone" validate:"omitempty,len=10,numeric"`
	DOB       string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
}

// UpdatePreferencesRequest replaces the user's category preferences.
type UpdatePreferencesRequest struct {
	Preferences []string `json:"preferences" validate:"required,min=1"`
}

// ChangePasswordRequest sets a new password for the authenticated user.
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// GetProfile godoc
// @Summary Fetch a user's profile
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{userId} [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user, err := h.userService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user.Public(),
	})
}

// UpdateProfile godoc
// @Summary Update profile fields
// @Tags users
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Param request body UpdateProfileRequest true "Profile fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{userId} [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	upd := service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if req.DOB != "" {
		dob, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "dob must be in YYYY-MM-DD format")
		}
		upd.DOB = &dob
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, upd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "profile updated successfully",
		"user":    user.Public(),
	})
}

// UpdatePreferences godoc
// @Summary Replace category preferences
// @Tags users
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Param request body UpdatePreferencesRequest true "New preference list"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/{userId}/preferences [put]
func (h *UserHandler) UpdatePreferences(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdatePreferences(c.Request().Context(), userID, req.Preferences)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "preferences updated successfully",
		"preferences": user.Preferences,
	})
}

// ChangePassword godoc
// @Summary Set a new password for the logged-in user
// @Tags users
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "New password"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/change-password [post]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validatePasswordPattern(req.NewPassword); err != nil {
		return err
	}

	if err := h.userService.ChangePassword(c.Request().Context(), claims.UserID, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "password changed successfully",
	})
}
