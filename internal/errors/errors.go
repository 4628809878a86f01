package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when registering an email that is already taken.
	ErrEmailExists = errors.New("email already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrInvalidOTP is returned when an OTP does not match or has expired.
	ErrInvalidOTP = errors.New("invalid or expired OTP")
	// ErrPasswordMismatch is returned when the current password check fails.
	ErrPasswordMismatch = errors.New("current password is not matching")

	// ErrArticleNotFound is returned when an article is not found.
	ErrArticleNotFound = errors.New("article not found")
	// ErrNotArticleOwner is returned when a user mutates an article they do not own.
	ErrNotArticleOwner = errors.New("you can only modify your own articles")
	// ErrImageRequired is returned when creating an article without an image.
	ErrImageRequired = errors.New("image file is required")
	// ErrNoImageToReplace is returned when replacing an image on an article that has none.
	ErrNoImageToReplace = errors.New("no existing image to replace")
	// ErrPreferencesRequired is returned when a preferences update selects nothing.
	ErrPreferencesRequired = errors.New("select at least one category")

	// ErrUnsupportedFileType is returned when an upload has a disallowed MIME type.
	ErrUnsupportedFileType = errors.New("only PDF, JPG, PNG, and video files (MP4, AVI, MOV) are allowed")
)

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEmailExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrInvalidOTP):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_OTP")
	case errors.Is(err, ErrPasswordMismatch):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_MISMATCH")
	case errors.Is(err, ErrArticleNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ARTICLE_NOT_FOUND")
	case errors.Is(err, ErrNotArticleOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_ARTICLE_OWNER")
	case errors.Is(err, ErrImageRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "IMAGE_REQUIRED")
	case errors.Is(err, ErrNoImageToReplace):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_IMAGE_TO_REPLACE")
	case errors.Is(err, ErrPreferencesRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PREFERENCES_REQUIRED")
	case errors.Is(err, ErrUnsupportedFileType):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNSUPPORTED_FILE_TYPE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
