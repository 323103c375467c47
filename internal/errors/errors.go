package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when signing up with an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound is returned when no user matches the given email.
	ErrUserNotFound = errors.New("no user found for that email")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid password")
	// ErrUnauthenticated is returned when an operation requires a session and none is present.
	ErrUnauthenticated = errors.New("you must be logged in to do that")
	// ErrInvalidSignature is returned when a session token fails signature verification.
	ErrInvalidSignature = errors.New("session token signature is invalid")
	// ErrMalformedToken is returned when a session token cannot be decoded.
	ErrMalformedToken = errors.New("session token is malformed")
	// ErrResetTokenInvalid is returned when a reset token is unknown or past its expiry.
	ErrResetTokenInvalid = errors.New("reset token is either invalid or expired")
	// ErrPasswordMismatch is returned when the new password and its confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrMailDelivery is returned when the reset email could not be sent.
	ErrMailDelivery = errors.New("could not deliver email")
	// ErrHashing is returned when password hashing fails internally.
	ErrHashing = errors.New("password hashing failed")
	// ErrItemNotFound is returned when an item is not found.
	ErrItemNotFound = errors.New("item not found")
)

// ErrorResponse represents a standardized error response.
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

// MapErrorToHTTP maps domain errors to HTTP errors. Messages come from the
// sentinel errors themselves, which never carry hashes or secrets.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrInvalidSignature):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_SIGNATURE")
	case errors.Is(err, ErrMalformedToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "MALFORMED_TOKEN")
	case errors.Is(err, ErrResetTokenInvalid):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "RESET_TOKEN_INVALID")
	case errors.Is(err, ErrPasswordMismatch):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_MISMATCH")
	case errors.Is(err, ErrMailDelivery):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "DELIVERY_FAILED")
	case errors.Is(err, ErrItemNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ITEM_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
