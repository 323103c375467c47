package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/auth"
	"storefront/internal/errors"
	"storefront/internal/service"
)

// AuthHandler handles signup, signin, signout and the password reset flow.
type AuthHandler struct {
	sessions service.SessionService
	resets   service.ResetService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(sessions service.SessionService, resets service.ResetService) *AuthHandler {
	return &AuthHandler{sessions: sessions, resets: resets}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// SigninRequest represents a login request.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RequestResetRequest asks for a password-reset email.
type RequestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest redeems a reset token for a new password.
type ResetPasswordRequest struct {
	ResetToken      string `json:"reset_token" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.sessions.Signup(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return httpError(err)
	}

	auth.SetSessionCookie(c, token)
	return c.JSON(http.StatusCreated, user)
}

// Signin godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SigninRequest true "Credentials"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.sessions.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	auth.SetSessionCookie(c, token)
	return c.JSON(http.StatusOK, user)
}

// Signout godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} service.Ack
// @Router /signout [post]
func (h *AuthHandler) Signout(c echo.Context) error {
	// always clears, whether or not a session existed
	auth.ClearSessionCookie(c)
	return c.JSON(http.StatusOK, h.sessions.Signout())
}

// Me godoc
// @Summary Return the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return httpError(errors.ErrUnauthenticated)
	}
	user, err := h.sessions.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// RequestReset godoc
// @Summary Email a password-reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RequestResetRequest true "Account email"
// @Success 200 {object} service.Ack
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /request-reset [post]
func (h *AuthHandler) RequestReset(c echo.Context) error {
	var req RequestResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ack, err := h.resets.RequestReset(c.Request().Context(), req.Email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ack)
}

// ResetPassword godoc
// @Summary Redeem a reset token and set a new password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.resets.ResetPassword(c.Request().Context(), req.ResetToken, req.Password, req.ConfirmPassword)
	if err != nil {
		return httpError(err)
	}

	// a successful reset signs the user in
	auth.SetSessionCookie(c, token)
	return c.JSON(http.StatusOK, user)
}

// httpError translates a domain error into an echo HTTP error with the
// standard response shape.
func httpError(err error) *echo.HTTPError {
	mapped := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
}
