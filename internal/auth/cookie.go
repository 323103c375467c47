package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName = "token"
	// SessionCookieMaxAge is the session cookie lifetime: one year.
	SessionCookieMaxAge = 365 * 24 * time.Hour
)

// SetSessionCookie attaches the session token to the response as an
// httpOnly cookie with a one-year max-age.
func SetSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(SessionCookieMaxAge.Seconds()),
	})
}

// ClearSessionCookie instructs the client to drop the session cookie.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
