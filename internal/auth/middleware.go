package auth

import (
	"errors"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "storefront/internal/errors"
)

const identityContextKey = "identity"

// SessionMiddleware decodes the session cookie into a per-request identity.
// A request without the cookie proceeds as anonymous. A request with a
// cookie that fails verification is rejected outright: a tampered or forged
// token must never be silently treated as a logged-out user.
func SessionMiddleware(verify func(token string) (uuid.UUID, error)) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  identityContextKey,
		TokenLookup: "cookie:" + SessionCookieName,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return verify(token)
		},
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return nil // no cookie: anonymous
			}
			httpErr := apperrors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// UserID returns the authenticated user id attached to the request, or
// false when the request is anonymous.
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(identityContextKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
