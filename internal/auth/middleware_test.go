package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionTestServer(issuer *TokenIssuer) *echo.Echo {
	e := echo.New()
	e.Use(SessionMiddleware(issuer.Verify))
	e.GET("/whoami", func(c echo.Context) error {
		if id, ok := UserID(c); ok {
			return c.String(http.StatusOK, id.String())
		}
		return c.String(http.StatusOK, "anonymous")
	})
	return e
}

func doWhoami(e *echo.Echo, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSessionMiddleware_NoCookieIsAnonymous(t *testing.T) {
	e := newSessionTestServer(NewTokenIssuer("test-secret"))

	rec := doWhoami(e, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestSessionMiddleware_InvalidCookieFailsRequest(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	e := newSessionTestServer(issuer)

	forged, err := NewTokenIssuer("other-secret").Sign(uuid.New())
	require.NoError(t, err)

	// a present but unverifiable token is rejected, never treated as anonymous
	for name, value := range map[string]string{
		"garbage token": "garbage",
		"forged token":  forged,
	} {
		rec := doWhoami(e, &http.Cookie{Name: SessionCookieName, Value: value})

		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		assert.NotContains(t, rec.Body.String(), "anonymous", name)
	}
}

func TestSessionMiddleware_ValidCookieAuthenticates(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	e := newSessionTestServer(issuer)

	userID := uuid.New()
	token, err := issuer.Sign(userID)
	require.NoError(t, err)

	rec := doWhoami(e, &http.Cookie{Name: SessionCookieName, Value: token})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}
