package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"salva-iguaba-api/internal/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubIdentity struct {
	user *auth.User
	err  error
}

func (s *stubIdentity) OAuthRedirectURL(context.Context, string) (string, error) {
	return "", nil
}

func (s *stubIdentity) ExchangeCodeForSession(context.Context, string) (string, error) {
	return "", nil
}

func (s *stubIdentity) GetSessionUser(_ context.Context, token string) (*auth.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubIdentity) DeleteSession(context.Context, string) error {
	return nil
}

func callWithCookie(t *testing.T, mw echo.MiddlewareFunc, cookie *http.Cookie) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		user := auth.EchoUser(c)
		require.NotNil(t, user)
		require.Equal(t, user, auth.UserFromContext(c.Request().Context()))
		return c.NoContent(http.StatusOK)
	})

	return rec, handler(c)
}

func TestRequireAuth(t *testing.T) {
	identity := &stubIdentity{user: &auth.User{ID: "user-1", Email: "u@example.com"}}
	mw := RequireAuth(identity, "session_token")

	rec, err := callWithCookie(t, mw, &http.Cookie{Name: "session_token", Value: "tok"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthMissingCookie(t *testing.T) {
	mw := RequireAuth(&stubIdentity{}, "session_token")

	_, err := callWithCookie(t, mw, nil)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireAuthInvalidSession(t *testing.T) {
	identity := &stubIdentity{err: fmt.Errorf("session expired")}
	mw := RequireAuth(identity, "session_token")

	_, err := callWithCookie(t, mw, &http.Cookie{Name: "session_token", Value: "stale"})
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
