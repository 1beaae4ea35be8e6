package handler

import (
	"net/http"
	"time"

	"salva-iguaba-api/internal/auth"
	"salva-iguaba-api/internal/dto"

	"github.com/labstack/echo/v4"
)

const sessionMaxAge = 60 * 24 * time.Hour

type AuthHandler struct {
	identity   auth.IdentityClient
	cookieName string
}

func NewAuthHandler(identity auth.IdentityClient, cookieName string) *AuthHandler {
	return &AuthHandler{
		identity:   identity,
		cookieName: cookieName,
	}
}

func (h *AuthHandler) OAuthRedirectURL(c echo.Context) error {
	ctx := c.Request().Context()

	redirectURL, err := h.identity.OAuthRedirectURL(ctx, "google")
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"redirect_url": redirectURL,
	})
}

// CreateSession exchanges the OAuth authorization code for a session token
// and sets it as an HTTP-only cookie. The token is opaque to this API.
func (h *AuthHandler) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo inválido")
	}
	if req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "código de autorização não fornecido")
	}

	sessionToken, err := h.identity.ExchangeCodeForSession(ctx, req.Code)
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(sessionToken, sessionMaxAge))

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, auth.EchoUser(c))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		// Best effort: the cookie is cleared even if the provider call fails.
		_ = h.identity.DeleteSession(ctx, cookie.Value)
	}

	c.SetCookie(h.sessionCookie("", 0))

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   int(maxAge.Seconds()),
	}
}
