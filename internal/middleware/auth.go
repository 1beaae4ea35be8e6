package middleware

import (
	"net/http"

	"salva-iguaba-api/internal/auth"
	"salva-iguaba-api/internal/logger"
	"salva-iguaba-api/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequireAuth resolves the session cookie against the identity service and
// injects the user into the request context. Requests without a valid
// session are rejected with 401.
func RequireAuth(identity auth.IdentityClient, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "autenticação necessária")
			}

			ctx := c.Request().Context()
			user, err := identity.GetSessionUser(ctx, cookie.Value)
			if err != nil {
				logger.FromEcho(c).Debug("session lookup failed", zap.Error(err))
				return echo.NewHTTPError(http.StatusUnauthorized, "sessão inválida")
			}

			auth.SetEchoUser(c, user)
			c.SetRequest(c.Request().WithContext(auth.WithUser(ctx, user)))

			return next(c)
		}
	}
}

// RequireAdmin gates a route on the admin capability row. Must run after
// RequireAuth.
func RequireAdmin(adminService service.AdminService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := auth.EchoUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "autenticação necessária")
			}

			isAdmin, err := adminService.IsAdmin(c.Request().Context(), user.ID)
			if err != nil {
				return err
			}
			if !isAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "acesso negado, apenas administradores")
			}

			return next(c)
		}
	}
}
