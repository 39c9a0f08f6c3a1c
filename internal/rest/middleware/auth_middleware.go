package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/padmin-io/newsboard/internal/logger"
)

// TokenVerifier checks a bearer token and returns the subject it was
// issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// userEmailKey is the context key under which the authenticated user's
// email is stored.
const userEmailKey = "user_email"

// RequireAuth rejects requests without a valid Authorization bearer token.
func RequireAuth(tokens TokenVerifier, log logger.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = logger.NopLogger{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "missing bearer token",
					"code":  "UNAUTHORIZED",
				})
			}

			email, err := tokens.Verify(strings.TrimSpace(raw))
			if err != nil {
				log.WarnObj("token rejected", "auth_token_rejected", map[string]any{
					"path": c.Request().URL.Path,
				})
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "invalid token",
					"code":  "UNAUTHORIZED",
				})
			}

			c.Set(userEmailKey, email)
			return next(c)
		}
	}
}

// UserEmail returns the authenticated user's email, if any.
func UserEmail(c echo.Context) string {
	email, _ := c.Get(userEmailKey).(string)
	return email
}
