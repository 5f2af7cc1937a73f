package transport

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"safeCast/internal/shared/auth"
	"safeCast/internal/shared/httputil"
)

const (
	claimsContextKey = "claims"
	tokenQueryParam  = "token"
)

// RequireToken validates the bearer token (header or token query parameter)
// and stores the claims on the context. It passes everything through when
// the validator has no key configured.
func RequireToken(validator *auth.JWTValidator, scope string, mapper *httputil.ErrorMapper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !validator.Enabled() {
			return next
		}
		return func(c echo.Context) error {
			token := auth.ExtractToken(c.Request(), tokenQueryParam)
			claims, err := validator.Validate(token)
			if err != nil {
				slog.Warn("token rejected", slog.String("path", c.Path()), slog.String("ip", c.RealIP()), slog.Int("tokenLen", len(token)), slog.Any("error", err))
				return respondError(c, mapper, err)
			}
			if scope != "" && !claims.HasScope(scope) {
				slog.Warn("token scope missing", slog.String("path", c.Path()), slog.String("subject", claims.Subject), slog.String("scope", scope))
				return respondError(c, mapper, auth.ErrMissingScope)
			}
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by RequireToken, or nil.
func ClaimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsContextKey).(*auth.Claims)
	return claims
}
