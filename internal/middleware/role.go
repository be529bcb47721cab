// Package middleware holds the request guards shared by the routes.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"shopadmin/internal/auth"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/logging"
)

var logger = logging.New("middleware")

// RequireRole rejects requests whose token carries none of roles with 403.
// It expects the JWT middleware to have stored *auth.Claims first.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(auth.ClaimsContextKey).(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "missing or invalid token",
					Code:  "UNAUTHORIZED",
				})
			}
			for _, r := range roles {
				if claims.HasRole(r) {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "forbidden",
				Code:  "FORBIDDEN",
			})
		}
	}
}

// BearerParser validates a raw bearer token and rejects revoked ones. When the
// revocation store cannot be read the token is rejected as well.
// The returned function fits echojwt.Config.ParseTokenFunc.
func BearerParser(tokens *auth.JWTService, revoked auth.RevocationStore) func(c echo.Context, raw string) (interface{}, error) {
	return func(c echo.Context, raw string) (interface{}, error) {
		claims, err := tokens.Validate(raw)
		if err != nil {
			return nil, err
		}
		isRevoked, err := revoked.IsRevoked(c.Request().Context(), claims.ID)
		if err != nil {
			logger.Errorj(log.JSON{"msg": "revocation lookup failed", "jti": claims.ID, "error": err.Error()})
			return nil, auth.ErrInvalidToken
		}
		if isRevoked {
			return nil, auth.ErrInvalidToken
		}
		return claims, nil
	}
}
