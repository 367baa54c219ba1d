package router

import (
	"net/http"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"hbnb/internal/auth"
)

// AdminOnly rejects requests whose token lacks the admin claim.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := tokenClaims(c)
		if err != nil {
			return err
		}
		if isAdmin, _ := claims["is_admin"].(bool); !isAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
		}
		return next(c)
	}
}

// RejectBlacklisted refuses access tokens that were blacklisted on logout.
// Runs after the JWT middleware, so the token is already verified. When the
// blacklist cannot be consulted the token is rejected rather than trusted.
func RejectBlacklisted(store auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := tokenClaims(c)
			if err != nil {
				return err
			}
			jti, _ := claims["jti"].(string)
			if jti != "" {
				blacklisted, err := store.IsAccessTokenBlacklisted(c.Request().Context(), jti)
				if err != nil {
					c.Logger().Errorf("blacklist lookup failed: %v", err)
					return echo.NewHTTPError(http.StatusUnauthorized, "unable to verify token")
				}
				if blacklisted {
					return echo.NewHTTPError(http.StatusUnauthorized, "token has been revoked")
				}
			}
			return next(c)
		}
	}
}

func tokenClaims(c echo.Context) (jwt.MapClaims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return claims, nil
}
