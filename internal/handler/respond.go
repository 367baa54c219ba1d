package handler

import (
	"net/http"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "hbnb/internal/errors"
	"hbnb/internal/service"
)

// respondError maps a service error to the `{"error","status"}` wire shape.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func respondBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
		Error:  message,
		Status: http.StatusBadRequest,
	})
}

func respondUnauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
		Error:  message,
		Status: http.StatusUnauthorized,
	})
}

// pathID parses the uuid path parameter named name.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// actorFromContext extracts the authenticated actor from the claims the JWT
// middleware placed in the context.
func actorFromContext(c echo.Context) (service.Actor, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return service.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return service.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	rawID, _ := claims["user_id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return service.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}
	isAdmin, _ := claims["is_admin"].(bool)
	return service.Actor{ID: id, IsAdmin: isAdmin}, nil
}

// bearerToken returns the raw token from the Authorization header, or "".
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimPrefix(header, prefix)
	}
	return ""
}

// parseUUIDs converts string ids from a payload, reporting the first bad one.
func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
