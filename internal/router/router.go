package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"hbnb/internal/auth"
	"hbnb/internal/config"
	apperrors "hbnb/internal/errors"
	"hbnb/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	amenityHandler *handler.AmenityHandler,
	placeHandler *handler.PlaceHandler,
	reviewHandler *handler.ReviewHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/users", userHandler.ListUsers)
	api.GET("/users/:id", userHandler.GetUser)
	api.GET("/amenities", amenityHandler.ListAmenities)
	api.GET("/amenities/:id", amenityHandler.GetAmenity)
	api.GET("/places", placeHandler.ListPlaces)
	api.GET("/places/:id", placeHandler.GetPlace)
	api.GET("/places/:id/reviews", placeHandler.ListPlaceReviews)
	api.GET("/reviews", reviewHandler.ListReviews)
	api.GET("/reviews/:id", reviewHandler.GetReview)

	// Secured routes (require JWT authentication)
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey:  []byte(cfg.JWTSecret),
			TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		}),
		RejectBlacklisted(tokenStore),
	)

	secured.PUT("/users/:id", userHandler.UpdateUser)

	secured.POST("/places", placeHandler.CreatePlace)
	secured.PUT("/places/:id", placeHandler.UpdatePlace)
	secured.DELETE("/places/:id", placeHandler.DeletePlace)

	secured.POST("/reviews", reviewHandler.CreateReview)
	secured.PUT("/reviews/:id", reviewHandler.UpdateReview)
	secured.DELETE("/reviews/:id", reviewHandler.DeleteReview)

	// Admin-only routes
	admin := secured.Group("", AdminOnly)

	admin.POST("/users", userHandler.CreateUser)

	admin.POST("/amenities", amenityHandler.CreateAmenity)
	admin.PUT("/amenities/:id", amenityHandler.UpdateAmenity)
	admin.DELETE("/amenities/:id", amenityHandler.DeleteAmenity)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// errorHandler renders framework errors (bind, JWT, routing) with the same
// `{"error","status"}` body the handlers use.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(status)
		}
	}

	_ = c.JSON(status, apperrors.ErrorResponse{Error: message, Status: status})
}
