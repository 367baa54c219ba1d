package main

import (
	"log"
	"net/http"

	_ "hbnb/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"hbnb/internal/auth"
	"hbnb/internal/cache"
	"hbnb/internal/config"
	"hbnb/internal/db"
	"hbnb/internal/handler"
	"hbnb/internal/model"
	"hbnb/internal/repository"
	"hbnb/internal/repository/memory"
	"hbnb/internal/router"
	"hbnb/internal/service"
)

// @title HBnB API
// @version 1.0
// @description Vacation-rental listing API with users, places, amenities, reviews and JWT authentication.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	userRepo, amenityRepo, placeRepo, reviewRepo, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	userService := service.NewUserService(userRepo, cacheClient)
	authService := service.NewAuthService(userService, jwtService, tokenStore)
	amenityService := service.NewAmenityService(amenityRepo)
	placeService := service.NewPlaceService(placeRepo, userRepo, amenityRepo, reviewRepo, cacheClient)
	reviewService := service.NewReviewService(reviewRepo, userRepo, placeRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	amenityHandler := handler.NewAmenityHandler(amenityService)
	placeHandler := handler.NewPlaceHandler(placeService, reviewService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	router.Register(
		e,
		cfg,
		tokenStore,
		authHandler,
		userHandler,
		amenityHandler,
		placeHandler,
		reviewHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// buildRepositories selects the storage backend from DB_DRIVER. The memory
// backend needs no external services and is intended for local runs.
func buildRepositories(cfg *config.Config) (
	repository.UserRepository,
	repository.AmenityRepository,
	repository.PlaceRepository,
	repository.ReviewRepository,
	error,
) {
	if cfg.DBDriver == "memory" {
		users := memory.NewUserStore()
		amenities := memory.NewAmenityStore()
		places := memory.NewPlaceStore(users, amenities)
		reviews := memory.NewReviewStore()
		return users, amenities, places, reviews, nil
	}

	var (
		gormDB *gorm.DB
		err    error
	)
	switch cfg.DBDriver {
	case "mysql":
		gormDB, err = db.NewMySQL(cfg.MySQLDSN)
	default:
		gormDB, err = db.NewSQLite(cfg.SQLitePath)
	}
	if err != nil {
		return nil, nil, nil, nil, err
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Amenity{},
		&model.Place{},
		&model.Review{},
	); err != nil {
		return nil, nil, nil, nil, err
	}

	return repository.NewUserRepository(gormDB),
		repository.NewAmenityRepository(gormDB),
		repository.NewPlaceRepository(gormDB),
		repository.NewReviewRepository(gormDB),
		nil
}
