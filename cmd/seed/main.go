// Command seed bootstraps the database with the admin user and a starter
// set of amenities so a fresh deployment is immediately usable.
package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"hbnb/internal/config"
	"hbnb/internal/db"
	apperrors "hbnb/internal/errors"
	"hbnb/internal/model"
	"hbnb/internal/repository"
	"hbnb/internal/service"
)

var starterAmenities = []string{"WiFi", "Parking", "Air conditioning", "Kitchen", "Washer", "Pool"}

func main() {
	cfg := config.Load()

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
		log.Fatalf("storage init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Amenity{},
		&model.Place{},
		&model.Review{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	amenityRepo := repository.NewAmenityRepository(gormDB)

	users := service.NewUserService(userRepo, nil)
	if _, err := users.CreateUser(ctx, service.CreateUserInput{
		FirstName: "Admin",
		LastName:  "HBnB",
		Email:     cfg.AdminEmail,
		Password:  cfg.AdminPassword,
		IsAdmin:   true,
	}); err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			log.Printf("admin user %s already exists", cfg.AdminEmail)
		} else {
			log.Fatalf("create admin: %v", err)
		}
	} else {
		log.Printf("created admin user %s", cfg.AdminEmail)
	}

	amenities := service.NewAmenityService(amenityRepo)
	for _, name := range starterAmenities {
		if _, err := amenities.CreateAmenity(ctx, name); err != nil {
			if errors.Is(err, apperrors.ErrAmenityNameTaken) {
				log.Printf("amenity %q already exists", name)
			} else {
				log.Printf("amenity %q: %v", name, err)
			}
			continue
		}
		log.Printf("created amenity %q", name)
	}
}
