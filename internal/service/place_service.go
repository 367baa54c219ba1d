package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hbnb/internal/cache"
	apperrors "hbnb/internal/errors"
	"hbnb/internal/model"
	"hbnb/internal/repository"
)

const (
	placeTitleMaxLen = 128
	placeCacheTTL    = 5 * time.Minute
)

// CreatePlaceInput carries the fields accepted when creating a place.
// A zero OwnerID defaults to the acting user.
type CreatePlaceInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Latitude    float64
	Longitude   float64
	OwnerID     uuid.UUID
	AmenityIDs  []uuid.UUID
}

// UpdatePlaceInput is a partial update; nil fields are left untouched.
type UpdatePlaceInput struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Latitude    *float64
	Longitude   *float64
	OwnerID     *uuid.UUID
	AmenityIDs  *[]uuid.UUID
}

// PlaceService exposes place operations. All referential checks run before
// any write, so a rejected payload leaves no partial state behind.
type PlaceService interface {
	CreatePlace(ctx context.Context, actor Actor, in CreatePlaceInput) (*model.Place, error)
	GetPlace(ctx context.Context, id uuid.UUID) (*model.Place, error)
	ListPlaces(ctx context.Context) ([]model.Place, error)
	UpdatePlace(ctx context.Context, actor Actor, id uuid.UUID, in UpdatePlaceInput) (*model.Place, error)
	DeletePlace(ctx context.Context, actor Actor, id uuid.UUID) error
}

type placeService struct {
	places    repository.PlaceRepository
	users     repository.UserRepository
	amenities repository.AmenityRepository
	reviews   repository.ReviewRepository
	cache     *cache.Client
}

// NewPlaceService builds a PlaceService.
func NewPlaceService(
	places repository.PlaceRepository,
	users repository.UserRepository,
	amenities repository.AmenityRepository,
	reviews repository.ReviewRepository,
	cache *cache.Client,
) PlaceService {
	return &placeService{
		places:    places,
		users:     users,
		amenities: amenities,
		reviews:   reviews,
		cache:     cache,
	}
}

func (s *placeService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("place:%s", id)
}

func validatePlaceFields(title string, price decimal.Decimal, lat, lng float64) error {
	if title == "" {
		return apperrors.NewValidationError("title", "is required")
	}
	if len(title) > placeTitleMaxLen {
		return apperrors.NewValidationError("title", fmt.Sprintf("must be at most %d characters", placeTitleMaxLen))
	}
	if price.IsNegative() {
		return apperrors.NewValidationError("price", "must be >= 0")
	}
	if lat < -90 || lat > 90 {
		return apperrors.NewValidationError("latitude", "must be in [-90, 90]")
	}
	if lng < -180 || lng > 180 {
		return apperrors.NewValidationError("longitude", "must be in [-180, 180]")
	}
	return nil
}

// resolveAmenities maps ids to amenity records, rejecting any dangling
// reference. Duplicate ids collapse to one.
func (s *placeService) resolveAmenities(ctx context.Context, ids []uuid.UUID) ([]model.Amenity, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	amenities, err := s.amenities.FindByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("resolve amenities: %w", err)
	}
	if len(amenities) != len(unique) {
		return nil, apperrors.ErrInvalidAmenityRef
	}
	return amenities, nil
}

func (s *placeService) CreatePlace(ctx context.Context, actor Actor, in CreatePlaceInput) (*model.Place, error) {
	if err := validatePlaceFields(in.Title, in.Price, in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	ownerID := in.OwnerID
	if ownerID == uuid.Nil {
		ownerID = actor.ID
	}
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidOwner
		}
		return nil, fmt.Errorf("resolve owner: %w", err)
	}
	if !actor.Owns(ownerID) {
		return nil, apperrors.ErrForbidden
	}

	amenities, err := s.resolveAmenities(ctx, in.AmenityIDs)
	if err != nil {
		return nil, err
	}

	place := &model.Place{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		OwnerID:     ownerID,
		Amenities:   amenities,
	}
	if err := s.places.Create(ctx, place); err != nil {
		return nil, fmt.Errorf("create place: %w", err)
	}
	return s.fetch(ctx, place.ID)
}

// GetPlace serves from cache when possible. Cached entries embed owner and
// amenity snapshots; a rename of either elsewhere can be served stale until
// the TTL elapses or the place itself is written.
func (s *placeService) GetPlace(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Place
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	place, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(place); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, placeCacheTTL)
	}
	return place, nil
}

func (s *placeService) ListPlaces(ctx context.Context) ([]model.Place, error) {
	return s.places.List(ctx)
}

func (s *placeService) UpdatePlace(ctx context.Context, actor Actor, id uuid.UUID, in UpdatePlaceInput) (*model.Place, error) {
	place, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(place.OwnerID) {
		return nil, apperrors.ErrForbidden
	}

	if in.OwnerID != nil && *in.OwnerID != place.OwnerID {
		// Reassigning ownership is an admin operation.
		if !actor.IsAdmin {
			return nil, apperrors.ErrForbidden
		}
		if _, err := s.users.FindByID(ctx, *in.OwnerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrInvalidOwner
			}
			return nil, fmt.Errorf("resolve owner: %w", err)
		}
		place.OwnerID = *in.OwnerID
	}
	if in.AmenityIDs != nil {
		amenities, err := s.resolveAmenities(ctx, *in.AmenityIDs)
		if err != nil {
			return nil, err
		}
		if amenities == nil {
			amenities = []model.Amenity{}
		}
		place.Amenities = amenities
	}
	if in.Title != nil {
		place.Title = *in.Title
	}
	if in.Description != nil {
		place.Description = *in.Description
	}
	if in.Price != nil {
		place.Price = *in.Price
	}
	if in.Latitude != nil {
		place.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		place.Longitude = *in.Longitude
	}

	if err := validatePlaceFields(place.Title, place.Price, place.Latitude, place.Longitude); err != nil {
		return nil, err
	}

	place.Owner = nil
	if err := s.places.Update(ctx, place); err != nil {
		return nil, fmt.Errorf("update place: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return s.fetch(ctx, id)
}

// DeletePlace removes the place and its reviews, so no review is left
// pointing at a missing place.
func (s *placeService) DeletePlace(ctx context.Context, actor Actor, id uuid.UUID) error {
	place, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(place.OwnerID) {
		return apperrors.ErrForbidden
	}

	if err := s.reviews.DeleteByPlace(ctx, id); err != nil {
		return fmt.Errorf("delete place reviews: %w", err)
	}
	if err := s.places.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPlaceNotFound
		}
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *placeService) fetch(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	place, err := s.places.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlaceNotFound
		}
		return nil, err
	}
	if place.Amenities == nil {
		place.Amenities = []model.Amenity{}
	}
	return place, nil
}
