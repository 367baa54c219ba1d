package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "hbnb/internal/errors"
	"hbnb/internal/model"
	"hbnb/internal/repository"
)

const amenityNameMaxLen = 128

// AmenityService exposes amenity operations. Admin gating happens at the
// router layer; this layer only validates and persists.
type AmenityService interface {
	CreateAmenity(ctx context.Context, name string) (*model.Amenity, error)
	GetAmenity(ctx context.Context, id uuid.UUID) (*model.Amenity, error)
	ListAmenities(ctx context.Context) ([]model.Amenity, error)
	UpdateAmenity(ctx context.Context, id uuid.UUID, name string) (*model.Amenity, error)
	DeleteAmenity(ctx context.Context, id uuid.UUID) error
}

type amenityService struct {
	repo repository.AmenityRepository
}

// NewAmenityService builds an AmenityService.
func NewAmenityService(repo repository.AmenityRepository) AmenityService {
	return &amenityService{repo: repo}
}

func validateAmenityName(name string) error {
	if name == "" {
		return apperrors.NewValidationError("name", "is required")
	}
	if len(name) > amenityNameMaxLen {
		return apperrors.NewValidationError("name", fmt.Sprintf("must be at most %d characters", amenityNameMaxLen))
	}
	return nil
}

// checkNameUnique rejects a name already held by a different amenity, so the
// unique index never surfaces as a driver error.
func (s *amenityService) checkNameUnique(ctx context.Context, name string, selfID uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err == nil && existing != nil && existing.ID != selfID {
		return apperrors.ErrAmenityNameTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check name uniqueness: %w", err)
	}
	return nil
}

func (s *amenityService) CreateAmenity(ctx context.Context, name string) (*model.Amenity, error) {
	if err := validateAmenityName(name); err != nil {
		return nil, err
	}
	if err := s.checkNameUnique(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}
	amenity := &model.Amenity{ID: uuid.New(), Name: name}
	if err := s.repo.Create(ctx, amenity); err != nil {
		return nil, fmt.Errorf("create amenity: %w", err)
	}
	return amenity, nil
}

func (s *amenityService) GetAmenity(ctx context.Context, id uuid.UUID) (*model.Amenity, error) {
	amenity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAmenityNotFound
		}
		return nil, err
	}
	return amenity, nil
}

func (s *amenityService) ListAmenities(ctx context.Context) ([]model.Amenity, error) {
	return s.repo.List(ctx)
}

func (s *amenityService) UpdateAmenity(ctx context.Context, id uuid.UUID, name string) (*model.Amenity, error) {
	if err := validateAmenityName(name); err != nil {
		return nil, err
	}
	amenity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAmenityNotFound
		}
		return nil, err
	}
	if name != amenity.Name {
		if err := s.checkNameUnique(ctx, name, id); err != nil {
			return nil, err
		}
	}
	amenity.Name = name
	if err := s.repo.Update(ctx, amenity); err != nil {
		return nil, fmt.Errorf("update amenity: %w", err)
	}
	return amenity, nil
}

func (s *amenityService) DeleteAmenity(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAmenityNotFound
		}
		return err
	}
	return nil
}
