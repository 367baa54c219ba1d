package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hbnb/internal/model"
)

// AmenityRepository defines persistence operations for amenities.
type AmenityRepository interface {
	Create(ctx context.Context, amenity *model.Amenity) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Amenity, error)
	FindByName(ctx context.Context, name string) (*model.Amenity, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Amenity, error)
	List(ctx context.Context) ([]model.Amenity, error)
	Update(ctx context.Context, amenity *model.Amenity) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type amenityRepository struct {
	db *gorm.DB
}

// NewAmenityRepository builds a GORM-backed repository.
func NewAmenityRepository(db *gorm.DB) AmenityRepository {
	return &amenityRepository{db: db}
}

func (r *amenityRepository) Create(ctx context.Context, amenity *model.Amenity) error {
	return r.db.WithContext(ctx).Create(amenity).Error
}

func (r *amenityRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Amenity, error) {
	var amenity model.Amenity
	if err := r.db.WithContext(ctx).First(&amenity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &amenity, nil
}

func (r *amenityRepository) FindByName(ctx context.Context, name string) (*model.Amenity, error) {
	var amenity model.Amenity
	if err := r.db.WithContext(ctx).First(&amenity, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &amenity, nil
}

// FindByIDs returns the amenities matching ids. Callers compare lengths to
// detect dangling references.
func (r *amenityRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Amenity, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var amenities []model.Amenity
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&amenities).Error; err != nil {
		return nil, err
	}
	return amenities, nil
}

func (r *amenityRepository) List(ctx context.Context) ([]model.Amenity, error) {
	var amenities []model.Amenity
	if err := r.db.WithContext(ctx).Order("name").Find(&amenities).Error; err != nil {
		return nil, err
	}
	return amenities, nil
}

func (r *amenityRepository) Update(ctx context.Context, amenity *model.Amenity) error {
	return r.db.WithContext(ctx).Save(amenity).Error
}

func (r *amenityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Amenity{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
