package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hbnb/internal/model"
)

// PlaceRepository defines persistence operations for places. Reads return
// places with owner and amenities loaded.
type PlaceRepository interface {
	Create(ctx context.Context, place *model.Place) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Place, error)
	List(ctx context.Context) ([]model.Place, error)
	Update(ctx context.Context, place *model.Place) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type placeRepository struct {
	db *gorm.DB
}

// NewPlaceRepository builds a GORM-backed repository.
func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) Create(ctx context.Context, place *model.Place) error {
	// Owner is a read-side expansion only; amenities already exist, so Create
	// just inserts the join rows.
	return r.db.WithContext(ctx).Omit("Owner").Create(place).Error
}

func (r *placeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	var place model.Place
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Amenities").
		First(&place, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) List(ctx context.Context) ([]model.Place, error) {
	var places []model.Place
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Amenities").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) Update(ctx context.Context, place *model.Place) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Owner", "Amenities").Save(place).Error; err != nil {
			return err
		}
		return tx.Model(place).Association("Amenities").Replace(place.Amenities)
	})
}

func (r *placeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		place := model.Place{ID: id}
		if err := tx.Model(&place).Association("Amenities").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&place)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
