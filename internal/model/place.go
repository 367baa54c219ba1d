package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Place represents a rental listing owned by a user.
type Place struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string          `json:"title" gorm:"size:128;not null;index"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Latitude    float64         `json:"latitude" gorm:"not null"`
	Longitude   float64         `json:"longitude" gorm:"not null"`
	OwnerID     uuid.UUID       `json:"owner_id" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	Owner     *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Amenities []Amenity `json:"amenities" gorm:"many2many:place_amenities"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Place) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// AmenityIDs returns the ids of the attached amenities.
func (p *Place) AmenityIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Amenities))
	for _, a := range p.Amenities {
		ids = append(ids, a.ID)
	}
	return ids
}
