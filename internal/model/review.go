package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review represents a user's rating of a place. A user may review a given
// place at most once.
type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Rating    int       `json:"rating" gorm:"not null"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_review_user_place"`
	PlaceID   uuid.UUID `json:"place_id" gorm:"type:char(36);not null;uniqueIndex:idx_review_user_place"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
