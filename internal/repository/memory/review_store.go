package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hbnb/internal/model"
	"hbnb/internal/repository"
)

// ReviewStore is an in-memory ReviewRepository.
type ReviewStore struct {
	mu      sync.RWMutex
	reviews map[uuid.UUID]model.Review
}

var _ repository.ReviewRepository = (*ReviewStore)(nil)

// NewReviewStore builds an empty store.
func NewReviewStore() *ReviewStore {
	return &ReviewStore{reviews: make(map[uuid.UUID]model.Review)}
}

func (s *ReviewStore) Create(ctx context.Context, review *model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	s.reviews[review.ID] = *review
	return nil
}

func (s *ReviewStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	review, ok := s.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &review, nil
}

func (s *ReviewStore) FindByUserAndPlace(ctx context.Context, userID, placeID uuid.UUID) (*model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, review := range s.reviews {
		if review.UserID == userID && review.PlaceID == placeID {
			r := review
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *ReviewStore) List(ctx context.Context) ([]model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reviews := make([]model.Review, 0, len(s.reviews))
	for _, review := range s.reviews {
		reviews = append(reviews, review)
	}
	return reviews, nil
}

func (s *ReviewStore) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var reviews []model.Review
	for _, review := range s.reviews {
		if review.PlaceID == placeID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

func (s *ReviewStore) Update(ctx context.Context, review *model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.reviews[review.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	review.CreatedAt = stored.CreatedAt
	review.UpdatedAt = touch(stored.UpdatedAt)
	s.reviews[review.ID] = *review
	return nil
}

func (s *ReviewStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (s *ReviewStore) DeleteByPlace(ctx context.Context, placeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, review := range s.reviews {
		if review.PlaceID == placeID {
			delete(s.reviews, id)
		}
	}
	return nil
}
