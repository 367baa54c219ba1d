package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hbnb/internal/model"
	"hbnb/internal/repository"
)

// AmenityStore is an in-memory AmenityRepository.
type AmenityStore struct {
	mu        sync.RWMutex
	amenities map[uuid.UUID]model.Amenity
}

var _ repository.AmenityRepository = (*AmenityStore)(nil)

// NewAmenityStore builds an empty store.
func NewAmenityStore() *AmenityStore {
	return &AmenityStore{amenities: make(map[uuid.UUID]model.Amenity)}
}

func (s *AmenityStore) Create(ctx context.Context, amenity *model.Amenity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amenity.ID == uuid.Nil {
		amenity.ID = uuid.New()
	}
	now := time.Now()
	amenity.CreatedAt = now
	amenity.UpdatedAt = now
	s.amenities[amenity.ID] = *amenity
	return nil
}

func (s *AmenityStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Amenity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	amenity, ok := s.amenities[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &amenity, nil
}

func (s *AmenityStore) FindByName(ctx context.Context, name string) (*model.Amenity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, amenity := range s.amenities {
		if amenity.Name == name {
			a := amenity
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *AmenityStore) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Amenity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var amenities []model.Amenity
	for _, id := range ids {
		if amenity, ok := s.amenities[id]; ok {
			amenities = append(amenities, amenity)
		}
	}
	return amenities, nil
}

func (s *AmenityStore) List(ctx context.Context) ([]model.Amenity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	amenities := make([]model.Amenity, 0, len(s.amenities))
	for _, amenity := range s.amenities {
		amenities = append(amenities, amenity)
	}
	sort.Slice(amenities, func(i, j int) bool { return amenities[i].Name < amenities[j].Name })
	return amenities, nil
}

func (s *AmenityStore) Update(ctx context.Context, amenity *model.Amenity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.amenities[amenity.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	amenity.CreatedAt = stored.CreatedAt
	amenity.UpdatedAt = touch(stored.UpdatedAt)
	s.amenities[amenity.ID] = *amenity
	return nil
}

func (s *AmenityStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.amenities[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.amenities, id)
	return nil
}
