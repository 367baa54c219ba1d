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

// PlaceStore is an in-memory PlaceRepository. It holds references to the
// user and amenity stores so reads can expand owner and amenities the way
// the GORM repository does with Preload.
type PlaceStore struct {
	mu     sync.RWMutex
	places map[uuid.UUID]placeRecord

	users     *UserStore
	amenities *AmenityStore
}

type placeRecord struct {
	place      model.Place
	amenityIDs []uuid.UUID
}

var _ repository.PlaceRepository = (*PlaceStore)(nil)

// NewPlaceStore builds an empty store expanding against users and amenities.
func NewPlaceStore(users *UserStore, amenities *AmenityStore) *PlaceStore {
	return &PlaceStore{
		places:    make(map[uuid.UUID]placeRecord),
		users:     users,
		amenities: amenities,
	}
}

func (s *PlaceStore) Create(ctx context.Context, place *model.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if place.ID == uuid.Nil {
		place.ID = uuid.New()
	}
	now := time.Now()
	place.CreatedAt = now
	place.UpdatedAt = now
	s.places[place.ID] = newPlaceRecord(place)
	return nil
}

func (s *PlaceStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	s.mu.RLock()
	rec, ok := s.places[id]
	s.mu.RUnlock()
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	place := s.expand(ctx, rec)
	return &place, nil
}

func (s *PlaceStore) List(ctx context.Context) ([]model.Place, error) {
	s.mu.RLock()
	records := make([]placeRecord, 0, len(s.places))
	for _, rec := range s.places {
		records = append(records, rec)
	}
	s.mu.RUnlock()

	places := make([]model.Place, 0, len(records))
	for _, rec := range records {
		places = append(places, s.expand(ctx, rec))
	}
	return places, nil
}

func (s *PlaceStore) Update(ctx context.Context, place *model.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.places[place.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	place.CreatedAt = stored.place.CreatedAt
	place.UpdatedAt = touch(stored.place.UpdatedAt)
	s.places[place.ID] = newPlaceRecord(place)
	return nil
}

func (s *PlaceStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.places[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.places, id)
	return nil
}

func newPlaceRecord(place *model.Place) placeRecord {
	rec := placeRecord{place: *place, amenityIDs: place.AmenityIDs()}
	rec.place.Owner = nil
	rec.place.Amenities = nil
	return rec
}

// expand attaches the live owner and amenity records, dropping amenity ids
// that no longer resolve.
func (s *PlaceStore) expand(ctx context.Context, rec placeRecord) model.Place {
	place := rec.place
	if owner, err := s.users.FindByID(ctx, place.OwnerID); err == nil {
		place.Owner = owner
	}
	place.Amenities, _ = s.amenities.FindByIDs(ctx, rec.amenityIDs)
	if place.Amenities == nil {
		place.Amenities = []model.Amenity{}
	}
	return place
}
