package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hbnb/internal/model"
)

func TestUserStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	user := &model.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, store.Create(ctx, user))
	require.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)

	got, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.FirstName, got.FirstName)
	assert.Equal(t, user.Email, got.Email)

	byEmail, err := store.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = store.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserStore_UpdateAdvancesTimestamp(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	user := &model.User{Email: "ada@example.com"}
	require.NoError(t, store.Create(ctx, user))
	created := user.CreatedAt
	prev := user.UpdatedAt

	user.FirstName = "Ada"
	require.NoError(t, store.Update(ctx, user))
	assert.Equal(t, created, user.CreatedAt)
	assert.True(t, user.UpdatedAt.After(prev))

	// A second immediate update still moves forward.
	prev = user.UpdatedAt
	require.NoError(t, store.Update(ctx, user))
	assert.True(t, user.UpdatedAt.After(prev))
}

func TestUserStore_UpdateUnknown(t *testing.T) {
	store := NewUserStore()
	err := store.Update(context.Background(), &model.User{ID: uuid.New()})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAmenityStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store := NewAmenityStore()

	wifi := &model.Amenity{Name: "WiFi"}
	pool := &model.Amenity{Name: "Pool"}
	require.NoError(t, store.Create(ctx, wifi))
	require.NoError(t, store.Create(ctx, pool))

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := store.FindByName(ctx, "Pool")
	require.NoError(t, err)
	assert.Equal(t, pool.ID, byName.ID)
	_, err = store.FindByName(ctx, "Sauna")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	subset, err := store.FindByIDs(ctx, []uuid.UUID{wifi.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, subset, 1)
	assert.Equal(t, "WiFi", subset[0].Name)

	wifi.Name = "Fast WiFi"
	require.NoError(t, store.Update(ctx, wifi))
	got, err := store.FindByID(ctx, wifi.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fast WiFi", got.Name)

	require.NoError(t, store.Delete(ctx, pool.ID))
	_, err = store.FindByID(ctx, pool.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, store.Delete(ctx, pool.ID), gorm.ErrRecordNotFound)
}

func TestPlaceStore_ExpandsOwnerAndAmenities(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore()
	amenities := NewAmenityStore()
	places := NewPlaceStore(users, amenities)

	owner := &model.User{FirstName: "Ada", Email: "ada@example.com"}
	require.NoError(t, users.Create(ctx, owner))
	wifi := &model.Amenity{Name: "WiFi"}
	require.NoError(t, amenities.Create(ctx, wifi))

	place := &model.Place{
		Title:     "Cozy loft",
		Price:     decimal.NewFromInt(120),
		Latitude:  48.85,
		Longitude: 2.35,
		OwnerID:   owner.ID,
		Amenities: []model.Amenity{*wifi},
	}
	require.NoError(t, places.Create(ctx, place))

	got, err := places.FindByID(ctx, place.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Owner)
	assert.Equal(t, owner.ID, got.Owner.ID)
	assert.Equal(t, "ada@example.com", got.Owner.Email)
	require.Len(t, got.Amenities, 1)
	assert.Equal(t, wifi.ID, got.Amenities[0].ID)
	assert.True(t, place.Price.Equal(got.Price))
}

func TestPlaceStore_NoAmenitiesYieldsEmptySlice(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore()
	places := NewPlaceStore(users, NewAmenityStore())

	owner := &model.User{Email: "o@example.com"}
	require.NoError(t, users.Create(ctx, owner))

	place := &model.Place{Title: "Bare room", OwnerID: owner.ID}
	require.NoError(t, places.Create(ctx, place))

	got, err := places.FindByID(ctx, place.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Amenities)
	assert.Empty(t, got.Amenities)
}

func TestPlaceStore_UpdateReplacesAmenities(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore()
	amenities := NewAmenityStore()
	places := NewPlaceStore(users, amenities)

	owner := &model.User{Email: "o@example.com"}
	require.NoError(t, users.Create(ctx, owner))
	wifi := &model.Amenity{Name: "WiFi"}
	pool := &model.Amenity{Name: "Pool"}
	require.NoError(t, amenities.Create(ctx, wifi))
	require.NoError(t, amenities.Create(ctx, pool))

	place := &model.Place{Title: "Loft", OwnerID: owner.ID, Amenities: []model.Amenity{*wifi}}
	require.NoError(t, places.Create(ctx, place))
	created := place.CreatedAt

	place.Amenities = []model.Amenity{*pool}
	require.NoError(t, places.Update(ctx, place))
	assert.Equal(t, created, place.CreatedAt)
	assert.True(t, place.UpdatedAt.After(created))

	got, err := places.FindByID(ctx, place.ID)
	require.NoError(t, err)
	require.Len(t, got.Amenities, 1)
	assert.Equal(t, pool.ID, got.Amenities[0].ID)
}

func TestPlaceStore_Delete(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore()
	places := NewPlaceStore(users, NewAmenityStore())

	owner := &model.User{Email: "o@example.com"}
	require.NoError(t, users.Create(ctx, owner))
	place := &model.Place{Title: "Loft", OwnerID: owner.ID}
	require.NoError(t, places.Create(ctx, place))

	require.NoError(t, places.Delete(ctx, place.ID))
	_, err := places.FindByID(ctx, place.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, places.Delete(ctx, place.ID), gorm.ErrRecordNotFound)
}

func TestReviewStore_FindByUserAndPlace(t *testing.T) {
	ctx := context.Background()
	store := NewReviewStore()

	userID := uuid.New()
	placeID := uuid.New()
	review := &model.Review{Text: "Great stay", Rating: 5, UserID: userID, PlaceID: placeID}
	require.NoError(t, store.Create(ctx, review))

	got, err := store.FindByUserAndPlace(ctx, userID, placeID)
	require.NoError(t, err)
	assert.Equal(t, review.ID, got.ID)

	_, err = store.FindByUserAndPlace(ctx, userID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReviewStore_DeleteByPlace(t *testing.T) {
	ctx := context.Background()
	store := NewReviewStore()

	placeID := uuid.New()
	otherPlace := uuid.New()
	require.NoError(t, store.Create(ctx, &model.Review{Text: "a", Rating: 3, UserID: uuid.New(), PlaceID: placeID}))
	require.NoError(t, store.Create(ctx, &model.Review{Text: "b", Rating: 4, UserID: uuid.New(), PlaceID: placeID}))
	survivor := &model.Review{Text: "c", Rating: 5, UserID: uuid.New(), PlaceID: otherPlace}
	require.NoError(t, store.Create(ctx, survivor))

	require.NoError(t, store.DeleteByPlace(ctx, placeID))

	left, err := store.ListByPlace(ctx, placeID)
	require.NoError(t, err)
	assert.Empty(t, left)

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, survivor.ID, all[0].ID)
}
