package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hbnb/internal/auth"
	"hbnb/internal/config"
	"hbnb/internal/handler"
	"hbnb/internal/model"
	"hbnb/internal/repository/memory"
	"hbnb/internal/service"
)

// testEnv wires the full HTTP stack over the in-memory stores so requests
// exercise routing, JWT middleware, handlers and services end to end.
type testEnv struct {
	e     *echo.Echo
	users service.UserService
	jwt   *auth.JWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{JWTSecret: "test-secret"}

	userStore := memory.NewUserStore()
	amenityStore := memory.NewAmenityStore()
	placeStore := memory.NewPlaceStore(userStore, amenityStore)
	reviewStore := memory.NewReviewStore()

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(nil)

	userSvc := service.NewUserService(userStore, nil)
	amenitySvc := service.NewAmenityService(amenityStore)
	placeSvc := service.NewPlaceService(placeStore, userStore, amenityStore, reviewStore, nil)
	reviewSvc := service.NewReviewService(reviewStore, userStore, placeStore)
	authSvc := service.NewAuthService(userSvc, jwtService, tokenStore)

	e := echo.New()
	Register(e, cfg, tokenStore,
		handler.NewAuthHandler(authSvc),
		handler.NewUserHandler(userSvc),
		handler.NewAmenityHandler(amenitySvc),
		handler.NewPlaceHandler(placeSvc, reviewSvc),
		handler.NewReviewHandler(reviewSvc),
	)

	return &testEnv{e: e, users: userSvc, jwt: jwtService}
}

// createUser persists a user directly and returns it with a valid bearer token.
func (env *testEnv) createUser(t *testing.T, email string, isAdmin bool) (*model.User, string) {
	t.Helper()
	user, err := env.users.CreateUser(context.Background(), service.CreateUserInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "password123",
		IsAdmin:   isAdmin,
	})
	require.NoError(t, err)

	token, err := env.jwt.GenerateAccessToken(user.ID, user.Email, user.IsAdmin)
	require.NoError(t, err)
	return user, token
}

func (env *testEnv) request(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = strings.NewReader(string(payload))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	rec := env.request(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRegisterAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"password":   "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")

	// Duplicate email is a conflict.
	rec = env.request(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"password":   "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.request(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "ada@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var loginResp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	decode(t, rec, &loginResp)
	assert.NotEmpty(t, loginResp.AccessToken)
	assert.NotEmpty(t, loginResp.RefreshToken)

	rec = env.request(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "ada@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAmenityRoutes_AdminGate(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.createUser(t, "admin@example.com", true)
	_, userToken := env.createUser(t, "user@example.com", false)

	// Unauthenticated request never reaches the handler.
	rec := env.request(http.MethodPost, "/api/v1/amenities", "", map[string]any{"name": "WiFi"})
	assert.True(t, rec.Code == http.StatusBadRequest || rec.Code == http.StatusUnauthorized,
		"expected auth rejection, got %d", rec.Code)

	// Regular users cannot create amenities.
	rec = env.request(http.MethodPost, "/api/v1/amenities", userToken, map[string]any{"name": "WiFi"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.request(http.MethodPost, "/api/v1/amenities", adminToken, map[string]any{"name": "WiFi"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var amenity model.Amenity
	decode(t, rec, &amenity)
	assert.NotEqual(t, uuid.Nil, amenity.ID)
	assert.Equal(t, "WiFi", amenity.Name)

	// A second amenity with the same name is a conflict, not a new row.
	rec = env.request(http.MethodPost, "/api/v1/amenities", adminToken, map[string]any{"name": "WiFi"})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// Reads stay public.
	rec = env.request(http.MethodGet, "/api/v1/amenities", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var amenities []model.Amenity
	decode(t, rec, &amenities)
	assert.Len(t, amenities, 1)

	rec = env.request(http.MethodPut, fmt.Sprintf("/api/v1/amenities/%s", amenity.ID), adminToken, map[string]any{"name": "Fast WiFi"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(http.MethodDelete, fmt.Sprintf("/api/v1/amenities/%s", amenity.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.request(http.MethodGet, fmt.Sprintf("/api/v1/amenities/%s", amenity.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlaceRoutes(t *testing.T) {
	env := newTestEnv(t)
	owner, ownerToken := env.createUser(t, "owner@example.com", false)
	_, otherToken := env.createUser(t, "other@example.com", false)

	t.Run("bad owner reference is a 400 and persists nothing", func(t *testing.T) {
		rec := env.request(http.MethodPost, "/api/v1/places", ownerToken, map[string]any{
			"title":    "Ghost house",
			"price":    "100",
			"owner_id": uuid.New().String(),
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

		rec = env.request(http.MethodGet, "/api/v1/places", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var places []model.Place
		decode(t, rec, &places)
		assert.Empty(t, places)
	})

	var placeID string
	t.Run("owner defaults to the authenticated user", func(t *testing.T) {
		rec := env.request(http.MethodPost, "/api/v1/places", ownerToken, map[string]any{
			"title":     "Cozy loft",
			"price":     "120.50",
			"latitude":  48.85,
			"longitude": 2.35,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var place model.Place
		decode(t, rec, &place)
		assert.Equal(t, owner.ID, place.OwnerID)
		require.NotNil(t, place.Owner)
		assert.Equal(t, owner.Email, place.Owner.Email)
		placeID = place.ID.String()
	})

	t.Run("strangers cannot update", func(t *testing.T) {
		rec := env.request(http.MethodPut, "/api/v1/places/"+placeID, otherToken, map[string]any{
			"title": "Hijacked",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("owner updates", func(t *testing.T) {
		rec := env.request(http.MethodPut, "/api/v1/places/"+placeID, ownerToken, map[string]any{
			"title": "Renovated loft",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var place model.Place
		decode(t, rec, &place)
		assert.Equal(t, "Renovated loft", place.Title)
	})

	t.Run("delete requires auth and ownership", func(t *testing.T) {
		rec := env.request(http.MethodDelete, "/api/v1/places/"+placeID, otherToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = env.request(http.MethodDelete, "/api/v1/places/"+placeID, ownerToken, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = env.request(http.MethodGet, "/api/v1/places/"+placeID, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestReviewRoutes(t *testing.T) {
	env := newTestEnv(t)
	_, ownerToken := env.createUser(t, "owner@example.com", false)
	_, guestToken := env.createUser(t, "guest@example.com", false)

	rec := env.request(http.MethodPost, "/api/v1/places", ownerToken, map[string]any{
		"title": "Cozy loft",
		"price": "120",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var place model.Place
	decode(t, rec, &place)
	placeID := place.ID.String()

	t.Run("owner cannot review own place", func(t *testing.T) {
		rec := env.request(http.MethodPost, "/api/v1/reviews", ownerToken, map[string]any{
			"text":     "I live here and it is great",
			"rating":   5,
			"place_id": placeID,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("guest reviews once", func(t *testing.T) {
		rec := env.request(http.MethodPost, "/api/v1/reviews", guestToken, map[string]any{
			"text":     "Lovely stay",
			"rating":   5,
			"place_id": placeID,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		// Second review for the same place is a conflict.
		rec = env.request(http.MethodPost, "/api/v1/reviews", guestToken, map[string]any{
			"text":     "Still lovely",
			"rating":   4,
			"place_id": placeID,
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("place reviews listing", func(t *testing.T) {
		rec := env.request(http.MethodGet, "/api/v1/places/"+placeID+"/reviews", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var reviews []model.Review
		decode(t, rec, &reviews)
		assert.Len(t, reviews, 1)

		rec = env.request(http.MethodGet, fmt.Sprintf("/api/v1/places/%s/reviews", uuid.New()), "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("deleting an unknown review is a 404", func(t *testing.T) {
		rec := env.request(http.MethodDelete, fmt.Sprintf("/api/v1/reviews/%s", uuid.New()), guestToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUserRoutes(t *testing.T) {
	env := newTestEnv(t)
	user, userToken := env.createUser(t, "user@example.com", false)
	_, adminToken := env.createUser(t, "admin@example.com", true)

	t.Run("only admins create users directly", func(t *testing.T) {
		rec := env.request(http.MethodPost, "/api/v1/users", userToken, map[string]any{
			"first_name": "New",
			"last_name":  "User",
			"email":      "new@example.com",
			"password":   "password123",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = env.request(http.MethodPost, "/api/v1/users", adminToken, map[string]any{
			"first_name": "New",
			"last_name":  "User",
			"email":      "new@example.com",
			"password":   "password123",
			"is_admin":   true,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("self update of name allowed, email change is not", func(t *testing.T) {
		rec := env.request(http.MethodPut, fmt.Sprintf("/api/v1/users/%s", user.ID), userToken, map[string]any{
			"first_name": "Renamed",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = env.request(http.MethodPut, fmt.Sprintf("/api/v1/users/%s", user.ID), userToken, map[string]any{
			"email": "evil@example.com",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("listing never leaks password material", func(t *testing.T) {
		rec := env.request(http.MethodGet, "/api/v1/users", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")
	})
}

func TestErrorShape(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(http.MethodGet, fmt.Sprintf("/api/v1/users/%s", uuid.New()), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Error  string `json:"error"`
		Status int    `json:"status"`
	}
	decode(t, rec, &body)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.NotEmpty(t, body.Error)
}
