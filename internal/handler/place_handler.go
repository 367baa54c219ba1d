package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"hbnb/internal/service"
)

// PlaceHandler bundles place HTTP handlers.
type PlaceHandler struct {
	svc     service.PlaceService
	reviews service.ReviewService
}

// NewPlaceHandler creates a handler layer.
func NewPlaceHandler(svc service.PlaceService, reviews service.ReviewService) *PlaceHandler {
	return &PlaceHandler{svc: svc, reviews: reviews}
}

// CreatePlaceRequest represents a place creation payload. owner_id defaults
// to the authenticated user when omitted.
type CreatePlaceRequest struct {
	Title       string          `json:"title" validate:"required,max=128"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Latitude    float64         `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64         `json:"longitude" validate:"gte=-180,lte=180"`
	OwnerID     string          `json:"owner_id" validate:"omitempty,uuid"`
	AmenityIDs  []string        `json:"amenity_ids" validate:"omitempty,dive,uuid"`
}

// UpdatePlaceRequest is a partial update; absent fields are left untouched.
type UpdatePlaceRequest struct {
	Title       *string          `json:"title" validate:"omitempty,max=128"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Latitude    *float64         `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64         `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	OwnerID     *string          `json:"owner_id" validate:"omitempty,uuid"`
	AmenityIDs  *[]string        `json:"amenity_ids" validate:"omitempty,dive,uuid"`
}

// CreatePlace godoc
// @Summary Create place
// @Tags places
// @Accept json
// @Produce json
// @Param place body CreatePlaceRequest true "Place payload"
// @Success 201 {object} model.Place
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /places [post]
func (h *PlaceHandler) CreatePlace(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req CreatePlaceRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	in := service.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if req.OwnerID != "" {
		ownerID, err := uuid.Parse(req.OwnerID)
		if err != nil {
			return respondBadRequest(c, "invalid owner_id")
		}
		in.OwnerID = ownerID
	}
	if len(req.AmenityIDs) > 0 {
		amenityIDs, err := parseUUIDs(req.AmenityIDs)
		if err != nil {
			return respondBadRequest(c, "invalid amenity_ids")
		}
		in.AmenityIDs = amenityIDs
	}

	place, err := h.svc.CreatePlace(c.Request().Context(), actor, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, place)
}

// GetPlace godoc
// @Summary Get place by id with owner and amenities expanded
// @Tags places
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} model.Place
// @Failure 404 {object} errors.ErrorResponse
// @Router /places/{id} [get]
func (h *PlaceHandler) GetPlace(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondBadRequest(c, "invalid id")
	}
	place, err := h.svc.GetPlace(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, place)
}

// ListPlaces godoc
// @Summary List places
// @Tags places
// @Produce json
// @Success 200 {array} model.Place
// @Router /places [get]
func (h *PlaceHandler) ListPlaces(c echo.Context) error {
	places, err := h.svc.ListPlaces(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, places)
}

// UpdatePlace godoc
// @Summary Update place (owner or admin)
// @Tags places
// @Accept json
// @Produce json
// @Param id path string true "Place ID"
// @Param place body UpdatePlaceRequest true "Fields to update"
// @Success 200 {object} model.Place
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /places/{id} [put]
func (h *PlaceHandler) UpdatePlace(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondBadRequest(c, "invalid id")
	}
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req UpdatePlaceRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	in := service.UpdatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if req.OwnerID != nil {
		ownerID, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			return respondBadRequest(c, "invalid owner_id")
		}
		in.OwnerID = &ownerID
	}
	if req.AmenityIDs != nil {
		amenityIDs, err := parseUUIDs(*req.AmenityIDs)
		if err != nil {
			return respondBadRequest(c, "invalid amenity_ids")
		}
		in.AmenityIDs = &amenityIDs
	}

	place, err := h.svc.UpdatePlace(c.Request().Context(), actor, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, place)
}

// DeletePlace godoc
// @Summary Delete place (owner or admin)
// @Tags places
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /places/{id} [delete]
func (h *PlaceHandler) DeletePlace(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondBadRequest(c, "invalid id")
	}
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePlace(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "place deleted"})
}

// ListPlaceReviews godoc
// @Summary List reviews for a place
// @Tags places
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {array} model.Review
// @Failure 404 {object} errors.ErrorResponse
// @Router /places/{id}/reviews [get]
func (h *PlaceHandler) ListPlaceReviews(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondBadRequest(c, "invalid id")
	}
	reviews, err := h.reviews.ListReviewsForPlace(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}
