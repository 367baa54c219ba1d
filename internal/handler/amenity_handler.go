package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hbnb/internal/service"
)

// AmenityHandler bundles amenity HTTP handlers. Mutating routes are mounted
// behind the admin gate in the router.
type AmenityHandler struct {
	svc service.AmenityService
}

// NewAmenityHandler creates a handler layer.
func NewAmenityHandler(svc service.AmenityService) *AmenityHandler {
	return &AmenityHandler{svc: svc}
}

// AmenityRequest represents an amenity create/update payload.
type AmenityRequest struct {
	Name string `json:"name" validate:"required,max=128"`
}

// CreateAmenity godoc
// @Summary Create amenity (admin)
// @Tags amenities
// @Accept json
// @Produce json
// @Param amenity body AmenityRequest true "Amenity payload"
// @Success 201 {object} model.Amenity
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /amenities [post]
func (h *AmenityHandler) CreateAmenity(c echo.Context) error {
	var req AmenityRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	amenity, err := h.svc.CreateAmenity(c.Request().Context(), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, amenity)
}

// GetAmenity godoc
// @Summary Get amenity by id
// @Tags amenities
// @Produce json
// @Param id path string true "Amenity ID"
// @Success 200 {object} model.Amenity
// @Failure 404 {object} errors.ErrorResponse
// @Router /amenities/{id} [get]
func (h *AmenityHandler) GetAmenity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondBadRequest(c, "invalid id")
	}
	amenity, err := h.svc.GetAmenity(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, amenity)
}

// ListAmenities godoc
// @Summary List amenities
// @Tags amenities
// @Produce json
// @Success 200 {array} model.Amenity
// @Router /amenities [get]
func (h *AmenityHandler) ListAmenities(c echo.Context) error {
	amenities, err := h.svc.ListAmenities(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, amenities)
}

// UpdateAmenity godoc
// @Summary Update amenity (admin)
// @Tags amenities
// @Accept json
// @Produce json
// @Param id path string true "Amenity ID"
// @Param amenity body AmenityRequest true "Amenity payload"
// @Success 200 {object} model.Amenity
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /amenities/{id} [put]
func (h *AmenityHandler) UpdateAmenity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondBadRequest(c, "invalid id")
	}
	var req AmenityRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	amenity, err := h.svc.UpdateAmenity(c.Request().Context(), id, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, amenity)
}

// DeleteAmenity godoc
// @Summary Delete amenity (admin)
// @Tags amenities
// @Produce json
// @Param id path string true "Amenity ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /amenities/{id} [delete]
func (h *AmenityHandler) DeleteAmenity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondBadRequest(c, "invalid id")
	}
	if err := h.svc.DeleteAmenity(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "amenity deleted"})
}
