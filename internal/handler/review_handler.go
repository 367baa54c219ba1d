package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"hbnb/internal/service"
)

// ReviewHandler bundles review HTTP handlers.
type ReviewHandler struct {
	svc service.ReviewService
}

// NewReviewHandler creates a handler layer.
func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// CreateReviewRequest represents a review creation payload. user_id defaults
// to the authenticated user when omitted.
type CreateReviewRequest struct {
	Text    string `json:"text" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	UserID  string `json:"user_id" validate:"omitempty,uuid"`
	PlaceID string `json:"place_id" validate:"required,uuid"`
}

// UpdateReviewRequest is a partial update; absent fields are left untouched.
type UpdateReviewRequest struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

// CreateReview godoc
// @Summary Create review
// @Tags reviews
// @Accept json
// @Produce json
// @Param review body CreateReviewRequest true "Review payload"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /reviews [post]
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	placeID, err := uuid.Parse(req.PlaceID)
	if err != nil {
		return respondBadRequest(c, "invalid place_id")
	}
	in := service.CreateReviewInput{
		Text:    req.Text,
		Rating:  req.Rating,
		PlaceID: placeID,
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			return respondBadRequest(c, "invalid user_id")
		}
		in.UserID = userID
	}

	review, err := h.svc.CreateReview(c.Request().Context(), actor, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}

// GetReview godoc
// @Summary Get review by id
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} model.Review
// @Failure 404 {object} errors.ErrorResponse
// @Router /reviews/{id} [get]
func (h *ReviewHandler) GetReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondBadRequest(c, "invalid id")
	}
	review, err := h.svc.GetReview(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, review)
}

// ListReviews godoc
// @Summary List reviews
// @Tags reviews
// @Produce json
// @Success 200 {array} model.Review
// @Router /reviews [get]
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	reviews, err := h.svc.ListReviews(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

// UpdateReview godoc
// @Summary Update review (author or admin)
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param review body UpdateReviewRequest true "Fields to update"
// @Success 200 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /reviews/{id} [put]
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondBadRequest(c, "invalid id")
	}
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	review, err := h.svc.UpdateReview(c.Request().Context(), actor, id, service.UpdateReviewInput{
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, review)
}

// DeleteReview godoc
// @Summary Delete review (author or admin)
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondBadRequest(c, "invalid id")
	}
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteReview(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "review deleted"})
}
