package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "hbnb/internal/errors"
	"hbnb/internal/model"
	"hbnb/internal/repository"
)

const (
	ratingMin = 1
	ratingMax = 5
)

// CreateReviewInput carries the fields accepted when creating a review.
// A zero UserID defaults to the acting user.
type CreateReviewInput struct {
	Text    string
	Rating  int
	UserID  uuid.UUID
	PlaceID uuid.UUID
}

// UpdateReviewInput is a partial update; nil fields are left untouched.
type UpdateReviewInput struct {
	Text   *string
	Rating *int
}

// ReviewService exposes review operations.
type ReviewService interface {
	CreateReview(ctx context.Context, actor Actor, in CreateReviewInput) (*model.Review, error)
	GetReview(ctx context.Context, id uuid.UUID) (*model.Review, error)
	ListReviews(ctx context.Context) ([]model.Review, error)
	ListReviewsForPlace(ctx context.Context, placeID uuid.UUID) ([]model.Review, error)
	UpdateReview(ctx context.Context, actor Actor, id uuid.UUID, in UpdateReviewInput) (*model.Review, error)
	DeleteReview(ctx context.Context, actor Actor, id uuid.UUID) error
}

type reviewService struct {
	reviews repository.ReviewRepository
	users   repository.UserRepository
	places  repository.PlaceRepository
}

// NewReviewService builds a ReviewService.
func NewReviewService(
	reviews repository.ReviewRepository,
	users repository.UserRepository,
	places repository.PlaceRepository,
) ReviewService {
	return &reviewService{reviews: reviews, users: users, places: places}
}

func validateRating(rating int) error {
	if rating < ratingMin || rating > ratingMax {
		return apperrors.NewValidationError("rating", fmt.Sprintf("must be an integer between %d and %d", ratingMin, ratingMax))
	}
	return nil
}

func (s *reviewService) CreateReview(ctx context.Context, actor Actor, in CreateReviewInput) (*model.Review, error) {
	if in.Text == "" {
		return nil, apperrors.NewValidationError("text", "is required")
	}
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}

	userID := in.UserID
	if userID == uuid.Nil {
		userID = actor.ID
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidReviewUser
		}
		return nil, fmt.Errorf("resolve review user: %w", err)
	}
	if !actor.Owns(userID) {
		return nil, apperrors.ErrForbidden
	}

	place, err := s.places.FindByID(ctx, in.PlaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidReviewPlace
		}
		return nil, fmt.Errorf("resolve review place: %w", err)
	}
	if place.OwnerID == userID {
		return nil, apperrors.ErrOwnPlaceReview
	}

	if _, err := s.reviews.FindByUserAndPlace(ctx, userID, in.PlaceID); err == nil {
		return nil, apperrors.ErrDuplicateReview
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing review: %w", err)
	}

	review := &model.Review{
		ID:      uuid.New(),
		Text:    in.Text,
		Rating:  in.Rating,
		UserID:  userID,
		PlaceID: in.PlaceID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (s *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context) ([]model.Review, error) {
	return s.reviews.List(ctx)
}

// ListReviewsForPlace returns the reviews of an existing place; an unknown
// place id is a 404, not an empty list.
func (s *reviewService) ListReviewsForPlace(ctx context.Context, placeID uuid.UUID) ([]model.Review, error) {
	if _, err := s.places.FindByID(ctx, placeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlaceNotFound
		}
		return nil, err
	}
	reviews, err := s.reviews.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return reviews, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, actor Actor, id uuid.UUID, in UpdateReviewInput) (*model.Review, error) {
	review, err := s.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(review.UserID) {
		return nil, apperrors.ErrForbidden
	}

	if in.Text != nil {
		if *in.Text == "" {
			return nil, apperrors.NewValidationError("text", "is required")
		}
		review.Text = *in.Text
	}
	if in.Rating != nil {
		if err := validateRating(*in.Rating); err != nil {
			return nil, err
		}
		review.Rating = *in.Rating
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, actor Actor, id uuid.UUID) error {
	review, err := s.GetReview(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(review.UserID) {
		return apperrors.ErrForbidden
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrReviewNotFound
		}
		return err
	}
	return nil
}
