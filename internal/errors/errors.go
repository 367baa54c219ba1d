package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrAmenityNotFound is returned when an amenity id does not resolve.
	ErrAmenityNotFound = errors.New("amenity not found")
	// ErrPlaceNotFound is returned when a place id does not resolve.
	ErrPlaceNotFound = errors.New("place not found")
	// ErrReviewNotFound is returned when a review id does not resolve.
	ErrReviewNotFound = errors.New("review not found")
	// ErrEmailTaken is returned when registering with an email that is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrAmenityNameTaken is returned when creating or renaming an amenity to a name already in use.
	ErrAmenityNameTaken = errors.New("amenity name already in use")
	// ErrInvalidOwner is returned when owner_id does not reference an existing user.
	ErrInvalidOwner = errors.New("owner_id must reference an existing user")
	// ErrInvalidAmenityRef is returned when an amenity id in a place payload does not resolve.
	ErrInvalidAmenityRef = errors.New("amenity_ids must reference existing amenities")
	// ErrInvalidReviewUser is returned when a review's user_id does not resolve.
	ErrInvalidReviewUser = errors.New("user_id must reference an existing user")
	// ErrInvalidReviewPlace is returned when a review's place_id does not resolve.
	ErrInvalidReviewPlace = errors.New("place_id must reference an existing place")
	// ErrOwnPlaceReview is returned when a user tries to review their own place.
	ErrOwnPlaceReview = errors.New("cannot review your own place")
	// ErrDuplicateReview is returned when a user already reviewed the place.
	ErrDuplicateReview = errors.New("you have already reviewed this place")
	// ErrForbidden is returned when the actor is authenticated but not permitted.
	ErrForbidden = errors.New("not allowed to perform this action")
)

// ValidationError reports a bad field value detected by the service layer.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ErrorResponse is the wire shape for every error body.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// HTTPError carries a status code alongside the message.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// ToErrorResponse converts an HTTPError to its wire shape.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message, Status: e.StatusCode}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return NewHTTPError(http.StatusBadRequest, verr.Error())
	}

	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrAmenityNotFound),
		errors.Is(err, ErrPlaceNotFound),
		errors.Is(err, ErrReviewNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidOwner),
		errors.Is(err, ErrInvalidAmenityRef),
		errors.Is(err, ErrInvalidReviewUser),
		errors.Is(err, ErrInvalidReviewPlace),
		errors.Is(err, ErrOwnPlaceReview):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrAmenityNameTaken),
		errors.Is(err, ErrDuplicateReview):
		return NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
