package services

import (
	"errors"
	"fmt"

	"github.com/eduplatform/school-service/internal/validator"
)

// ErrInvalidCredentials is returned by Authenticate when no user
// matches the email/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ConflictError signals a schedule double-booking. Resource names the
// colliding side ("teacher 2" or "class 9A").
type ConflictError struct {
	Resource string
	TimeSlot string
	Day      string
}

func NewConflictError(resource, timeSlot, day string) *ConflictError {
	return &ConflictError{Resource: resource, TimeSlot: timeSlot, Day: day}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s already has a lesson at %s on %s", e.Resource, e.TimeSlot, e.Day)
}

func IsConflictError(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string, value interface{}) error {
	return validator.ValidationErrors{{Field: field, Message: message, Value: value}}
}

func IsValidationError(err error) bool {
	var ve validator.ValidationErrors
	return errors.As(err, &ve)
}
