package repositories

import "errors"

var (
	// ErrNotFound is returned when no entity exists under the given id.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an id is already taken in its
	// collection.
	ErrDuplicate = errors.New("entity id already exists")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
