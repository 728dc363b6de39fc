package booking

import "errors"

var (
	ErrValidation   = errors.New("invalid booking request")
	ErrNotFound     = errors.New("booking not found")
	ErrInvalidState = errors.New("booking is not in a state that allows this action")
	ErrCapacity     = errors.New("party does not fit the room capacity")
)
