package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrListingClosed = errors.New("listing closed")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidInput  = errors.New("invalid input")

	// Validation failures that handlers report inline on the form.
	ErrBidTooLow         = fmt.Errorf("%w: bid must be larger than the current bid", ErrInvalidInput)
	ErrDuplicateUsername = fmt.Errorf("%w: username already taken", ErrInvalidInput)
)
