package models

import "errors"

// Domain errors for the like subsystem. These are expected outcomes, not
// faults; handlers map them to HTTP statuses with errors.Is.
var (
	ErrAlreadyLiked    = errors.New("listing already liked by this user")
	ErrNotLiked        = errors.New("listing is not liked by this user")
	ErrLikeNotFound    = errors.New("like not found")
	ErrNotLikeOwner    = errors.New("like belongs to another user")
	ErrListingNotFound = errors.New("listing not found")
)
