package domain

import "errors"

var (
	ErrInvalidUserID   = errors.New("invalid user id")
	ErrProfileNotFound = errors.New("profile not found")
	ErrEntryNotFound   = errors.New("presence entry not found")
)
