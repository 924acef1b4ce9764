package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidID         = errors.New("invalid identifier")
	ErrNotInitialized    = errors.New("store not initialized")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrInvalidPattern    = errors.New("invalid search pattern")
)
