package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid record id")
)
