package repository

import "errors"

// Sentinel kinds for tariff store errors.
var (
	ErrNotFound  = errors.New("tariff not found")
	ErrInvalidID = errors.New("invalid tariff id")
)
