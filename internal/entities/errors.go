package entities

import "errors"

// Error kinds shared by the storage layer and the inventory workflows.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrNotFound     = errors.New("record not found")
	ErrFileIO       = errors.New("file i/o error")
)
