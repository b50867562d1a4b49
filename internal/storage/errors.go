package storage

import "errors"

var (
	ErrNotFound    = errors.New("result not found")
	ErrInvalidData = errors.New("invalid data")
	ErrStorageInit = errors.New("storage initialization failed")
	ErrClosed      = errors.New("storage closed")
)
