package domain

import "errors"

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidHex       = errors.New("invalid_hex")
	ErrInvalidSortOrder = errors.New("invalid_sort_order")
	ErrDuplicateName    = errors.New("duplicate_name")
	ErrNotFound         = errors.New("not_found")
)
