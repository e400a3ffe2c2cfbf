package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound           = errors.New("record not found")
	ErrAlreadyExists      = errors.New("record already exists")
	ErrDuplicateApplicant = errors.New("resource already applied to opportunity")
)
