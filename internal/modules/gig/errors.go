package gig

import "errors"

var (
	ErrNotFound   = errors.New("gig not found")
	ErrValidation = errors.New("validation error")
)
