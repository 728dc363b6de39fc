package catalog

import "errors"

var (
	ErrValidation = errors.New("invalid catalog request")
	ErrNotFound   = errors.New("not found")
)
