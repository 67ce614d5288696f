package salon

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input data")
	ErrNoProductSelected = errors.New("select a product for the order")
)
