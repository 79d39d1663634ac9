package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409

	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrEmptyCart       = fmt.Errorf("cart is empty: %w", ErrConflict)
	ErrUnknownField    = fmt.Errorf("unknown profile field: %w", ErrValidation)
)
