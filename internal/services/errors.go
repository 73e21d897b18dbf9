package services

import "errors"

// Validation errors: bad input shape or range, caught before any write.
var (
	ErrEmptyName       = errors.New("product name is required")
	ErrInvalidUnit     = errors.New("invalid unit of measure")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Domain errors: business-rule violations. Anything else coming out of a
// service is a store failure wrapped with context.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrBatchNotFound     = errors.New("batch not found")
	ErrInsufficientStock = errors.New("insufficient stock in batch")
	ErrProductHasStock   = errors.New("product has active inventory")
	ErrDuplicateProduct  = errors.New("product name already in use")
)
