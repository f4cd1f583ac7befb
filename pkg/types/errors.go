package types

import (
	"errors"
	"fmt"
)

// Address errors. The per-operation errors wrap ErrUnsupportedAddress so a
// caller can test for the whole class with errors.Is.
var (
	ErrUnsupportedAddress = errors.New("unsupported address")
	ErrInsertNotSupported = fmt.Errorf("insertion not supported: %w", ErrUnsupportedAddress)
	ErrUpdateNotSupported = fmt.Errorf("update not supported: %w", ErrUnsupportedAddress)
	ErrDeleteNotSupported = fmt.Errorf("deletion not supported: %w", ErrUnsupportedAddress)
	ErrUnknownAddress     = fmt.Errorf("unknown address: %w", ErrUnsupportedAddress)
)

// Validation errors, checked in this order; the first violation wins.
var (
	ErrInvalidTool          = errors.New("invalid tool")
	ErrMissingName          = fmt.Errorf("missing name: %w", ErrInvalidTool)
	ErrInvalidPrice         = fmt.Errorf("invalid price: %w", ErrInvalidTool)
	ErrInvalidQuantity      = fmt.Errorf("invalid quantity: %w", ErrInvalidTool)
	ErrMissingSupplierName  = fmt.Errorf("missing supplier name: %w", ErrInvalidTool)
	ErrMissingSupplierPhone = fmt.Errorf("missing supplier phone: %w", ErrInvalidTool)
)

// Storage errors.
var (
	ErrNoResult        = errors.New("no result")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrNotFound        = errors.New("tool not found")
	ErrDetached        = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrSchemaTooNew    = errors.New("database schema is newer than this build")
)
