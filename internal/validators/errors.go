package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID          = errors.New("identifier is required")
	ErrEmptyName        = errors.New("name is required")
	ErrNameTooLong      = errors.New("name is too long")
	ErrInvalidNameChars = errors.New("name contains a forbidden character")
	ErrInvalidColor     = errors.New("color must be #rrggbb")
	ErrInvalidSize      = errors.New("size cannot be negative")
	ErrInvalidFileKey   = errors.New("file key must be 32 bytes and nonce 12 bytes")
	ErrInvalidParent    = errors.New("folder cannot be its own parent")
)
