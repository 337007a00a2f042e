package dto

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned when a type name is not registered.
	ErrUnknownType = errors.New("unknown dto type")
	// ErrMalformedInput is returned when a record or list was expected.
	ErrMalformedInput = errors.New("malformed input")
	// ErrInvalidDefinition is returned when a type's metadata is unusable.
	ErrInvalidDefinition = errors.New("invalid dto definition")
	// ErrDuplicateType is returned when a name is registered twice.
	ErrDuplicateType = errors.New("dto type already registered")
)

// FieldError reports a value that the declared attribute cannot hold.
type FieldError struct {
	// Type is the DTO type name.
	Type string
	// Path is the dotted path of the attribute from the inflated root.
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %q: %v", e.Type, e.Path, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
