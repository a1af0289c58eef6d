package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every one of them aborts the whole batch.
var (
	ErrMalformedIdentifier = errors.New("malformed identifier")
	ErrUnknownFormType     = errors.New("unknown form type")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrMissingColumns      = errors.New("missing required columns")
	ErrInvalidValue        = errors.New("invalid value")
	ErrNoItems             = errors.New("no items found")
	ErrUnsupportedFormat   = errors.New("unsupported file format")
	ErrFileTooLarge        = errors.New("file too large")
)

// IdentifierError reports an identifier that does not match the grammar.
type IdentifierError struct {
	Identifier string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("malformed identifier %q: expected name_WIDTHxLENGTHxPROJECTION_FORMTYPE", e.Identifier)
}

func (e *IdentifierError) Unwrap() error { return ErrMalformedIdentifier }

// FormTypeError reports a record whose form type has no configuration.
type FormTypeError struct {
	FormType int
	Item     string
}

func (e *FormTypeError) Error() string {
	return fmt.Sprintf("unknown form type %d for item %q", e.FormType, e.Item)
}

func (e *FormTypeError) Unwrap() error { return ErrUnknownFormType }

// QuantityError reports a non-positive or non-numeric quantity.
type QuantityError struct {
	Item  string
	Value string
}

func (e *QuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %q for item %q: must be a positive integer", e.Value, e.Item)
}

func (e *QuantityError) Unwrap() error { return ErrInvalidQuantity }

// ColumnsError lists required tabular columns absent from the header.
type ColumnsError struct {
	Missing []string
}

func (e *ColumnsError) Error() string {
	return fmt.Sprintf("required columns not found in header: %s", strings.Join(e.Missing, ", "))
}

func (e *ColumnsError) Unwrap() error { return ErrMissingColumns }

// ValueError reports a tabular cell that cannot be read as a number.
type ValueError struct {
	Row    string
	Column string
	Value  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: invalid %s %q", e.Row, e.Column, e.Value)
}

func (e *ValueError) Unwrap() error { return ErrInvalidValue }
