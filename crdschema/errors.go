package crdschema

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the extractor.
var (
	ErrInvalidYAML     = errors.New("invalid yaml")
	ErrMissingField    = errors.New("missing field")
	ErrInvalidIdentity = errors.New("invalid identity")
	ErrInvalidSchema   = errors.New("invalid schema")
	ErrInvalidOption   = errors.New("invalid option")
	ErrReadInput       = errors.New("read input")
	ErrWriteOutput     = errors.New("write output")
)

// FieldError reports a required CRD field that is absent or has the wrong
// type. It matches [ErrMissingField] with [errors.Is].
type FieldError struct {
	// Path is the dotted path of the field, e.g. "spec.names.kind".
	Path string
	// Reason is empty when the field is absent.
	Reason string
}

func (e *FieldError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v: %s", ErrMissingField, e.Path)
	}

	return fmt.Sprintf("%v: %s: %s", ErrMissingField, e.Path, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingField
}

// IdentityError reports a filename component that is not a DNS-1123 label.
// It matches [ErrInvalidIdentity] with [errors.Is].
type IdentityError struct {
	// Component is one of [ComponentKind], [ComponentGroup], or
	// [ComponentVersion].
	Component string
	// Value is the offending value, after case folding for kind and group.
	Value string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("%v: %s %q is not a DNS-1123 label", ErrInvalidIdentity, e.Component, e.Value)
}

func (e *IdentityError) Unwrap() error {
	return ErrInvalidIdentity
}

// SchemaError reports a schema value that has no JSON representation, such
// as the YAML floats .inf and .nan. It matches [ErrInvalidSchema] with
// [errors.Is].
type SchemaError struct {
	// Path is the dotted path of the value inside the CRD.
	Path string
	// Reason describes the problem.
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidSchema, e.Path, e.Reason)
}

func (e *SchemaError) Unwrap() error {
	return ErrInvalidSchema
}
