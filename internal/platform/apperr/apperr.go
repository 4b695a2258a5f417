package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError indicates that an identifier does not resolve to a visible
// record. It is always fatal for the operation that raised it.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NotFound creates a NotFoundError for the given resource and identifier.
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// IntegrationError indicates that a required upstream dependency (the record
// store or one of its collections) is unreachable or failed. The failing
// source is carried so the boundary can log it.
type IntegrationError struct {
	Source string
	Err    error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("integration failure from %s: %v", e.Source, e.Err)
}

func (e *IntegrationError) Unwrap() error { return e.Err }

// Integration wraps err as an IntegrationError attributed to source.
func Integration(source string, err error) error {
	return &IntegrationError{Source: source, Err: err}
}

// InvalidArgumentError indicates a malformed or missing caller-supplied value.
// It is surfaced immediately and never retried.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string { return e.Msg }

// Invalid creates an InvalidArgumentError with a formatted message.
func Invalid(format string, args ...interface{}) error {
	return &InvalidArgumentError{Msg: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsIntegration(err error) bool {
	var ie *IntegrationError
	return errors.As(err, &ie)
}

func IsInvalid(err error) bool {
	var ia *InvalidArgumentError
	return errors.As(err, &ia)
}
