package errors

import (
	"errors"
	"fmt"
)

// ValidationError is returned when a constructor argument or a configuration
// value is invalid. It is raised before any work is accepted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func NewInvalidConcurrencyError(v int) *ValidationError {
	return NewValidationError("concurrency", fmt.Sprintf("must be an integer >= 1, got %d", v))
}

func NewInvalidBatchSizeError(v int) *ValidationError {
	return NewValidationError("batch_size", fmt.Sprintf("must be an integer >= 1, got %d", v))
}

func NewNilWorkerError() *ValidationError {
	return NewValidationError("worker", "must not be nil")
}

func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// WorkerPanicError wraps a panic raised by a worker function. It rejects the
// item (or sub-batch) the worker was called for.
type WorkerPanicError struct {
	Value any
}

func (e *WorkerPanicError) Error() string {
	return fmt.Sprintf("worker panicked: %v", e.Value)
}

func NewWorkerPanicError(v any) *WorkerPanicError {
	return &WorkerPanicError{Value: v}
}

func IsWorkerPanicError(err error) bool {
	var e *WorkerPanicError
	return errors.As(err, &e)
}

// OutcomeMismatchError is returned when a batch worker declares an elementwise
// outcome whose length does not match the sub-batch it was called with.
type OutcomeMismatchError struct {
	Expected int
	Got      int
}

func (e *OutcomeMismatchError) Error() string {
	return fmt.Sprintf("elementwise outcome has %d values for a batch of %d items", e.Got, e.Expected)
}

func NewOutcomeMismatchError(expected, got int) *OutcomeMismatchError {
	return &OutcomeMismatchError{Expected: expected, Got: got}
}

func IsOutcomeMismatchError(err error) bool {
	var e *OutcomeMismatchError
	return errors.As(err, &e)
}

// ClosedError is returned when work is submitted to a closed runner.
type ClosedError struct {
	Name string
}

func (e *ClosedError) Error() string {
	if e.Name == "" {
		return "runner is closed"
	}
	return fmt.Sprintf("runner %q is closed", e.Name)
}

func NewClosedError(name string) *ClosedError {
	return &ClosedError{Name: name}
}

func IsClosedError(err error) bool {
	var e *ClosedError
	return errors.As(err, &e)
}

// DefectError reports a panic that escaped a group handler. The scheduler's
// own invariants no longer hold once it is raised, so it is never retried.
type DefectError struct {
	Value any
	Stack []byte
}

func (e *DefectError) Error() string {
	return fmt.Sprintf("unrecoverable scheduler defect: %v", e.Value)
}

func NewDefectError(v any, stack []byte) *DefectError {
	return &DefectError{Value: v, Stack: stack}
}

func IsDefectError(err error) bool {
	var e *DefectError
	return errors.As(err, &e)
}

// TargetError is an error status replied by the dispatch target.
type TargetError struct {
	StatusCode int
	Status     string
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("target replied %s", e.Status)
}

func NewTargetError(code int, status string) *TargetError {
	return &TargetError{StatusCode: code, Status: status}
}

func IsTargetError(err error) bool {
	var e *TargetError
	return errors.As(err, &e)
}

// ResourceNotFoundError is returned by the store when a requested record is missing.
type ResourceNotFoundError struct {
	Kind string
	ID   string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func NewDispatchNotFoundError(id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Kind: "dispatch", ID: id}
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}
