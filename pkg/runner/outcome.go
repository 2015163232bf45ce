package runner

import (
	"context"
	"reflect"

	srvErrors "github.com/kubev2v/taskrunner/pkg/errors"
)

type outcomeKind int

const (
	kindAggregate outcomeKind = iota
	kindElementwise
	kindInferred
)

// Outcome is what a BatchWorker produced for one sub-batch.
type Outcome[R any] struct {
	kind   outcomeKind
	value  R
	values []R
}

// Elementwise gives values[i] to the i-th item of the sub-batch.
// The length must match the sub-batch or every item is rejected
// with *errors.OutcomeMismatchError.
func Elementwise[R any](values []R) Outcome[R] {
	return Outcome[R]{kind: kindElementwise, values: values}
}

// Aggregate gives the same value to every item of the sub-batch.
func Aggregate[R any](value R) Outcome[R] {
	return Outcome[R]{kind: kindAggregate, value: value}
}

// Infer decides from the shape of result: a slice or array with exactly one
// element per item is distributed elementwise, anything else is broadcast.
// Byte slices are payloads, not sequences, and are always broadcast.
func Infer(result any) Outcome[any] {
	return Outcome[any]{kind: kindInferred, value: result}
}

// MapBatch adapts a function returning one result per item into a BatchWorker.
func MapBatch[I, R any](fn func(ctx context.Context, items []I) ([]R, error)) BatchWorker[I, R] {
	return func(ctx context.Context, items []I) (Outcome[R], error) {
		values, err := fn(ctx, items)
		if err != nil {
			return Outcome[R]{}, err
		}
		return Elementwise(values), nil
	}
}

func (o Outcome[R]) distribute(n int) ([]R, error) {
	switch o.kind {
	case kindElementwise:
		if len(o.values) != n {
			return nil, srvErrors.NewOutcomeMismatchError(n, len(o.values))
		}
		return o.values, nil
	case kindInferred:
		if values, ok := elementsOf[R](o.value, n); ok {
			return values, nil
		}
	}

	out := make([]R, n)
	for i := range out {
		out[i] = o.value
	}
	return out, nil
}

func elementsOf[R any](v any, n int) ([]R, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false
	}
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return nil, false
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	if rv.Len() != n {
		return nil, false
	}

	out := make([]R, n)
	for i := range n {
		e := rv.Index(i).Interface()
		if e == nil {
			continue
		}
		r, ok := e.(R)
		if !ok {
			return nil, false
		}
		out[i] = r
	}
	return out, true
}
