package store

import (
	"errors"
	"fmt"
)

const (
	msgFetchFailed  = "Failed to fetch notes"
	msgCreateFailed = "Failed to create note"
	msgUpdateFailed = "Failed to update note"
	msgDeleteFailed = "Failed to delete note"
)

// PanicError is returned when the gateway panicked during an operation.
// Value is the recovered value, untouched.
type PanicError struct {
	Op    string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: gateway panic: %v", e.Op, e.Value)
}

// Unwrap exposes the recovered value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// message normalizes err into the text kept in the store's error field.
func message(err error, fallback string) string {
	var pe *PanicError
	if errors.As(err, &pe) {
		if inner, ok := pe.Value.(error); ok && inner.Error() != "" {
			return inner.Error()
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// guard runs fn, converting a panic into a *PanicError.
func guard[T any](op string, fn func() (T, error)) (res T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Op: op, Value: r}
		}
	}()
	return fn()
}
