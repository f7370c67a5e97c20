package gateway

import (
	"errors"
	"fmt"
)

// StatusError reports a non-success HTTP response.
// Its message is the user-facing text of the failed operation.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

// Detail includes the operation and status code, for logs.
func (e *StatusError) Detail() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Message)
}

// errAttrs returns the log attributes for a failed call. Status failures
// carry the status code and detail next to the error.
func errAttrs(err error) []any {
	attrs := []any{"error", err}
	var se *StatusError
	if errors.As(err, &se) {
		attrs = append(attrs, "status", se.StatusCode, "detail", se.Detail())
	}
	return attrs
}
