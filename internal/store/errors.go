package store

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that the store query succeeded but returned no
// matching application.
var ErrNotFound = errors.New("app not found in store")

// StatusError is a non-2xx HTTP response from a store.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("store returned status %d for %s", e.StatusCode, e.URL)
}

// FieldError reports an expected field missing from a structured store
// response. It points at a configuration or contract problem rather than
// a routine lookup miss.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("store response missing field %q", e.Field)
}
