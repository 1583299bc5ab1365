// Package input provides input adapters that turn external data into
// message requests.
package input

import (
	"context"

	"github.com/jmylchreest/toastui/internal/model"
)

// Adapter reads message requests from a source.
type Adapter interface {
	// Name returns the adapter identifier (e.g., "stdin").
	Name() string

	// Import reads all messages from the source, in order.
	Import(ctx context.Context) ([]*model.Message, error)
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
