package briefing

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTopics is returned when the selection has no topics.
	ErrNoTopics = errors.New("select at least one topic")
	// ErrNoRegions is returned when the selection has no regions.
	ErrNoRegions = errors.New("select at least one region")
	// ErrUnknownTopic is returned for a topic outside the catalog.
	ErrUnknownTopic = errors.New("unknown topic")
	// ErrEmptyGeneration is returned when the service produced no usable text.
	ErrEmptyGeneration = errors.New("no text output from model")
)

// ValidationError reports a selection the user must fix before a request
// is sent. Err is one of the sentinel errors above.
type ValidationError struct {
	Err    error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
