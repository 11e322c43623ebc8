package forecast

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for absent or malformed configuration
	// values and for assembled URLs that do not parse.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState is returned by Build when a required field was never set.
	ErrInvalidState = errors.New("invalid state")
)

// BuildError describes why a configuration call or Build failed.
// It matches its Kind and its wrapped cause with errors.Is.
type BuildError struct {
	Kind    error
	Field   string
	Message string
	Err     error
}

func (e *BuildError) Error() string {
	msg := fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BuildError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
