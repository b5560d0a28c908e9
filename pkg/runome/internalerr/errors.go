package internalerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrNotImplemented = errors.New("not yet implemented")

	// ErrInternal marks a broken lattice or path search invariant.
	// It is never caused by caller input.
	ErrInternal = errors.New("internal consistency violation")
)

// ConfigError reports a constructor option that was rejected.
// It matches ErrInvalidConfig (and Err, when set) with errors.Is.
type ConfigError struct {
	Option string
	Value  any
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("invalid configuration: %s=%q", e.Option, fmt.Sprint(e.Value))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidConfig}
	}
	return []error{ErrInvalidConfig, e.Err}
}

// Internalf builds an ErrInternal error with context.
func Internalf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, args...))
}
