package voxel

import "github.com/pkg/errors"

// ArgumentError indicates a caller passed a malformed argument: a buffer
// of the wrong length, a non-positive dimension, or a mismatched slice
// length.
type ArgumentError struct {
	cause error
}

func (e *ArgumentError) Error() string { return e.cause.Error() }
func (e *ArgumentError) Unwrap() error { return e.cause }

func newArgumentError(format string, args ...interface{}) error {
	return &ArgumentError{cause: errors.Errorf(format, args...)}
}

// OutOfRangeError indicates an index or world-space position fell
// outside a grid's bounds when clamping was disabled.
type OutOfRangeError struct {
	cause error
}

func (e *OutOfRangeError) Error() string { return e.cause.Error() }
func (e *OutOfRangeError) Unwrap() error { return e.cause }

func newOutOfRangeError(format string, args ...interface{}) error {
	return &OutOfRangeError{cause: errors.Errorf(format, args...)}
}

// FormatError indicates malformed interop data. The fileformats OBJ
// reader does not return it; it reports its own ParseError.
type FormatError struct {
	cause error
	Line  string
}

func (e *FormatError) Error() string { return e.cause.Error() }
func (e *FormatError) Unwrap() error { return e.cause }

func newFormatError(line string, format string, args ...interface{}) error {
	return &FormatError{cause: errors.Errorf(format, args...), Line: line}
}

// NotSupportedError indicates a construct this library intentionally
// does not handle. The fileformats OBJ reader reports non-triangular
// faces with its own UnsupportedError instead.
type NotSupportedError struct {
	cause error
}

func (e *NotSupportedError) Error() string { return e.cause.Error() }
func (e *NotSupportedError) Unwrap() error { return e.cause }

func newNotSupportedError(format string, args ...interface{}) error {
	return &NotSupportedError{cause: errors.Errorf(format, args...)}
}

// InvariantError indicates an internal precondition was violated, e.g.
// the mesher was invoked on an empty voxel set, or a flood-fill queue
// grew past its hard limit.
type InvariantError struct {
	cause error
}

func (e *InvariantError) Error() string { return e.cause.Error() }
func (e *InvariantError) Unwrap() error { return e.cause }

func newInvariantError(format string, args ...interface{}) error {
	return &InvariantError{cause: errors.Errorf(format, args...)}
}
