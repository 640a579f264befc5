// Package apperr defines the error taxonomy shared by scanners and mutators.
//
// Every error returned by the engine wraps exactly one of the sentinels below so
// callers can branch with errors.Is. The wrapped message always names the
// specific selector, variable, token path, class or file involved.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a selector, variable, token path or class identifier
	// that does not exist in the target file.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous reports an identifier matching more than one candidate when
	// no disambiguating hint was supplied.
	ErrAmbiguous = errors.New("ambiguous")
	// ErrInvalidPath reports an empty, absolute or root-escaping file path.
	ErrInvalidPath = errors.New("invalid path")
	// ErrUnparsable reports a shadow or class value without the minimal expected shape.
	ErrUnparsable = errors.New("unparsable")
	// ErrInvalidRequest reports a mutation request missing a required field.
	ErrInvalidRequest = errors.New("invalid request")
)

// NotFound wraps ErrNotFound with a description of the missing item.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// InvalidPath wraps ErrInvalidPath with the offending path.
func InvalidPath(path, reason string) error {
	return fmt.Errorf("%w: %q %s", ErrInvalidPath, path, reason)
}

// Unparsable wraps ErrUnparsable with the rejected value.
func Unparsable(what, value string) error {
	return fmt.Errorf("%w: %s %q", ErrUnparsable, what, value)
}

// InvalidRequest wraps ErrInvalidRequest with the validation failure.
func InvalidRequest(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
}

// AmbiguousError is returned when a target matches Matches candidates.
type AmbiguousError struct {
	Target  string
	Where   string
	Matches int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous: %q has %d matches in %s, narrow your context", e.Target, e.Matches, e.Where)
}

// Is makes errors.Is(err, ErrAmbiguous) hold for *AmbiguousError.
func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguous
}

// Ambiguous builds an *AmbiguousError.
func Ambiguous(target, where string, matches int) error {
	return &AmbiguousError{Target: target, Where: where, Matches: matches}
}
