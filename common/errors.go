package common

import (
	"errors"
	"fmt"
)

// Process exit codes. 0 and 1 are the ordinary program codes; the 10-19
// band is reserved for failures reported by this tool's own operations,
// split per domain so scripts can react to each class.
const (
	ExitSuccess      = 0
	ExitProgramError = 1

	// ExitVPNError covers VPN operations that the external tooling rejected.
	ExitVPNError = 11
	// ExitDriveError covers network drive operations that failed.
	ExitDriveError = 12
	// ExitDriveInUse is the unmount-refused-because-in-use case, separated
	// from ExitDriveError so callers can retry with --force.
	ExitDriveInUse = 13
)

// Sentinel errors for upv-cli operations.
// These can be checked with errors.Is() for proper error handling.
var (
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrDriveNotFound = errors.New("drive does not exist")
	ErrDriveInUse    = errors.New("drive is in use")
)

// CodedError is an operation failure carrying the exit-code class it should
// map to. Inner layers only construct it; main performs the mapping.
type CodedError struct {
	Message string
	Code    int
	Err     error
}

// NewCodedError builds a CodedError with a formatted message.
func NewCodedError(code int, format string, args ...interface{}) *CodedError {
	return &CodedError{
		Message: fmt.Sprintf(format, args...),
		Code:    code,
	}
}

// CodedFrom wraps an existing error with an exit-code class.
func CodedFrom(code int, err error) *CodedError {
	return &CodedError{
		Message: err.Error(),
		Code:    code,
		Err:     err,
	}
}

func (e *CodedError) Error() string {
	return e.Message
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// ExitCodeFor returns the process exit code for err.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ExitProgramError
}

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
