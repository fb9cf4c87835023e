// Package errors provides standardized error handling for delrest.
// It defines the error categories the triage run distinguishes between:
// fatal setup errors (configuration, keepfile, plan) and recoverable
// per-file errors, with helpers for consistent creation and wrapping.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Config error kinds
	ConfigNotFound
	ConfigUnreadable
	InvalidConfig
	InvalidFormat
	// Keepfile error kinds
	KeepfileNotFound
	BadKeepfileLine
	// Plan error kinds
	InvalidDestination
	DestinationNotWritable
	// Per-file error kinds
	FileOperationFailed
	FileAccessDenied
)

// ApplicationError is the base error type for all delrest errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// ConfigError represents a malformed or unreadable filter configuration.
// It is fatal: no classification happens after one is raised.
type ConfigError struct {
	ApplicationError
	path string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, path string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the configuration file path associated with the error
func (e *ConfigError) Path() string {
	return e.path
}

// BadLine is a keepfile line that does not hold a valid identifier.
type BadLine struct {
	Number  int // 1-based line number
	Content string
}

// KeepfileError represents a malformed or unreadable keepfile.
// It is fatal: if the provided keepfile has errors, the program exits.
type KeepfileError struct {
	ApplicationError
	path  string
	lines []BadLine
}

// NewKeepfileError creates a new keepfile error
func NewKeepfileError(msg string, path string, kind ErrorKind, err error) *KeepfileError {
	return &KeepfileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// NewKeepfileFormatError creates a keepfile error carrying every invalid line
func NewKeepfileFormatError(path string, lines []BadLine) *KeepfileError {
	return &KeepfileError{
		ApplicationError: ApplicationError{
			msg:  "invalid keepfile",
			kind: BadKeepfileLine,
		},
		path:  path,
		lines: lines,
	}
}

// Error returns the keepfile error message, listing every bad line
func (e *KeepfileError) Error() string {
	if len(e.lines) == 0 {
		if e.path != "" {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return e.ApplicationError.Error()
	}
	msg := fmt.Sprintf("one or more lines in keepfile %q are invalid:", e.path)
	for _, line := range e.lines {
		msg += fmt.Sprintf("\n  line %d: %q", line.Number, line.Content)
	}
	return msg
}

// Lines returns the invalid lines associated with the error
func (e *KeepfileError) Lines() []BadLine {
	return e.lines
}

// Path returns the keepfile path associated with the error
func (e *KeepfileError) Path() string {
	return e.path
}

// PlanError represents an invalid operation setup, such as an unusable
// destination directory. It is fatal and raised before any file is touched.
type PlanError struct {
	ApplicationError
	dest string
}

// NewPlanError creates a new plan setup error
func NewPlanError(msg string, dest string, kind ErrorKind, err error) *PlanError {
	return &PlanError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		dest: dest,
	}
}

// Error returns the plan error message
func (e *PlanError) Error() string {
	if e.dest != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.dest, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.dest)
	}
	return e.ApplicationError.Error()
}

// Destination returns the destination path associated with the error
func (e *PlanError) Destination() string {
	return e.dest
}

// FileError represents a failure acting on a single file. It is recovered
// locally: the executor records it in the run report and continues.
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new per-file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsFatal reports whether the error aborts the whole run before or during
// setup, as opposed to a per-file error the executor recovers from.
func IsFatal(err error) bool {
	var cfgErr *ConfigError
	var keepErr *KeepfileError
	var planErr *PlanError
	return errors.As(err, &cfgErr) || errors.As(err, &keepErr) || errors.As(err, &planErr)
}

// IsConfigError checks if the error is a configuration error
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// IsKeepfileError checks if the error is a keepfile error
func IsKeepfileError(err error) bool {
	var keepErr *KeepfileError
	return errors.As(err, &keepErr)
}

// IsPlanError checks if the error is a plan setup error
func IsPlanError(err error) bool {
	var planErr *PlanError
	return errors.As(err, &planErr)
}

// IsFileError checks if the error is a recoverable per-file error
func IsFileError(err error) bool {
	var fileErr *FileError
	return errors.As(err, &fileErr)
}
