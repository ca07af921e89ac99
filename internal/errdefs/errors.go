// Package errdefs defines the error taxonomy shared by all trestle
// components.
//
// Three categories exist:
//   - InvalidArgumentError: the caller violated a contract that is checkable
//     without a remote call (conflicting parameters, unknown enum value).
//   - ResourceError: the request was well formed but cannot currently succeed
//     against the remote system (capacity exhausted, ambiguous name match,
//     operating on a resource that was never submitted).
//   - ServiceError: the remote system failed to converge to an expected state
//     within a bounded wait, or reported a domain failure of its own.
package errdefs

import (
	"errors"
	"fmt"
)

// InvalidArgumentError indicates a caller-side contract violation. It is
// always raised before any network I/O.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

// ResourceError indicates a valid request that cannot succeed against the
// current remote state. It may wrap the underlying cause.
type ResourceError struct {
	Message string
	Err     error
}

func (e *ResourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// ServiceError indicates the remote platform malfunctioned or a bounded wait
// expired before the expected state was observed.
type ServiceError struct {
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// InvalidArgument returns a new InvalidArgumentError.
func InvalidArgument(format string, args ...any) error {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

// Resource returns a new ResourceError wrapping err (err may be nil).
func Resource(err error, format string, args ...any) error {
	return &ResourceError{Message: fmt.Sprintf(format, args...), Err: err}
}

// Service returns a new ServiceError wrapping err (err may be nil).
func Service(err error, format string, args ...any) error {
	return &ServiceError{Message: fmt.Sprintf(format, args...), Err: err}
}

// IsInvalidArgument reports whether err is an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var e *InvalidArgumentError
	return errors.As(err, &e)
}

// IsResource reports whether err is a ResourceError.
func IsResource(err error) bool {
	var e *ResourceError
	return errors.As(err, &e)
}

// IsService reports whether err is a ServiceError.
func IsService(err error) bool {
	var e *ServiceError
	return errors.As(err, &e)
}
