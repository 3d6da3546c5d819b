// Package errors provides error handling for abisol.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints (e.g. the minimum Solidity version a feature needs)
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "use a range at or above >=0.8.4")
//
//	// Check errors
//	if errors.Is(err, errors.ErrRangeAmbiguous) {
//	    // narrow the requested range
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for generation failures.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrRangeAmbiguous indicates the requested version range disagrees on a
	// syntax feature that the given ABI actually needs
	ErrRangeAmbiguous = New("version range is ambiguous")

	// ErrVersionFloor indicates the requested version range is too old for a
	// feature the ABI needs
	ErrVersionFloor = New("version range does not support required feature")

	// ErrInvalidRange indicates the version range string could not be parsed
	ErrInvalidRange = New("invalid version range")

	// ErrInvalidABI indicates the ABI input could not be decoded
	ErrInvalidABI = New("invalid ABI")
)

// IsRangeAmbiguous checks if an error is or wraps ErrRangeAmbiguous
func IsRangeAmbiguous(err error) bool {
	return err != nil && Is(err, ErrRangeAmbiguous)
}

// IsVersionFloor checks if an error is or wraps ErrVersionFloor
func IsVersionFloor(err error) bool {
	return err != nil && Is(err, ErrVersionFloor)
}

// NewRangeAmbiguousError creates a range-ambiguity error with a formatted message
func NewRangeAmbiguousError(format string, args ...interface{}) error {
	return Wrap(ErrRangeAmbiguous, Newf(format, args...).Error())
}

// NewVersionFloorError creates a version-floor error naming the minimum
// version range that supports the feature, in both the message and a hint
func NewVersionFloorError(minimum string, format string, args ...interface{}) error {
	err := Wrapf(ErrVersionFloor, "%s (requires %s)", Newf(format, args...).Error(), minimum)
	return WithHintf(err, "requires a Solidity version range within %s", minimum)
}
