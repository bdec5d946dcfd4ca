// errors.go: structured error handling for arion slot arrays
//
// This file provides structured error types using the go-errors library,
// confined to the construction and opt-in bounded-probe boundary. The
// per-slot protocol itself (Insert, Contains, Lookup, Delete) never
// returns an error: that data path is a tight loop of atomics, and
// surfacing recoverable errors there would defeat the design.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package arion

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for arion operations.
const (
	ErrCodeInvalidCapacity errors.ErrorCode = "ARION_INVALID_CAPACITY"
	ErrCodeReservedKey     errors.ErrorCode = "ARION_RESERVED_KEY"
	ErrCodeTableFull       errors.ErrorCode = "ARION_TABLE_FULL"
)

const (
	msgInvalidCapacity = "capacity must be a power of two greater than zero"
	msgReservedKey     = "key equals the EMPTY sentinel and cannot be stored"
	msgTableFull       = "bounded probe exhausted capacity distinct slots without finding an empty or matching one"
)

// NewErrInvalidCapacity creates an error for a capacity that is zero or
// not a power of two.
func NewErrInvalidCapacity(capacity uint32) error {
	return errors.NewWithContext(ErrCodeInvalidCapacity, msgInvalidCapacity, map[string]interface{}{
		"provided_capacity": capacity,
	})
}

// NewErrReservedKey creates an error for an attempt to insert the EMPTY
// sentinel as a live key.
func NewErrReservedKey(operation string) error {
	return errors.NewWithField(ErrCodeReservedKey, msgReservedKey, "operation", operation)
}

// NewErrTableFull creates an error for a TryInsert whose bounded probe
// exhausted the array without finding a usable slot.
func NewErrTableFull(capacity uint32, key uint32) error {
	return errors.NewWithContext(ErrCodeTableFull, msgTableFull, map[string]interface{}{
		"capacity": capacity,
		"key":      key,
	}).AsRetryable()
}

// IsCapacityError reports whether err is an invalid-capacity error.
func IsCapacityError(err error) bool {
	return errors.HasCode(err, ErrCodeInvalidCapacity)
}

// IsReservedKey reports whether err is a reserved-key error.
func IsReservedKey(err error) bool {
	return errors.HasCode(err, ErrCodeReservedKey)
}

// IsTableFull reports whether err is a table-full error.
func IsTableFull(err error) bool {
	return errors.HasCode(err, ErrCodeTableFull)
}

// GetErrorCode extracts the structured error code from err, or the
// empty string if err is nil or carries none.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}
