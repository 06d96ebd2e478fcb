package props

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes store failures.
type ErrorCode string

const (
	// CodeFrozen indicates a mutator was called on a frozen store.
	CodeFrozen ErrorCode = "FROZEN_STORE"

	// CodeInvalidImportSource indicates Import was given a value that is
	// neither a record (struct) nor a mapping.
	CodeInvalidImportSource ErrorCode = "INVALID_IMPORT_SOURCE"

	// CodeCyclicDelegation indicates SetParent would close a delegation
	// cycle, which would make chain resolution unbounded.
	CodeCyclicDelegation ErrorCode = "CYCLIC_DELEGATION"

	// DefaultCode is used when a failure site supplies no code.
	DefaultCode ErrorCode = "PROPERTY_STORE"
)

// StoreError represents a failed store operation.
//
// Store failures are recoverable: the caller may keep using the instance
// for reads (and, for import failures, for further writes). The error
// carries a stable code for programmatic handling and a human-readable
// message naming the affected store.
type StoreError struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewStoreError creates a StoreError, defaulting the code when empty.
func NewStoreError(code ErrorCode, message string) *StoreError {
	if code == "" {
		code = DefaultCode
	}
	return &StoreError{Code: code, Message: message}
}

// IsFrozenError returns true if the error is a frozen-store failure.
// Uses errors.As to handle wrapped errors.
func IsFrozenError(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == CodeFrozen
	}
	return false
}

// IsInvalidImportSourceError returns true if the error is an import-shape
// failure. Uses errors.As to handle wrapped errors.
func IsInvalidImportSourceError(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == CodeInvalidImportSource
	}
	return false
}

// IsCyclicDelegationError returns true if the error is a delegation-cycle
// failure. Uses errors.As to handle wrapped errors.
func IsCyclicDelegationError(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == CodeCyclicDelegation
	}
	return false
}
