/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a point read misses
	ErrNotFound = errors.New("item not found")

	// ErrIDRequired is returned when get or delete is called without an id
	ErrIDRequired = errors.New("id required")

	// ErrUnsupportedOperation is returned for operations outside the allow-list
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrInvalidQuery is returned for malformed or un-indexed query expressions
	ErrInvalidQuery = errors.New("invalid query")

	// ErrKeySchema is returned when the table key schema has more than one component
	ErrKeySchema = errors.New("unsupported key schema")

	// ErrKeyName is returned when the table hash key is not named "id"
	ErrKeyName = errors.New("unsupported key name")
)

// NotFoundError represents a point read miss for a given id
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Item with id (%s) not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UnsupportedOperationError represents an operation outside the allow-list
type UnsupportedOperationError struct {
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("Unsupported operation: %s", e.Operation)
}

func (e *UnsupportedOperationError) Is(target error) bool {
	return target == ErrUnsupportedOperation
}

// InvalidQueryError represents a malformed or un-indexed query expression
type InvalidQueryError struct {
	Message string
}

func (e *InvalidQueryError) Error() string {
	return e.Message
}

func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery
}

// KeySchemaError represents a table whose key schema cannot be handled
type KeySchemaError struct {
	Table   string
	Message string
}

func (e *KeySchemaError) Error() string {
	return fmt.Sprintf("table %q: %s", e.Table, e.Message)
}

func (e *KeySchemaError) Is(target error) bool {
	return target == ErrKeySchema
}

// KeyNameError represents a table whose hash key is not named "id"
type KeyNameError struct {
	Table     string
	Attribute string
}

func (e *KeyNameError) Error() string {
	return fmt.Sprintf("table %q: hash key must be named \"id\", got %q", e.Table, e.Attribute)
}

func (e *KeyNameError) Is(target error) bool {
	return target == ErrKeyName
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(id string) error {
	return &NotFoundError{ID: id}
}

// NewUnsupportedOperationError creates a new UnsupportedOperationError
func NewUnsupportedOperationError(operation string) error {
	return &UnsupportedOperationError{Operation: operation}
}

// NewInvalidQueryError creates a new InvalidQueryError
func NewInvalidQueryError(message string) error {
	return &InvalidQueryError{Message: message}
}

// NewKeySchemaError creates a new KeySchemaError
func NewKeySchemaError(table, message string) error {
	return &KeySchemaError{Table: table, Message: message}
}

// NewKeyNameError creates a new KeyNameError
func NewKeyNameError(table, attribute string) error {
	return &KeyNameError{Table: table, Attribute: attribute}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsIDRequired checks if an error is an id required error
func IsIDRequired(err error) bool {
	return errors.Is(err, ErrIDRequired)
}

// IsUnsupportedOperation checks if an error is an unsupported operation error
func IsUnsupportedOperation(err error) bool {
	return errors.Is(err, ErrUnsupportedOperation)
}

// IsInvalidQuery checks if an error is an invalid query error
func IsInvalidQuery(err error) bool {
	return errors.Is(err, ErrInvalidQuery)
}
