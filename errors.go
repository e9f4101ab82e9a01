package datalayer

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/datalayer/logger"
)

var (
	// ErrRecordNotFound record not found error
	ErrRecordNotFound = logger.ErrRecordNotFound
	// ErrValidation required fields are missing
	ErrValidation = errors.New("required fields missing")
	// ErrPrimaryKeyRequired primary key required
	ErrPrimaryKeyRequired = errors.New("primary key required")
	// ErrMissingStatement nothing to execute, call Select or Find first
	ErrMissingStatement = errors.New("missing statement")
	// ErrMissingWhereClause missing where clause
	ErrMissingWhereClause = errors.New("WHERE conditions required")
	// ErrParamConflict a named parameter is bound twice
	ErrParamConflict = errors.New("conflicting named parameter")
	// ErrInvalidParams params are not a valid url encoded list
	ErrInvalidParams = errors.New("invalid params")
)

// ValidationError lists the required fields a record is missing
type ValidationError struct {
	Entity string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Entity, ErrValidation, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// PersistenceError the database rejected a statement
type PersistenceError struct {
	Op  string
	SQL string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.SQL, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
