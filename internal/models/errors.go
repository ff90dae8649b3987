// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced by the recommendation core.
type ErrorKind string

// Error kinds.
const (
	KindNotTrained   ErrorKind = "not_trained"
	KindNoData       ErrorKind = "no_data"
	KindTraining     ErrorKind = "training"
	KindPersistence  ErrorKind = "persistence"
	KindNotFound     ErrorKind = "not_found"
	KindInvalidInput ErrorKind = "invalid_input"
	KindInternal     ErrorKind = "internal"
)

// DomainError is an error tagged with an ErrorKind.
//
// errors.Is matches any two DomainErrors of the same kind, so callers compare
// against the sentinel values below regardless of wrapping:
//
//	if errors.Is(err, models.ErrNotTrained) { ... }
type DomainError struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

// Sentinel errors, one per kind.
var (
	ErrNotTrained   = &DomainError{Kind: KindNotTrained, Message: "model is not trained"}
	ErrNoData       = &DomainError{Kind: KindNoData, Message: "no interaction data available"}
	ErrTraining     = &DomainError{Kind: KindTraining, Message: "training failed"}
	ErrPersistence  = &DomainError{Kind: KindPersistence, Message: "persistence failure"}
	ErrNotFound     = &DomainError{Kind: KindNotFound, Message: "not found"}
	ErrInvalidInput = &DomainError{Kind: KindInvalidInput, Message: "invalid input"}
)

// NewError creates a DomainError of the given kind for operation op.
func NewError(kind ErrorKind, op string, err error) *DomainError {
	return &DomainError{Kind: kind, Op: op, Err: err}
}

// Errorf creates a DomainError with a formatted message.
func Errorf(kind ErrorKind, op, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

func (e *DomainError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError of the same kind.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the outermost DomainError in err's chain,
// KindInternal for any other non-nil error, and "" for nil.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
