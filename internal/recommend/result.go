// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package recommend

import (
	"github.com/tomtom215/adinterest/internal/models"
)

// Result is the outcome of a service operation. Exactly one of Data and Err
// is meaningful, selected by Success.
type Result[T any] struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Kind    models.ErrorKind `json:"kind,omitempty"`
	Data    T                `json:"data,omitempty"`
	Err     error            `json:"-"`
}

// Ok wraps a successful value.
func Ok[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Message: message, Data: data}
}

// Fail wraps an error. The kind is taken from the error chain.
func Fail[T any](err error) Result[T] {
	return Result[T]{
		Success: false,
		Message: err.Error(),
		Kind:    models.KindOf(err),
		Err:     err,
	}
}

// Unwrap returns the data and error as a conventional pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.Data, r.Err
}
