// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lenserr defines the closed error taxonomy shared by every
// stage of the lens pipeline (spec.md §7). It is a leaf package so
// that the Poisson relaxer, the march step and the façade can all
// report the same kinds without an import cycle.
package lenserr

import "github.com/cpmech/gosl/chk"

// Kind is one of the four error kinds spec.md §7 recognizes. It is a
// closed enumeration: callers branch on it with Is or by reading
// Error.Kind, never on the formatted message text.
type Kind int

const (
	// InvalidInput: W<2 or H<2, non-rectangular input, or ΣI<=0.
	InvalidInput Kind = iota + 1
	// Diverged: a relaxer sweep observed a non-finite update.
	Diverged
	// Cancelled: cancellation was requested and observed at a yield point.
	Cancelled
	// BadConfig: a Config field violates its documented constraint.
	BadConfig
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case Diverged:
		return "Diverged"
	case Cancelled:
		return "Cancelled"
	case BadConfig:
		return "BadConfig"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with a human-readable, chk.Err-built message
// (matching the teacher's own error-construction convention in
// fem/domain.go and ele/element.go).
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// New builds an *Error of the given kind with a chk.Err-formatted
// message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: chk.Err(format, args...).Error()}
}

// Is reports whether err is an *Error of kind k. err itself must be
// the *Error; wrapped errors are not unwrapped.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
