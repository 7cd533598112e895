// Package core implements the document-model logic that sits beneath
// the YAML codec: validation, the version upgrade ladder, NEVRA
// consistency checking, numeric scalar parsing, and the quoting
// heuristic the emitter needs.
package core

import (
	"errors"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"modulemd/internal/types"
)

// Error is the library's single public error type. It wraps an
// errbuilder-go error (so callers that only care about the coarse
// errbuilder.Code bucket, the way internal/cli's exitCodeForError does
// in the teacher, still work unmodified) while preserving the exact
// error-kind taxonomy value for callers that need it.
type Error struct {
	Kind types.ErrorKind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Unwrap() error { return e.err }

// NewError builds an Error of the given error-kind with a
// human-readable message.
func NewError(kind types.ErrorKind, msg string) error {
	return &Error{Kind: kind, err: errbuilder.New().WithCode(codeFor(kind)).WithMsg(msg)}
}

// WrapError is NewError plus an underlying cause.
func WrapError(kind types.ErrorKind, msg string, cause error) error {
	return &Error{Kind: kind, err: errbuilder.New().WithCode(codeFor(kind)).WithMsg(msg).WithCause(cause)}
}

// codeFor maps an error kind onto errbuilder's code space.
// The mapping is many-to-one: errbuilder.Code buckets errors for
// exit-code purposes, while KindOf recovers the precise taxonomy value.
func codeFor(kind types.ErrorKind) errbuilder.Code {
	switch kind {
	case types.ErrorUpgrade:
		return errbuilder.CodeFailedPrecondition
	case types.ErrorValidate, types.ErrorYAMLParse, types.ErrorYAMLMissingRequired,
		types.ErrorMissingRequired, types.ErrorYAMLInconsistent, types.ErrorYAMLUnknownAttribute,
		types.ErrorYAMLUnparseable, types.ErrorMagic:
		return errbuilder.CodeInvalidArgument
	case types.ErrorFileAccess, types.ErrorYAMLOpen:
		return errbuilder.CodeFailedPrecondition
	case types.ErrorNoMatches:
		return errbuilder.CodeNotFound
	case types.ErrorTooManyMatches:
		return errbuilder.CodeAlreadyExists
	default:
		// NOT_IMPLEMENTED, PROGRAMMING, EVENT_INIT, EMIT and any future
		// kind: treated as internal invariant violations.
		return errbuilder.CodeInternal
	}
}

// KindOf recovers the error-kind carried by an error built with
// NewError/WrapError, or "" if err wasn't built by this package.
func KindOf(err error) types.ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
