// (c) 2025, JSONEdit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonpatch

import (
	"errors"
	"fmt"
	"strings"
)

// The closed set of failure kinds a patch application can produce.
// Every error returned by this package matches exactly one of them
// through errors.Is.
var (
	ErrMalformedPatch  = errors.New("malformed patch")
	ErrPointerNotFound = errors.New("pointer not found")
	ErrKeyNotFound     = errors.New("key not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidIndex    = errors.New("invalid index")
	ErrNotContainer    = errors.New("not a container")
	ErrRootHasNoParent = errors.New("root has no parent")
	ErrInvalidMove     = errors.New("invalid move")
	ErrTestFailed      = errors.New("test failed")
)

// Error is the structured failure value returned by validation and
// application. Index is the 0-based offset of the failing operation,
// or -1 for whole-patch structural failures.
type Error struct {
	Index   int
	Err     error
	Pointer string
	Token   string
	Detail  string

	// Expected and Actual are set for test failures only.
	Expected *Value
	Actual   *Value
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Index >= 0 {
		fmt.Fprintf(&b, "operation %d: ", e.Index)
	}
	b.WriteString(e.Err.Error())
	if e.Pointer != "" {
		fmt.Fprintf(&b, " at %q", e.Pointer)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, " (token %q)", e.Token)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Unwrap returns the failure kind, one of the sentinel errors above.
func (e *Error) Unwrap() error { return e.Err }

func pointerError(kind error, ptr Pointer, token string) *Error {
	return &Error{Index: -1, Err: kind, Pointer: ptr.String(), Token: token}
}

func malformed(index int, detail string) *Error {
	return &Error{Index: index, Err: ErrMalformedPatch, Detail: detail}
}

// errAt tags err with the index of the operation that produced it.
func errAt(index int, err error) error {
	var e *Error
	if errors.As(err, &e) {
		e.Index = index
		return e
	}
	return &Error{Index: index, Err: ErrMalformedPatch, Detail: err.Error()}
}
