// (c) 2025, JSONEdit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonpatch

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Operation is a single JSON-Patch step, such as a single 'add' operation.
type Operation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	From  string          `json:"from,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`

	// Wire decoding records whether the members were present at all, so
	// Validate can tell a missing path from the (legal) root pointer "".
	pathAbsent bool
	fromAbsent bool
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var raw struct {
		Op    string          `json:"op"`
		Path  *string         `json:"path"`
		From  *string         `json:"from"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.Op = raw.Op
	o.Value = raw.Value
	o.Path = ""
	o.pathAbsent = raw.Path == nil
	if raw.Path != nil {
		o.Path = *raw.Path
	}
	o.From = ""
	o.fromAbsent = raw.From == nil
	if raw.From != nil {
		o.From = *raw.From
	}
	return nil
}

// Patch is an ordered collection of Operations.
type Patch []Operation

// NewPatch decodes the passed JSON document as an RFC 6902 patch.
func NewPatch(doc []byte) (Patch, error) {
	var p Patch
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, &Error{Index: -1, Err: ErrMalformedPatch, Detail: err.Error()}
	}
	return p, nil
}

// Options specifies options for calls to ApplyWithOptions.
// Use NewOptions to obtain default values for Options.
type Options struct {
	// AllowMissingPathOnRemove indicates whether to fail "remove" operations
	// when the target path is missing. Default to false.
	AllowMissingPathOnRemove bool
	// EnsurePathExistsOnAdd instructs the engine to recursively create the
	// missing parts of path on "add" operation. Default to false.
	EnsurePathExistsOnAdd bool
}

// NewOptions creates a default set of options for calls to ApplyWithOptions.
func NewOptions() *Options {
	return &Options{}
}

// Validate checks the structural shape of the patch without applying it:
// every operation must be a known kind, carry a path, and carry a value
// (add, replace, test) or a from pointer (move, copy). The first violation
// is reported as an ErrMalformedPatch tagged with the operation index.
func (p Patch) Validate() error {
	for i, op := range p {
		switch op.Op {
		case "add", "replace", "test":
			if len(op.Value) == 0 {
				return malformed(i, fmt.Sprintf("%s operation requires a value member", op.Op))
			}
			if !json.Valid(op.Value) {
				return malformed(i, fmt.Sprintf("%s operation value is not valid JSON", op.Op))
			}
		case "remove":
		case "move", "copy":
			if op.fromAbsent {
				return malformed(i, fmt.Sprintf("%s operation requires a from member", op.Op))
			}
			if _, err := ParsePointer(op.From); err != nil {
				return malformed(i, err.Error())
			}
		default:
			return malformed(i, fmt.Sprintf("unexpected operation %q", op.Op))
		}
		if op.pathAbsent {
			return malformed(i, "operation requires a path member")
		}
		if _, err := ParsePointer(op.Path); err != nil {
			return malformed(i, err.Error())
		}
	}
	return nil
}

// Apply applies the patch to a JSON document and returns the new document.
func (p Patch) Apply(doc []byte) ([]byte, error) {
	return p.ApplyWithOptions(doc, NewOptions())
}

// ApplyWithOptions applies the patch to a JSON document according to the
// passed in Options, and returns the new document.
func (p Patch) ApplyWithOptions(doc []byte, options *Options) ([]byte, error) {
	v, err := NewValue(doc)
	if err != nil {
		return nil, err
	}
	out, err := p.ApplyToWithOptions(v, options)
	if err != nil {
		return nil, err
	}
	return out.MarshalJSON()
}

// ApplyTo applies the patch to a parsed document and returns the patched
// document as a new value. doc is never mutated: operations run in order
// against a working clone, the first failure discards the clone and is
// returned tagged with the failing operation index, and on success the
// clone is returned sharing no structure with doc.
func (p Patch) ApplyTo(doc *Value) (*Value, error) {
	return p.ApplyToWithOptions(doc, NewOptions())
}

// ApplyToWithOptions applies the patch to a parsed document according to
// the passed in Options. See ApplyTo.
func (p Patch) ApplyToWithOptions(doc *Value, options *Options) (*Value, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if options == nil {
		options = NewOptions()
	}

	work := doc.Clone()
	for i, op := range p {
		var err error
		switch op.Op {
		case "add":
			err = p.add(&work, op, options)
		case "remove":
			err = p.remove(&work, op, options)
		case "replace":
			err = p.replace(&work, op)
		case "move":
			err = p.move(&work, op)
		case "copy":
			err = p.copy(&work, op)
		case "test":
			err = p.test(work, op)
		}
		if err != nil {
			return nil, errAt(i, err)
		}
	}
	return work, nil
}

func (p Patch) add(doc **Value, op Operation, options *Options) error {
	ptr, err := ParsePointer(op.Path)
	if err != nil {
		return err
	}
	val, err := NewValue(op.Value)
	if err != nil {
		return err
	}
	return addValue(doc, ptr, val, options)
}

// addValue inserts val at ptr. An empty ptr makes val the new document.
func addValue(doc **Value, ptr Pointer, val *Value, options *Options) error {
	if ptr.IsRoot() {
		*doc = val
		return nil
	}
	if options != nil && options.EnsurePathExistsOnAdd {
		if err := ensurePathExists(*doc, ptr); err != nil {
			return err
		}
	}
	parent, token, err := (*doc).resolveParent(ptr)
	if err != nil {
		return err
	}
	return parent.insertAt(ptr, token, val)
}

func (p Patch) remove(doc **Value, op Operation, options *Options) error {
	ptr, err := ParsePointer(op.Path)
	if err != nil {
		return err
	}
	err = removeValue(*doc, ptr)
	if err != nil && options.AllowMissingPathOnRemove && isMissing(err) {
		return nil
	}
	return err
}

func removeValue(doc *Value, ptr Pointer) error {
	parent, token, err := doc.resolveParent(ptr)
	if err != nil {
		return err
	}
	return parent.removeAt(ptr, token)
}

func isMissing(err error) bool {
	return errors.Is(err, ErrPointerNotFound) ||
		errors.Is(err, ErrKeyNotFound) ||
		errors.Is(err, ErrIndexOutOfRange)
}

func (p Patch) replace(doc **Value, op Operation) error {
	ptr, err := ParsePointer(op.Path)
	if err != nil {
		return err
	}
	val, err := NewValue(op.Value)
	if err != nil {
		return err
	}
	if ptr.IsRoot() {
		*doc = val
		return nil
	}
	parent, token, err := (*doc).resolveParent(ptr)
	if err != nil {
		return err
	}
	return parent.replaceAt(ptr, token, val)
}

func (p Patch) move(doc **Value, op Operation) error {
	from, err := ParsePointer(op.From)
	if err != nil {
		return err
	}
	ptr, err := ParsePointer(op.Path)
	if err != nil {
		return err
	}
	if from.isAncestorOf(ptr) {
		return &Error{
			Index:   -1,
			Err:     ErrInvalidMove,
			Pointer: ptr.String(),
			Detail:  fmt.Sprintf("from %q is an ancestor of path", from.String()),
		}
	}

	val, err := (*doc).Resolve(from)
	if err != nil {
		return err
	}
	if err = removeValue(*doc, from); err != nil {
		return err
	}
	return addValue(doc, ptr, val, nil)
}

func (p Patch) copy(doc **Value, op Operation) error {
	from, err := ParsePointer(op.From)
	if err != nil {
		return err
	}
	ptr, err := ParsePointer(op.Path)
	if err != nil {
		return err
	}
	val, err := (*doc).Resolve(from)
	if err != nil {
		return err
	}
	return addValue(doc, ptr, val.Clone(), nil)
}

func (p Patch) test(doc *Value, op Operation) error {
	ptr, err := ParsePointer(op.Path)
	if err != nil {
		return err
	}
	actual, err := doc.Resolve(ptr)
	if err != nil {
		return err
	}
	expected, err := NewValue(op.Value)
	if err != nil {
		return err
	}
	if actual.Equal(expected) {
		return nil
	}
	return &Error{
		Index:    -1,
		Err:      ErrTestFailed,
		Pointer:  ptr.String(),
		Detail:   fmt.Sprintf("expected %s, got %s", expected.String(), actual.String()),
		Expected: expected,
		Actual:   actual.Clone(),
	}
}

// ensurePathExists walks the parent part of ptr and creates all missing
// containers, choosing an array or an object by the shape of the next
// token, and padding arrays with nulls up to a required index.
func ensurePathExists(doc *Value, ptr Pointer) error {
	cur := doc
	for i, token := range ptr[:len(ptr)-1] {
		next := ptr[i+1]
		switch cur.Kind() {
		case ObjectType:
			child, ok := cur.getKey(token)
			if !ok {
				child = emptyContainerFor(next)
				cur.setKey(token, child)
			}
			cur = child
		case ArrayType:
			if token == "-" {
				child := emptyContainerFor(next)
				cur.ary = append(cur.ary, child)
				cur = child
				continue
			}
			idx, ok := parseArrayIndex(token)
			if !ok {
				return pointerError(ErrInvalidIndex, ptr, token)
			}
			for len(cur.ary) < idx {
				cur.ary = append(cur.ary, &Value{})
			}
			if idx == len(cur.ary) {
				child := emptyContainerFor(next)
				cur.ary = append(cur.ary, child)
				cur = child
			} else {
				cur = cur.ary[idx]
			}
		default:
			return pointerError(ErrNotContainer, ptr, token)
		}
	}
	return nil
}

func emptyContainerFor(token string) *Value {
	if _, ok := parseArrayIndex(token); ok || token == "-" {
		return newArray()
	}
	return newObject()
}
