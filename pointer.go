// (c) 2025, JSONEdit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonpatch

import (
	"fmt"
	"strings"
)

// From http://tools.ietf.org/html/rfc6901#section-4 :
//
// Evaluation of each reference token begins by decoding any escaped
// character sequence.  This is performed by first transforming any
// occurrence of the sequence '~1' to '/', and then transforming any
// occurrence of the sequence '~0' to '~'.
var (
	rfc6901Decoder = strings.NewReplacer("~1", "/", "~0", "~")
	rfc6901Encoder = strings.NewReplacer("~", "~0", "/", "~1")
)

func decodePatchKey(k string) string {
	return rfc6901Decoder.Replace(k)
}

func encodePatchKey(k string) string {
	return rfc6901Encoder.Replace(k)
}

// Pointer is a parsed RFC 6901 JSON Pointer: a sequence of decoded
// reference tokens. The empty Pointer denotes the whole document.
type Pointer []string

// ParsePointer parses the wire form of a JSON Pointer.
func ParsePointer(path string) (Pointer, error) {
	if path == "" {
		return Pointer{}, nil
	}
	if path[0] != '/' {
		return nil, fmt.Errorf("pointer %q must be empty or start with %q", path, "/")
	}
	parts := strings.Split(path[1:], "/")
	ptr := make(Pointer, len(parts))
	for i, part := range parts {
		ptr[i] = decodePatchKey(part)
	}
	return ptr, nil
}

// String re-encodes the pointer into its wire form.
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, token := range p {
		b.WriteString("/")
		b.WriteString(encodePatchKey(token))
	}
	return b.String()
}

// IsRoot indicates if the pointer denotes the whole document.
func (p Pointer) IsRoot() bool { return len(p) == 0 }

// isAncestorOf indicates if p is a strict prefix of other.
func (p Pointer) isAncestorOf(other Pointer) bool {
	if len(p) >= len(other) {
		return false
	}
	for i, token := range p {
		if other[i] != token {
			return false
		}
	}
	return true
}

// parseArrayIndex parses a reference token as a base-10 array index:
// non-negative, no leading zeros except "0" itself.
func parseArrayIndex(token string) (int, bool) {
	if token == "" || (len(token) > 1 && token[0] == '0') {
		return 0, false
	}
	idx := 0
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		idx = idx*10 + int(c-'0')
		if idx < 0 {
			return 0, false
		}
	}
	return idx, true
}

// Resolve follows the pointer from v and returns the value it identifies.
// The empty pointer returns v itself.
func (v *Value) Resolve(ptr Pointer) (*Value, error) {
	cur := v
	for _, token := range ptr {
		switch cur.Kind() {
		case ObjectType:
			child, ok := cur.getKey(token)
			if !ok {
				return nil, pointerError(ErrPointerNotFound, ptr, token)
			}
			cur = child
		case ArrayType:
			idx, ok := parseArrayIndex(token)
			if !ok || idx >= len(cur.ary) {
				return nil, pointerError(ErrInvalidIndex, ptr, token)
			}
			cur = cur.ary[idx]
		default:
			return nil, pointerError(ErrNotContainer, ptr, token)
		}
	}
	return cur, nil
}

// resolveParent stops one token short of the full resolution, returning
// the penultimate container and the final token for the write primitives.
func (v *Value) resolveParent(ptr Pointer) (*Value, string, error) {
	if ptr.IsRoot() {
		return nil, "", pointerError(ErrRootHasNoParent, ptr, "")
	}
	parent, err := v.Resolve(ptr[:len(ptr)-1])
	if err != nil {
		return nil, "", err
	}
	return parent, ptr[len(ptr)-1], nil
}

// insertAt sets an object key (creating or overwriting), or inserts into
// an array at the token index, shifting subsequent elements right. The
// token "-" appends.
func (v *Value) insertAt(ptr Pointer, token string, val *Value) error {
	switch v.Kind() {
	case ObjectType:
		v.setKey(token, val)
		return nil
	case ArrayType:
		if token == "-" {
			v.ary = append(v.ary, val)
			return nil
		}
		idx, ok := parseArrayIndex(token)
		if !ok {
			return pointerError(ErrInvalidIndex, ptr, token)
		}
		if idx > len(v.ary) {
			return pointerError(ErrIndexOutOfRange, ptr, token)
		}
		v.ary = append(v.ary, nil)
		copy(v.ary[idx+1:], v.ary[idx:])
		v.ary[idx] = val
		return nil
	}
	return pointerError(ErrNotContainer, ptr, token)
}

// removeAt deletes an object key or removes the array element at the
// token index, shifting subsequent elements left.
func (v *Value) removeAt(ptr Pointer, token string) error {
	switch v.Kind() {
	case ObjectType:
		if !v.deleteKey(token) {
			return pointerError(ErrKeyNotFound, ptr, token)
		}
		return nil
	case ArrayType:
		idx, ok := parseArrayIndex(token)
		if !ok {
			return pointerError(ErrInvalidIndex, ptr, token)
		}
		if idx >= len(v.ary) {
			return pointerError(ErrIndexOutOfRange, ptr, token)
		}
		v.ary = append(v.ary[:idx], v.ary[idx+1:]...)
		return nil
	}
	return pointerError(ErrNotContainer, ptr, token)
}

// replaceAt overwrites an existing object key or array element. Unlike
// insertAt it never creates a member, and "-" is not permitted.
func (v *Value) replaceAt(ptr Pointer, token string, val *Value) error {
	switch v.Kind() {
	case ObjectType:
		if _, ok := v.getKey(token); !ok {
			return pointerError(ErrKeyNotFound, ptr, token)
		}
		v.setKey(token, val)
		return nil
	case ArrayType:
		idx, ok := parseArrayIndex(token)
		if !ok {
			return pointerError(ErrInvalidIndex, ptr, token)
		}
		if idx >= len(v.ary) {
			return pointerError(ErrIndexOutOfRange, ptr, token)
		}
		v.ary[idx] = val
		return nil
	}
	return pointerError(ErrNotContainer, ptr, token)
}
