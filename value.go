// (c) 2025, JSONEdit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonpatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	NullType Kind = iota
	BoolType
	NumberType
	StringType
	ArrayType
	ObjectType
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		NullType:   "Null",
		BoolType:   "Bool",
		NumberType: "Number",
		StringType: "String",
		ArrayType:  "Array",
		ObjectType: "Object",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

// Value is a parsed JSON document node. Objects preserve the insertion
// order of their keys, so a document round-trips through patching without
// reordering its members.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	ary  []*Value
	keys []string
	obj  map[string]*Value
}

// NewValue parses the given raw encoded JSON document.
// A nil or empty raw document is equal to JSON null.
func NewValue(raw json.RawMessage) (*Value, error) {
	v := &Value{}
	if len(raw) == 0 {
		return v, nil
	}
	if err := v.UnmarshalJSON(raw); err != nil {
		return nil, err
	}
	return v, nil
}

// Kind returns the variant held by the value.
func (v *Value) Kind() Kind {
	if v == nil {
		return NullType
	}
	return v.kind
}

// IsNull indicates if the value is JSON null.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == NullType
}

// Len returns the number of elements of an array or members of an object,
// and 0 for any other kind.
func (v *Value) Len() int {
	switch v.Kind() {
	case ArrayType:
		return len(v.ary)
	case ObjectType:
		return len(v.keys)
	}
	return 0
}

// String returns a string representation of the value.
func (v *Value) String() string {
	raw, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<error: %v>", err)
	}
	return string(raw)
}

// MarshalJSON implements the json.Marshaler interface.
// Object members are written in insertion order.
func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}

	switch v.kind {
	case NullType:
		return []byte("null"), nil
	case BoolType:
		return []byte(strconv.FormatBool(v.b)), nil
	case NumberType:
		return []byte(v.num), nil
	case StringType:
		return json.Marshal(v.str)
	case ArrayType:
		var buf bytes.Buffer
		buf.WriteString("[")
		for i, el := range v.ary {
			if i > 0 {
				buf.WriteString(",")
			}
			raw, err := el.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(raw)
		}
		buf.WriteString("]")
		return buf.Bytes(), nil
	case ObjectType:
		var buf bytes.Buffer
		buf.WriteString("{")
		for i, k := range v.keys {
			if i > 0 {
				buf.WriteString(",")
			}
			key, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteString(":")
			raw, err := v.obj[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(raw)
		}
		buf.WriteString("}")
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown value kind %d", v.kind)
}

// UnmarshalJSON implements the json.Unmarshaler interface. Numbers keep
// their literal form, and duplicate object keys are rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	if v == nil {
		return errors.New("nil value")
	}

	de := json.NewDecoder(bytes.NewReader(data))
	de.UseNumber()
	parsed, err := decodeValue(de)
	if err != nil {
		return err
	}
	if _, err = de.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after top-level value")
	}
	*v = *parsed
	return nil
}

func decodeValue(de *json.Decoder) (*Value, error) {
	tok, err := de.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case nil:
		return &Value{}, nil
	case bool:
		return &Value{kind: BoolType, b: t}, nil
	case json.Number:
		return &Value{kind: NumberType, num: t}, nil
	case string:
		return &Value{kind: StringType, str: t}, nil
	case json.Delim:
		switch t {
		case '[':
			v := &Value{kind: ArrayType, ary: make([]*Value, 0)}
			for de.More() {
				el, err := decodeValue(de)
				if err != nil {
					return nil, err
				}
				v.ary = append(v.ary, el)
			}
			if _, err = de.Token(); err != nil {
				return nil, err
			}
			return v, nil
		case '{':
			v := &Value{kind: ObjectType, obj: make(map[string]*Value)}
			for de.More() {
				k, err := de.Token()
				if err != nil {
					return nil, err
				}
				key, ok := k.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected JSON token %v as object key", k)
				}
				if _, ok = v.obj[key]; ok {
					return nil, fmt.Errorf("duplicate object key %q", key)
				}
				el, err := decodeValue(de)
				if err != nil {
					return nil, err
				}
				v.keys = append(v.keys, key)
				v.obj[key] = el
			}
			if _, err = de.Token(); err != nil {
				return nil, err
			}
			return v, nil
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

// Clone returns a deep copy of the value sharing no structure with it.
func (v *Value) Clone() *Value {
	if v == nil {
		return &Value{}
	}
	c := &Value{kind: v.kind, b: v.b, num: v.num, str: v.str}
	switch v.kind {
	case ArrayType:
		c.ary = make([]*Value, len(v.ary))
		for i, el := range v.ary {
			c.ary[i] = el.Clone()
		}
	case ObjectType:
		c.keys = append([]string(nil), v.keys...)
		c.obj = make(map[string]*Value, len(v.obj))
		for k, el := range v.obj {
			c.obj[k] = el.Clone()
		}
	}
	return c
}

// Equal indicates if two values have the same structural equality:
// object key order is irrelevant, array order is relevant, and numbers
// compare by numeric value rather than literal form.
func (v *Value) Equal(o *Value) bool {
	if v == nil {
		v = &Value{}
	}
	if o == nil {
		o = &Value{}
	}
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case NullType:
		return true
	case BoolType:
		return v.b == o.b
	case NumberType:
		return numberEqual(v.num, o.num)
	case StringType:
		return v.str == o.str
	case ArrayType:
		if len(v.ary) != len(o.ary) {
			return false
		}
		for i, el := range v.ary {
			if !el.Equal(o.ary[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, el := range v.obj {
			ov, ok := o.obj[k]
			if !ok || !el.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

func numberEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	if ai, err := a.Int64(); err == nil {
		if bi, err := b.Int64(); err == nil {
			return ai == bi
		}
	}
	af, err := a.Float64()
	if err != nil {
		return false
	}
	bf, err := b.Float64()
	if err != nil {
		return false
	}
	return af == bf
}

// Equal indicates if 2 JSON documents have the same structural equality.
func Equal(a, b []byte) bool {
	av, err := NewValue(a)
	if err != nil {
		return false
	}
	bv, err := NewValue(b)
	if err != nil {
		return false
	}
	return av.Equal(bv)
}

func (v *Value) getKey(key string) (*Value, bool) {
	el, ok := v.obj[key]
	return el, ok
}

func (v *Value) setKey(key string, val *Value) {
	if v.obj == nil {
		v.obj = make(map[string]*Value)
	}
	if _, ok := v.obj[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.obj[key] = val
}

func (v *Value) deleteKey(key string) bool {
	if _, ok := v.obj[key]; !ok {
		return false
	}
	for i, k := range v.keys {
		if k == key {
			v.keys = append(v.keys[:i], v.keys[i+1:]...)
			break
		}
	}
	delete(v.obj, key)
	return true
}

func newObject() *Value {
	return &Value{kind: ObjectType, obj: make(map[string]*Value)}
}

func newArray() *Value {
	return &Value{kind: ArrayType, ary: make([]*Value, 0)}
}
