// (c) 2025, JSONEdit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonpatch

import (
	"strconv"
)

// PV represents a path and a raw encoded JSON value at that path.
type PV struct {
	Path  string
	Value []byte
}

// PVs is a collection of PV.
type PVs []*PV

// GetValueByPath returns the raw encoded JSON value in the document
// identified by the JSON Pointer path.
func GetValueByPath(doc []byte, path string) ([]byte, error) {
	v, err := NewValue(doc)
	if err != nil {
		return nil, err
	}
	return v.GetValue(path)
}

// GetValue returns the raw encoded JSON value identified by the JSON
// Pointer path.
func (v *Value) GetValue(path string) ([]byte, error) {
	ptr, err := ParsePointer(path)
	if err != nil {
		return nil, err
	}
	node, err := v.Resolve(ptr)
	if err != nil {
		return nil, err
	}
	return node.MarshalJSON()
}

// FindChildren returns all subtrees, the value itself included, for which
// every probe in tests resolves relative to the subtree and equals the
// probe's value. A nil or empty probe value stands for JSON null. Results
// are in document order, each tagged with its path from the document root.
func (v *Value) FindChildren(tests PVs) (PVs, error) {
	type probe struct {
		ptr  Pointer
		want *Value
	}
	probes := make([]probe, 0, len(tests))
	for _, pv := range tests {
		ptr, err := ParsePointer(pv.Path)
		if err != nil {
			return nil, err
		}
		want, err := NewValue(pv.Value)
		if err != nil {
			return nil, err
		}
		probes = append(probes, probe{ptr: ptr, want: want})
	}

	matches := func(node *Value) bool {
		for _, pb := range probes {
			got, err := node.Resolve(pb.ptr)
			if err != nil || !got.Equal(pb.want) {
				return false
			}
		}
		return true
	}

	result := make(PVs, 0)
	var walk func(node *Value, path string) error
	walk = func(node *Value, path string) error {
		if matches(node) {
			raw, err := node.MarshalJSON()
			if err != nil {
				return err
			}
			result = append(result, &PV{Path: path, Value: raw})
		}
		switch node.Kind() {
		case ArrayType:
			for i, el := range node.ary {
				if err := walk(el, path+"/"+strconv.Itoa(i)); err != nil {
					return err
				}
			}
		case ObjectType:
			for _, k := range node.keys {
				if err := walk(node.obj[k], path+"/"+encodePatchKey(k)); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(v, ""); err != nil {
		return nil, err
	}
	return result, nil
}
