// (c) 2025, JSONEdit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonpatch

import (
	"github.com/goccy/go-yaml"
)

// FromYAML parses a YAML document into a Value, preserving the order of
// mapping keys.
func FromYAML(doc []byte) (*Value, error) {
	raw, err := yaml.YAMLToJSON(doc)
	if err != nil {
		return nil, err
	}
	return NewValue(raw)
}

// ToYAML encodes the value as a YAML document.
func ToYAML(v *Value) ([]byte, error) {
	raw, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(raw)
}

// ApplyToYAML applies the patch to a YAML document and returns the new
// document as YAML.
func (p Patch) ApplyToYAML(doc []byte) ([]byte, error) {
	v, err := FromYAML(doc)
	if err != nil {
		return nil, err
	}
	out, err := p.ApplyTo(v)
	if err != nil {
		return nil, err
	}
	return ToYAML(out)
}
