// (c) 2025, JSONEdit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonpatch

import (
	"errors"
	"testing"
)

type GetValueCase struct {
	doc, path string
	result    []byte
	err       error
}

var GetValueCases = []GetValueCase{
	{
		`{ "baz": "qux" }`,
		"/baz",
		[]byte(`"qux"`),
		nil,
	},
	{
		`{
	    "baz": "qux",
	    "foo": [ "a", 2, "c" ]
	  }`,
		"/foo/0",
		[]byte(`"a"`),
		nil,
	},
	{
		`{
	    "baz": "qux",
	    "foo": [ "a", 2, "c" ]
	  }`,
		"/foo/1",
		[]byte(`2`),
		nil,
	},
	{
		`{
	    "baz": "qux",
	    "foo": [ "a", 2, "c", {"baz": null} ]
	  }`,
		"/foo/3/baz",
		[]byte(`null`),
		nil,
	},
	{
		`{ "foo": {} }`,
		"/foo",
		[]byte(`{}`),
		nil,
	},
	{
		`{ "foo": [ ] }`,
		"/foo",
		[]byte(`[]`),
		nil,
	},
	{
		`{ "foo": null }`,
		"/foo",
		[]byte(`null`),
		nil,
	},
	{
		`{ "baz/foo": "qux" }`,
		"/baz~1foo",
		[]byte(`"qux"`),
		nil,
	},
	{
		`{
	    "baz": "qux",
	    "foo": [ "a", 2, "c" ]
	  }`,
		"/fooo",
		nil,
		ErrPointerNotFound,
	},
	{
		`{ "foo": [ "a" ] }`,
		"/foo/3",
		nil,
		ErrInvalidIndex,
	},
	{
		`{ "foo": "bar" }`,
		"/foo/baz",
		nil,
		ErrNotContainer,
	},
}

func TestGetValueByPath(t *testing.T) {
	for _, c := range GetValueCases {
		res, err := GetValueByPath([]byte(c.doc), c.path)
		if c.err != nil {
			if !errors.Is(err, c.err) {
				t.Errorf("Testing failed when it should have error for [%s]: expected [%v], got [%v]",
					string(c.doc), c.err, err)
			}
		} else if err != nil {
			t.Errorf("Testing failed when it should have passed for [%s]: %v", string(c.doc), err)
		} else {
			if string(res) != string(c.result) {
				t.Errorf("Testing failed for [%s]: expected [%s], got [%s]", string(c.doc), string(c.result), string(res))
			}
		}
	}
}

type FindChildrenCase struct {
	doc    []byte
	tests  PVs
	result PVs
}

var FindChildrenCases = []FindChildrenCase{
	{
		[]byte(`{ "baz": "qux" }`),
		PVs{{"/baz", []byte(`"qux"`)}},
		PVs{{"", []byte(`{"baz": "qux"}`)}},
	},
	{
		[]byte(`{
	    "baz": "qux",
	    "foo": [ "a", 2, "c" ]
	  }`),
		PVs{{"/foo/0", []byte(`"a"`)}},
		PVs{{"", []byte(`{
				"baz": "qux",
				"foo": [ "a", 2, "c" ]
			}`),
		}},
	},
	{
		[]byte(`{
	    "baz": "qux",
	    "foo": [ "a", 2, "c" ]
	  }`),
		PVs{{"/1", []byte(`2`)}},
		PVs{{"/foo", []byte(`[ "a", 2, "c" ]`)}},
	},
	{
		[]byte(`{
	    "baz": "qux",
	    "foo": [ "a", 2, "c" ]
	  }`),
		PVs{{"/fooo", nil}},
		PVs{},
	},
	{
		[]byte(`{ "foo": null }`),
		PVs{{"/foo", nil}},
		PVs{{"", []byte(`{ "foo": null }`)}},
	},
	{
		[]byte(`{ "foo": null }`),
		PVs{{"/foo", []byte("null")}},
		PVs{{"", []byte(`{ "foo": null }`)}},
	},
	{
		[]byte(`{ "baz/foo": [ "qux" ] }`),
		PVs{{"/0", []byte(`"qux"`)}},
		PVs{{"/baz~1foo", []byte(`["qux"]`)}},
	},
	{
		[]byte(`[
			"root",
			["object", { "id": "id1" }],
			["object", { "id": "id2" }]
		]`),
		PVs{{"/0", []byte(`"object"`)}},
		PVs{
			{"/1", []byte(`["object", { "id": "id1" }]`)},
			{"/2", []byte(`["object", { "id": "id2" }]`)},
		},
	},
	{
		[]byte(`[
			"root",
			["object", { "id": "id1" }],
			["object", { "id": "id2" }]
		]`),
		PVs{{"/1/id", []byte(`"id1"`)}},
		PVs{{"/1", []byte(`["object", { "id": "id1" }]`)}},
	},
	{
		[]byte(`[
			"root",
			["object1", { "id": "" }],
			["object2", { "id": null }]
		]`),
		PVs{
			{"/0", []byte(`"object2"`)},
			{"/1/id", []byte(`null`)},
		},
		PVs{{"/2", []byte(`["object2", { "id": null }]`)}},
	},
	{
		[]byte(`["root", ["p",
			["span", {"data-type": "text"},
				["span", {"data-type": "leaf"}, "Hello 1"],
				["span", {"data-type": "leaf"}, "Hello 2"]
			]
		]]`),
		PVs{{"/0", []byte(`"span"`)}, {"/1/data-type", []byte(`"leaf"`)}},
		PVs{
			{"/1/1/2", []byte(`["span", {"data-type": "leaf"}, "Hello 1"]`)},
			{"/1/1/3", []byte(`["span", {"data-type": "leaf"}, "Hello 2"]`)},
		},
	},
	{
		[]byte(`["root", ["p",
			["span", {"data-type": "text"},
				["span", {"data-type": "leaf"}, "Hello 1"],
				["span", {"data-type": null}, "Hello 2"]
			]
		]]`),
		PVs{{"/0", []byte(`"span"`)}},
		PVs{
			{"/1/1", []byte(`["span", {"data-type": "text"},
			["span", {"data-type": "leaf"}, "Hello 1"],
			["span", {"data-type": null}, "Hello 2"]]`)},
			{"/1/1/2", []byte(`["span", {"data-type": "leaf"}, "Hello 1"]`)},
			{"/1/1/3", []byte(`["span", {"data-type": null}, "Hello 2"]`)},
		},
	},
}

func TestFindChildren(t *testing.T) {
	for i, c := range FindChildrenCases {
		v, err := NewValue(c.doc)
		if err != nil {
			t.Errorf("Testing failed when case %d should have parsed: %s", i, err)
			continue
		}
		res, err := v.FindChildren(c.tests)

		if err != nil {
			t.Errorf("Testing failed when case %d should have passed: %s", i, err)
		} else {
			if len(res) != len(c.result) {
				t.Errorf("Testing failed for case %d, %s: expected %d, got %d",
					i, string(c.doc), len(c.result), len(res))
				continue
			}
			for j := range res {
				if c.result[j].Path != res[j].Path {
					t.Errorf("Testing failed for case %d, %s: expected path [%s], got [%s]",
						i, string(c.doc), c.result[j].Path, res[j].Path)
				} else if !Equal(c.result[j].Value, res[j].Value) {
					t.Errorf("Testing failed for case %d, %v: expected [%s], got [%s]",
						i, string(c.doc), string(c.result[j].Value), string(res[j].Value))
				}
			}
		}
	}
}
