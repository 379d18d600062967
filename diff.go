package jsonpatch

import (
	"strconv"
	"strings"
)

// Diff two JSON documents and generate a JSON Patch that transforms src
// into dst.
func Diff(src, dst []byte) (Patch, error) {
	a, err := NewValue(src)
	if err != nil {
		return nil, err
	}
	b, err := NewValue(dst)
	if err != nil {
		return nil, err
	}
	return a.Diff(b)
}

type collector struct {
	path  string
	patch Patch
}

func (c *collector) withPathToken(token string) string {
	return c.path + "/" + token
}

func (c *collector) pushPathToken(token string) {
	c.path = c.withPathToken(token)
}

func (c *collector) popPathToken() {
	if i := strings.LastIndex(c.path, "/"); i >= 0 {
		c.path = c.path[:i]
	}
}

func (c *collector) replaceOp(node *Value) error {
	raw, err := node.MarshalJSON()
	if err == nil {
		c.patch = append(c.patch, Operation{Op: "replace", Path: c.path, Value: raw})
	}
	return err
}

func (c *collector) addOp(token string, node *Value) error {
	raw, err := node.MarshalJSON()
	if err == nil {
		c.patch = append(c.patch, Operation{Op: "add", Path: c.withPathToken(token), Value: raw})
	}
	return err
}

func (c *collector) removeOp(token string) {
	c.patch = append(c.patch, Operation{Op: "remove", Path: c.withPathToken(token)})
}

// Diff two JSON values and generate a JSON Patch.
func (v *Value) Diff(target *Value) (Patch, error) {
	c := &collector{patch: make(Patch, 0)}
	if err := v.diff(target, c); err != nil {
		return nil, err
	}
	return c.patch, nil
}

func (v *Value) diff(target *Value, c *collector) error {
	if v.Equal(target) {
		return nil
	}

	if v.Kind() != target.Kind() || target.Kind() != ObjectType && target.Kind() != ArrayType {
		return c.replaceOp(target)
	}

	if v.Kind() == ObjectType {
		for _, key := range v.keys {
			if _, ok := target.obj[key]; !ok {
				c.removeOp(encodePatchKey(key))
			}
		}

		for _, key := range target.keys {
			node, ok := v.obj[key]
			switch {
			case ok:
				c.pushPathToken(encodePatchKey(key))
				if err := node.diff(target.obj[key], c); err != nil {
					return err
				}
				c.popPathToken()

			default:
				if err := c.addOp(encodePatchKey(key), target.obj[key]); err != nil {
					return err
				}
			}
		}

		return nil
	}

	ln := len(v.ary)
	lt := len(target.ary)
	for ; ln > lt; ln-- {
		c.removeOp(strconv.Itoa(ln - 1))
	}

	for i, node := range target.ary {
		switch {
		case i < ln:
			c.pushPathToken(strconv.Itoa(i))
			if err := v.ary[i].diff(node, c); err != nil {
				return err
			}
			c.popPathToken()

		default:
			if err := c.addOp(strconv.Itoa(i), node); err != nil {
				return err
			}
		}
	}

	return nil
}
