/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package document defines the parsed-document-tree contract the
// normalization core walks, plus the tagged value shape ($value, group
// metadata, partial alias mirrors) that flows through every phase of
// the pipeline.
//
// The core never parses text itself: it is handed a *Document built by
// something else (this package's own Parse, a caller's own AST, a
// merge step upstream). Parse exists so the core is testable and
// usable standalone without forcing every caller to bring their own
// JSON/YAML front end.
package document

// Kind identifies the shape of a Node or Value.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Location is a 1-based source position, matching yaml.Node's convention.
type Location struct {
	Line   int
	Column int
}

// Node is a single position in the parsed document tree. Implementations
// carry enough to materialize a Value and to point diagnostics back at
// source.
type Node interface {
	Kind() Kind
	Location() Location
}

// Member is a single key/value pair of an ObjectNode, in source order.
type Member struct {
	Name  string
	Value Node
}

// ObjectNode is a Node with named members, iterated in source order so
// the Document Walker's classification and the Group Indexer's cascade
// can rely on deterministic iteration where the input itself was
// deterministic.
type ObjectNode interface {
	Node
	Members() []Member
	// Member looks up a member by name, returning (nil, false) if absent.
	Member(name string) (Node, bool)
}

// ArrayNode is a Node with positional elements.
type ArrayNode interface {
	Node
	Elements() []Node
}

// ScalarNode is a leaf Node (string, number, bool, or null).
type ScalarNode interface {
	Node
	Raw() any
}

// Document is one parsed input, paired with the filename diagnostics
// should cite.
type Document struct {
	Filename string
	Src      []byte
	Root     ObjectNode
}

// Value is the tagged sum type $value (and partialAliasOf) trade in:
// String | Number | Bool | Array<Value> | Object<string,Value> | Null.
// It is the materialized, AST-free counterpart of Node — the resolver
// mutates Values, never Nodes.
type Value struct {
	kind   Kind
	str    string
	num    float64
	boolean bool
	arr    []Value
	obj    map[string]Value
	keys   []string // insertion order for obj, so re-serialization is stable
}

func Null() Value                { return Value{kind: KindNull} }
func String(s string) Value      { return Value{kind: KindString, str: s} }
func Number(n float64) Value     { return Value{kind: KindNumber, num: n} }
func Bool(b bool) Value          { return Value{kind: KindBool, boolean: b} }
func Array(items []Value) Value  { return Value{kind: KindArray, arr: items} }

// Object builds an object Value from an ordered key list and a lookup
// map; keys not present in m are skipped.
func Object(keys []string, m map[string]Value) Value {
	v := Value{kind: KindObject, keys: append([]string(nil), keys...), obj: make(map[string]Value, len(m))}
	for _, k := range keys {
		if val, ok := m[k]; ok {
			v.obj[k] = val
		}
	}
	return v
}

func (v Value) Kind() Kind    { return v.kind }
func (v Value) IsNull() bool  { return v.kind == KindNull }
func (v Value) String() string { return v.str }
func (v Value) Number() float64 { return v.num }
func (v Value) Bool() bool    { return v.boolean }
func (v Value) Array() []Value { return v.arr }
func (v Value) ObjectKeys() []string { return v.keys }

func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	val, ok := v.obj[name]
	return val, ok
}

// WithField returns a copy of v (which must be an object, or Null in
// which case an empty object is assumed) with key set to val. Used to
// lazily build up partialAliasOf mirrors leaf by leaf.
func (v Value) WithField(key string, val Value) Value {
	if v.kind != KindObject {
		v = Value{kind: KindObject, obj: map[string]Value{}}
	}
	obj := make(map[string]Value, len(v.obj)+1)
	for k, existing := range v.obj {
		obj[k] = existing
	}
	keys := v.keys
	if _, exists := obj[key]; !exists {
		keys = append(append([]string(nil), keys...), key)
	}
	obj[key] = val
	return Value{kind: KindObject, obj: obj, keys: keys}
}

// WithIndex returns a copy of v (which must be an array, or Null in
// which case an empty array is assumed) with element i set to val,
// growing with Null entries as needed.
func (v Value) WithIndex(i int, val Value) Value {
	if v.kind != KindArray {
		v = Value{kind: KindArray}
	}
	arr := append([]Value(nil), v.arr...)
	for len(arr) <= i {
		arr = append(arr, Null())
	}
	arr[i] = val
	return Value{kind: KindArray, arr: arr}
}

// Native converts a Value back to a plain Go value (string, float64,
// bool, []any, map[string]any, or nil) for JSON serialization.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.boolean
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Native()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[k] = v.obj[k].Native()
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether two Values have the same shape and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.boolean == other.boolean
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.keys) != len(other.keys) {
			return false
		}
		for _, k := range v.keys {
			ov, ok := other.obj[k]
			if !ok || !v.obj[k].Equal(ov) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Materialize converts a parsed Node into a Value, recursively.
func Materialize(n Node) Value {
	if n == nil {
		return Null()
	}
	switch n.Kind() {
	case KindObject:
		obj := n.(ObjectNode)
		members := obj.Members()
		keys := make([]string, 0, len(members))
		m := make(map[string]Value, len(members))
		for _, mem := range members {
			keys = append(keys, mem.Name)
			m[mem.Name] = Materialize(mem.Value)
		}
		return Object(keys, m)
	case KindArray:
		arr := n.(ArrayNode)
		elems := arr.Elements()
		items := make([]Value, len(elems))
		for i, e := range elems {
			items[i] = Materialize(e)
		}
		return Array(items)
	case KindString:
		return String(n.(ScalarNode).Raw().(string))
	case KindNumber:
		raw := n.(ScalarNode).Raw()
		switch x := raw.(type) {
		case float64:
			return Number(x)
		case int:
			return Number(float64(x))
		case int64:
			return Number(float64(x))
		default:
			return Null()
		}
	case KindBool:
		return Bool(n.(ScalarNode).Raw().(bool))
	default:
		return Null()
	}
}
