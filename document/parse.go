/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package document

import (
	"fmt"
	"strconv"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Parse builds a Document from JSON, JSONC (JSON with comments), or YAML
// source. JSON/JSONC is stripped of comments with jsonc.ToJSON first;
// yaml.v3 parses the (now comment-free) result directly, since YAML is
// a structural superset of JSON — this gives one parse pass producing
// both the value tree and source positions, instead of the teacher's
// separate value-pass/position-pass.
func Parse(filename string, src []byte) (*Document, error) {
	clean := jsonc.ToJSON(src)
	if len(clean) == 0 {
		clean = src
	}

	var root yaml.Node
	if err := yaml.Unmarshal(clean, &root); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("parsing %s: empty document", filename)
	}

	docRoot := root.Content[0]
	if docRoot.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing %s: document root must be an object", filename)
	}

	obj, err := newObjectNode(docRoot)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	return &Document{Filename: filename, Src: src, Root: obj}, nil
}

// yamlNode adapts a *yaml.Node leaf (scalar) to the Node/ScalarNode
// interfaces.
type yamlNode struct {
	loc Location
	k   Kind
	raw any
}

func (n *yamlNode) Kind() Kind         { return n.k }
func (n *yamlNode) Location() Location { return n.loc }
func (n *yamlNode) Raw() any           { return n.raw }

// yamlObject adapts a *yaml.Node mapping node.
type yamlObject struct {
	loc     Location
	members []Member
	index   map[string]Node
}

func (o *yamlObject) Kind() Kind         { return KindObject }
func (o *yamlObject) Location() Location { return o.loc }
func (o *yamlObject) Members() []Member  { return o.members }
func (o *yamlObject) Member(name string) (Node, bool) {
	v, ok := o.index[name]
	return v, ok
}

// yamlArray adapts a *yaml.Node sequence node.
type yamlArray struct {
	loc  Location
	elems []Node
}

func (a *yamlArray) Kind() Kind         { return KindArray }
func (a *yamlArray) Location() Location { return a.loc }
func (a *yamlArray) Elements() []Node   { return a.elems }

func newObjectNode(n *yaml.Node) (*yamlObject, error) {
	n = resolveAlias(n)
	obj := &yamlObject{
		loc:   Location{Line: n.Line, Column: n.Column},
		index: make(map[string]Node),
	}
	if len(n.Content)%2 != 0 {
		return nil, fmt.Errorf("malformed mapping node at line %d", n.Line)
	}
	for i := 0; i < len(n.Content); i += 2 {
		keyNode := resolveAlias(n.Content[i])
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("non-string member name at line %d", keyNode.Line)
		}
		valNode, err := newNode(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		m := Member{Name: keyNode.Value, Value: valNode}
		obj.members = append(obj.members, m)
		obj.index[m.Name] = valNode
	}
	return obj, nil
}

func newNode(n *yaml.Node) (Node, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return newObjectNode(n)
	case yaml.SequenceNode:
		arr := &yamlArray{loc: Location{Line: n.Line, Column: n.Column}}
		for _, c := range n.Content {
			elem, err := newNode(c)
			if err != nil {
				return nil, err
			}
			arr.elems = append(arr.elems, elem)
		}
		return arr, nil
	case yaml.ScalarNode:
		return newScalarNode(n), nil
	default:
		return nil, fmt.Errorf("unsupported node kind at line %d", n.Line)
	}
}

func newScalarNode(n *yaml.Node) *yamlNode {
	loc := Location{Line: n.Line, Column: n.Column}
	switch n.Tag {
	case "!!null":
		return &yamlNode{loc: loc, k: KindNull}
	case "!!bool":
		b, _ := strconv.ParseBool(n.Value)
		return &yamlNode{loc: loc, k: KindBool, raw: b}
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return &yamlNode{loc: loc, k: KindString, raw: n.Value}
		}
		return &yamlNode{loc: loc, k: KindNumber, raw: f}
	default:
		return &yamlNode{loc: loc, k: KindString, raw: n.Value}
	}
}

// resolveAlias follows YAML anchors/aliases so documents using them
// normalize the same as their expanded form.
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
