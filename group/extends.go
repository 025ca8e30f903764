/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package group

import (
	"fmt"
	"strings"

	"bennypowers.dev/asimonim/document"
	"bennypowers.dev/asimonim/schema"
)

// ApplyExtends runs the $extends pre-pass (DTCG 2025.10) over a parsed
// document before Phase 1 walking begins: a group's $extends JSON
// Pointer splices the extended group's members into the extending
// group, with the extending group's own members taking precedence by
// terminal name. It returns an overlay tree; the original parse tree
// is left untouched.
//
// Adapted from the teacher's resolver/extends.go, which walked a raw
// map[string]any copying and rewriting token paths. Operating on
// document.ObjectNode instead means the copied members simply appear
// at their new position in the overlay tree, so no path/name rewrite
// step is needed — the walker derives a token's path from where it
// finds the node, not from anything carried on the value itself.
func ApplyExtends(root document.ObjectNode) (document.ObjectNode, error) {
	memo := make(map[string]document.ObjectNode)
	visiting := make(map[string]bool)
	result, err := transformExtends("", root, root, visiting, memo)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func transformExtends(ptr string, node, root document.ObjectNode, visiting map[string]bool, memo map[string]document.ObjectNode) (document.ObjectNode, error) {
	if cached, ok := memo[ptr]; ok {
		return cached, nil
	}
	if visiting[ptr] {
		return nil, fmt.Errorf("circular $extends reference at %q: %w", pointerOrRoot(ptr), schema.ErrCircularReference)
	}
	visiting[ptr] = true
	defer delete(visiting, ptr)

	override := make(map[string]document.Node)
	for _, m := range node.Members() {
		childObj, ok := m.Value.(document.ObjectNode)
		if !ok {
			continue
		}
		childPtr := ptr + "/" + escapePointerSegment(m.Name)
		newChild, err := transformExtends(childPtr, childObj, root, visiting, memo)
		if err != nil {
			return nil, err
		}
		if newChild != childObj {
			override[m.Name] = newChild
		}
	}

	var result document.ObjectNode = node
	if len(override) > 0 {
		result = &overlayObject{base: node, override: override}
	}

	if extendsVal, ok := node.Member("$extends"); ok {
		targetPtr, ok := asString(extendsVal)
		if ok {
			targetNode, err := lookupPointer(root, targetPtr)
			if err != nil {
				return nil, fmt.Errorf("$extends target %q: %w", targetPtr, err)
			}
			resolvedTarget, err := transformExtends(targetPtr, targetNode, root, visiting, memo)
			if err != nil {
				return nil, err
			}
			extra := extraMembers(result, resolvedTarget)
			if len(extra) > 0 {
				ov, ok := result.(*overlayObject)
				if !ok {
					ov = &overlayObject{base: result}
				}
				ov.extra = append(ov.extra, extra...)
				result = ov
			}
		}
	}

	memo[ptr] = result
	return result, nil
}

// extraMembers returns target's members not already present (by name)
// on have, in target's own order.
func extraMembers(have, target document.ObjectNode) []document.Member {
	var extra []document.Member
	for _, m := range target.Members() {
		if m.Name == "$extends" {
			continue
		}
		if _, ok := have.Member(m.Name); ok {
			continue
		}
		extra = append(extra, m)
	}
	return extra
}

func lookupPointer(root document.ObjectNode, pointer string) (document.ObjectNode, error) {
	p := strings.TrimPrefix(pointer, "#")
	p = strings.TrimPrefix(p, "/")
	var cur document.Node = root
	if p == "" {
		return root, nil
	}
	for _, seg := range strings.Split(p, "/") {
		seg = unescapePointerSegment(seg)
		obj, ok := cur.(document.ObjectNode)
		if !ok {
			return nil, fmt.Errorf("segment %q is not an object: %w", seg, schema.ErrUnresolvedReference)
		}
		next, ok := obj.Member(seg)
		if !ok {
			return nil, fmt.Errorf("no member %q: %w", seg, schema.ErrUnresolvedReference)
		}
		cur = next
	}
	obj, ok := cur.(document.ObjectNode)
	if !ok {
		return nil, fmt.Errorf("does not resolve to an object: %w", schema.ErrUnresolvedReference)
	}
	return obj, nil
}

func escapePointerSegment(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}

func unescapePointerSegment(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	s = strings.ReplaceAll(s, "~0", "~")
	return s
}

func pointerOrRoot(ptr string) string {
	if ptr == "" {
		return "#/"
	}
	return "#" + ptr
}

// overlayObject layers member replacements and additions over a base
// ObjectNode without mutating it, so $extends splicing and the
// post-order child-replacement it requires can be expressed against
// an otherwise read-only parse tree.
type overlayObject struct {
	base     document.ObjectNode
	override map[string]document.Node
	extra    []document.Member
}

func (o *overlayObject) Kind() document.Kind         { return document.KindObject }
func (o *overlayObject) Location() document.Location { return o.base.Location() }

func (o *overlayObject) Members() []document.Member {
	out := make([]document.Member, 0, len(o.base.Members())+len(o.extra))
	for _, m := range o.base.Members() {
		if v, ok := o.override[m.Name]; ok {
			out = append(out, document.Member{Name: m.Name, Value: v})
		} else {
			out = append(out, m)
		}
	}
	out = append(out, o.extra...)
	return out
}

func (o *overlayObject) Member(name string) (document.Node, bool) {
	if v, ok := o.override[name]; ok {
		return v, true
	}
	if v, ok := o.base.Member(name); ok {
		return v, true
	}
	for _, m := range o.extra {
		if m.Name == name {
			return m.Value, true
		}
	}
	return nil, false
}
