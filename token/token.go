/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token implements the Token Normalizer (spec §4.C): it turns
// a token-classified document node into a Normalized record with
// per-mode state, ready for the alias resolver to mutate in place.
package token

import (
	"strings"

	"bennypowers.dev/asimonim/document"
	"bennypowers.dev/asimonim/group"
	"bennypowers.dev/asimonim/ignore"
	"bennypowers.dev/asimonim/natsort"
)

// Source is a weak back-reference from a token (or one of its modes)
// to the AST node it came from, kept only for diagnostics.
type Source struct {
	Filename string
	Node     document.Node
}

// ModeState mirrors a token's mode-scoped alias fields (aliasOf,
// aliasChain), plus the mode-local value. aliasedBy, dependencies, and
// partialAliasOf are tracked only at the token root: the Graph Linker
// writes them keyed by the owning token regardless of which mode's
// reference site produced them.
type ModeState struct {
	Name          string
	Value         document.Value
	OriginalValue document.Value
	Source        Source

	AliasOf    string
	HasAliasOf bool
	AliasChain []string
}

// Normalized is a TokenNormalized (spec §3).
type Normalized struct {
	ID     string
	JSONID string

	Type        string
	HasType     bool
	Description string
	HasDesc     bool
	Deprecated  bool
	HasDep      bool

	Value      document.Value
	Extensions document.Value
	HasExt     bool

	Group  *group.Normalized
	Source Source

	// Modes is keyed by mode name; ModeOrder lists names deterministically
	// with "." first, then the rest in natural ascending order.
	Modes     map[string]*ModeState
	ModeOrder []string

	AliasOf    string
	HasAliasOf bool
	AliasChain []string

	AliasedBy      []string
	Dependencies   []string
	PartialAliasOf document.Value
	HasPartial     bool
}

// DefaultMode is the always-present mode name.
const DefaultMode = "."

// Set is the flat token set, keyed by jsonID, preserving the
// insertion (walk) order required for deterministic iteration.
type Set struct {
	byID  map[string]*Normalized
	order []string
}

// NewSet creates an empty flat token set.
func NewSet() *Set {
	return &Set{byID: make(map[string]*Normalized)}
}

// Add registers a newly normalized token, keyed by its jsonID.
func (s *Set) Add(t *Normalized) {
	if _, exists := s.byID[t.JSONID]; !exists {
		s.order = append(s.order, t.JSONID)
	}
	s.byID[t.JSONID] = t
}

// Get looks up a token by jsonID ("#/a/b").
func (s *Set) Get(jsonID string) (*Normalized, bool) {
	t, ok := s.byID[jsonID]
	return t, ok
}

// All returns every token in insertion (walk) order.
func (s *Set) All() []*Normalized {
	out := make([]*Normalized, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Normalize implements normalizeToken (spec §4.C). It returns (nil,
// false) if the token is dropped by an ignore filter.
//
// The ignore check runs as soon as id and the resolved $deprecated
// are both known — after materializing the node but before
// registering the token with its group or building any mode state —
// rather than after step 7's literal position at the end of assembly.
// Doing it after modes are built would, for a dropped token, leave its
// group's tokens list and its mode map referencing a record that is
// never returned to the pipeline (the dangling-entry risk the Open
// Question on pre-ignore mode extraction flags); checking as early as
// the inputs allow avoids ever constructing that state.
func Normalize(node document.ObjectNode, path []string, groups *group.Indexer, filename string, ignoreCfg ignore.Config) (*Normalized, bool) {
	id := group.DottedID(path)
	jsonID := group.JSONID(path)
	groupPath := path[:len(path)-1]
	groupJSONID := group.JSONID(groupPath)
	g := groups.Get(groupJSONID)

	originalObject := document.Materialize(node)

	t := &Normalized{
		ID:     id,
		JSONID: jsonID,
		Group:  g,
		Source: Source{Filename: filename, Node: node},
		Modes:  make(map[string]*ModeState),
	}

	if v, ok := originalObject.Field("$type"); ok && v.Kind() == document.KindString {
		t.Type, t.HasType = v.String(), true
	} else if gt, ok := groups.Type(groupPath); ok {
		t.Type, t.HasType = gt, true
	}

	if v, ok := originalObject.Field("$description"); ok && v.Kind() == document.KindString {
		t.Description, t.HasDesc = v.String(), true
	}

	if v, ok := originalObject.Field("$deprecated"); ok && v.Kind() == document.KindBool {
		t.Deprecated, t.HasDep = v.Bool(), true
	} else if gd, ok := groups.Deprecated(groupPath); ok {
		t.Deprecated, t.HasDep = gd, true
	}

	if v, ok := originalObject.Field("$value"); ok {
		t.Value = v
	}

	if v, ok := originalObject.Field("$extensions"); ok {
		t.Extensions, t.HasExt = v, true
	}

	if ignoreCfg.ShouldIgnore(t.ID, t.HasDep && t.Deprecated) {
		return nil, false
	}

	groups.AddToken(groupJSONID, t.ID)

	valueSource := t.Source
	if valNode, ok := node.Member("$value"); ok {
		valueSource = Source{Filename: filename, Node: valNode}
	}
	t.Modes[DefaultMode] = &ModeState{
		Name:          DefaultMode,
		Value:         t.Value,
		OriginalValue: t.Value,
		Source:        valueSource,
	}
	t.ModeOrder = []string{DefaultMode}

	if ext, ok := t.Extensions.Field("mode"); ok && ext.Kind() == document.KindObject {
		modeNode, _ := modeExtensionNode(node)
		names := ext.ObjectKeys()
		extra := make([]string, 0, len(names))
		for _, name := range names {
			if name == DefaultMode {
				continue
			}
			extra = append(extra, name)
		}
		natsort.Strings(extra)
		for _, name := range extra {
			mv, _ := ext.Field(name)
			src := t.Source
			if modeNode != nil {
				if n, ok := modeNode.Member(name); ok {
					src = Source{Filename: filename, Node: n}
				}
			}
			t.Modes[name] = &ModeState{
				Name:          name,
				Value:         mv,
				OriginalValue: mv,
				Source:        src,
			}
			t.ModeOrder = append(t.ModeOrder, name)
		}
	}

	return t, true
}

func modeExtensionNode(node document.ObjectNode) (document.ObjectNode, bool) {
	extNode, ok := node.Member("$extensions")
	if !ok {
		return nil, false
	}
	extObj, ok := extNode.(document.ObjectNode)
	if !ok {
		return nil, false
	}
	modeNode, ok := extObj.Member("mode")
	if !ok {
		return nil, false
	}
	modeObj, ok := modeNode.(document.ObjectNode)
	return modeObj, ok
}

// RefToTokenID converts a JSON Pointer like "#/color/brand/100/$value"
// (or a bare "#/color/brand/100") into the dotted token id
// "color.brand.100" (spec §6, "JSON Pointer → token ID").
func RefToTokenID(ref string) string {
	p := strings.TrimPrefix(ref, "#/")
	segs := strings.Split(p, "/")
	if len(segs) > 0 && segs[len(segs)-1] == "$value" {
		segs = segs[:len(segs)-1]
	} else {
		for i, s := range segs {
			if s == "$value" {
				segs = segs[:i]
				break
			}
		}
	}
	for i, s := range segs {
		s = strings.ReplaceAll(s, "~1", "/")
		s = strings.ReplaceAll(s, "~0", "~")
		segs[i] = s
	}
	return strings.Join(segs, ".")
}

// RootRef strips a trailing "/$value" (and anything after) from a
// siteID, yielding the ref of the owning token (spec §4.E step 1).
func RootRef(siteID string) string {
	idx := strings.Index(siteID, "/$value")
	if idx < 0 {
		return siteID
	}
	return siteID[:idx]
}
