/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package group implements the Group Indexer (spec §4.B): a global
// mapping from group path to Normalized, with ancestor-property
// cascade for $type/$description/$deprecated/$extensions.
package group

import (
	"strings"

	"bennypowers.dev/asimonim/document"
	"bennypowers.dev/asimonim/natsort"
)

// Normalized is a GroupNormalized (spec §3): cascaded metadata plus
// the naturally-sorted list of token ids directly in this group.
type Normalized struct {
	ID     string // dotted path, e.g. "color.brand"
	JSONID string // "#/color/brand"

	// localType etc. are what this group's own node declared, before
	// cascade. Cascaded() exposes the effective (inherited) value.
	localType        *string
	localDescription *string
	localDeprecated  *bool
	localExtensions  document.Value
	hasExtensions    bool

	Tokens []string
}

// Indexer owns the groups map keyed by jsonID and performs the
// ancestor-cascade described in spec §4.B.
type Indexer struct {
	groups map[string]*Normalized
	// order preserves first-seen order for deterministic iteration.
	order []string
}

// NewIndexer creates an empty Group Indexer.
func NewIndexer() *Indexer {
	return &Indexer{groups: make(map[string]*Normalized)}
}

// JSONID derives the "#/a/b/c" form from a dotted path's segments.
func JSONID(path []string) string {
	return "#/" + strings.Join(path, "/")
}

// DottedID derives the "a.b.c" form from path segments.
func DottedID(path []string) string {
	return strings.Join(path, ".")
}

// Index registers (or re-registers) a group node at path, applying the
// ancestor cascade and then the node's own local overrides. Index is
// idempotent: calling it again for the same jsonID with the same node
// content reproduces the same Normalized, because cascade is computed
// by walking path's ancestor prefixes fresh every call rather than by
// mutating previously-cascaded state (an explicit, path-based
// restatement of spec §4.B's "iterate every key of groups sorted
// ascending" — sorting group keys ascending is only guaranteed to put
// ancestors before descendants because ids are dotted paths; walking
// path's own prefixes gets the identical nearest-ancestor-wins result
// without relying on that coincidence, per the Open Question in §9).
func (ix *Indexer) Index(node document.ObjectNode, path []string) *Normalized {
	jsonID := JSONID(path)
	g, exists := ix.groups[jsonID]
	if !exists {
		g = &Normalized{ID: DottedID(path), JSONID: jsonID}
		ix.groups[jsonID] = g
		ix.order = append(ix.order, jsonID)
	}

	g.localType = nil
	g.localDescription = nil
	g.localDeprecated = nil
	g.hasExtensions = false

	if v, ok := node.Member("$type"); ok {
		if s, ok := asString(v); ok {
			g.localType = &s
		}
	}
	if v, ok := node.Member("$description"); ok {
		if s, ok := asString(v); ok {
			g.localDescription = &s
		}
	}
	if v, ok := node.Member("$deprecated"); ok {
		if b, ok := asBool(v); ok {
			g.localDeprecated = &b
		}
	}
	if v, ok := node.Member("$extensions"); ok {
		g.localExtensions = document.Materialize(v)
		g.hasExtensions = true
	}

	return g
}

// Get returns the group already indexed at jsonID, or nil.
func (ix *Indexer) Get(jsonID string) *Normalized {
	return ix.groups[jsonID]
}

// AddToken registers tokenID as a direct member of the group at
// jsonID, deduplicated and kept in natural ascending order.
func (ix *Indexer) AddToken(jsonID, tokenID string) {
	g, ok := ix.groups[jsonID]
	if !ok {
		g = &Normalized{ID: dottedFromJSONID(jsonID), JSONID: jsonID}
		ix.groups[jsonID] = g
		ix.order = append(ix.order, jsonID)
	}
	for _, t := range g.Tokens {
		if t == tokenID {
			return
		}
	}
	g.Tokens = append(g.Tokens, tokenID)
	natsort.Strings(g.Tokens)
}

// Type returns the cascaded (inherited) $type for the group at path:
// the group's own $type if set, else the nearest ancestor's.
func (ix *Indexer) Type(path []string) (string, bool) {
	return ix.cascadeString(path, func(g *Normalized) *string { return g.localType })
}

// Description returns the cascaded $description for the group at path.
func (ix *Indexer) Description(path []string) (string, bool) {
	return ix.cascadeString(path, func(g *Normalized) *string { return g.localDescription })
}

// Deprecated returns the cascaded $deprecated for the group at path
// using nullish-override semantics: an explicit false at any level
// shadows an ancestor true, and only a totally-absent value continues
// the search upward.
func (ix *Indexer) Deprecated(path []string) (bool, bool) {
	for i := len(path); i >= 0; i-- {
		jsonID := JSONID(path[:i])
		g, ok := ix.groups[jsonID]
		if !ok {
			continue
		}
		if g.localDeprecated != nil {
			return *g.localDeprecated, true
		}
	}
	return false, false
}

// Extensions returns the cascaded $extensions for the group at path.
func (ix *Indexer) Extensions(path []string) (document.Value, bool) {
	for i := len(path); i >= 0; i-- {
		jsonID := JSONID(path[:i])
		g, ok := ix.groups[jsonID]
		if !ok {
			continue
		}
		if g.hasExtensions {
			return g.localExtensions, true
		}
	}
	return document.Value{}, false
}

func (ix *Indexer) cascadeString(path []string, pick func(*Normalized) *string) (string, bool) {
	for i := len(path); i >= 0; i-- {
		jsonID := JSONID(path[:i])
		g, ok := ix.groups[jsonID]
		if !ok {
			continue
		}
		if v := pick(g); v != nil {
			return *v, true
		}
	}
	return "", false
}

// All returns every indexed group in first-seen order.
func (ix *Indexer) All() []*Normalized {
	out := make([]*Normalized, 0, len(ix.order))
	for _, id := range ix.order {
		out = append(out, ix.groups[id])
	}
	return out
}

func dottedFromJSONID(jsonID string) string {
	return strings.ReplaceAll(strings.TrimPrefix(jsonID, "#/"), "/", ".")
}

func asString(n document.Node) (string, bool) {
	s, ok := n.(document.ScalarNode)
	if !ok || s.Kind() != document.KindString {
		return "", false
	}
	v, ok := s.Raw().(string)
	return v, ok
}

func asBool(n document.Node) (bool, bool) {
	s, ok := n.(document.ScalarNode)
	if !ok || s.Kind() != document.KindBool {
		return false, false
	}
	v, ok := s.Raw().(bool)
	return v, ok
}
