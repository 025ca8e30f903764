/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve implements the Alias Resolver and Graph Linker
// (spec §4.D, §4.E): it mutates each token's per-mode value in place,
// chasing {dotted.path} aliases transitively and cross-mode, and then
// links the flat token set into a bidirectional alias graph.
//
// Adapted from the teacher's resolver/aliases.go, which only supported
// whole-token aliasing resolved in dependency-sorted order via
// resolver/graph.go's topological sort. This resolver instead chases
// each alias site's transitive chain directly off OriginalValue (which
// never mutates once a token is normalized), so a single top-to-bottom
// pass over tokens in insertion order reaches the same fixed point
// without needing a pre-computed topological order — at the cost that
// a composite token whose nested alias target hasn't itself been
// walked yet may still carry an unresolved inner alias after one pass;
// running Resolve twice converges, matching the idempotence property
// this package's tests exercise.
package resolve

import (
	"fmt"
	"regexp"
	"strings"

	"bennypowers.dev/asimonim/diagnostic"
	"bennypowers.dev/asimonim/document"
	"bennypowers.dev/asimonim/token"
)

var aliasPattern = regexp.MustCompile(`^\{([^{}]+)\}$`)

// RefSite is what the Graph Linker needs about one resolved alias
// occurrence: where it was declared, and the full transitive chain of
// $refs followed to reach its terminal token.
type RefSite struct {
	Filename string
	RefChain []string
}

// ModeRefMap is keyed mode → siteID ("#/.../$value[/sub/path]") → RefSite.
type ModeRefMap map[string]map[string]RefSite

// Resolver walks every token's per-mode value, resolving aliases in
// place and recording every reference site for the Graph Linker.
type Resolver struct {
	tokens     *token.Set
	logger     diagnostic.Logger
	ModeRefMap ModeRefMap
}

// NewResolver creates a Resolver over an already-walked token set.
func NewResolver(tokens *token.Set, logger diagnostic.Logger) *Resolver {
	return &Resolver{tokens: tokens, logger: logger, ModeRefMap: make(ModeRefMap)}
}

// Resolve runs Phase 2 over every token and mode in deterministic
// order, mutating each mode's Value and promoting mode "." to the
// token root.
func (r *Resolver) Resolve() {
	for _, t := range r.tokens.All() {
		expected := expectedTypesForToken(t)
		for _, modeName := range t.ModeOrder {
			state := t.Modes[modeName]
			state.Value = r.resolveValue(state.Value, modeName, t.JSONID+"/$value", expected, state.Source)
		}
		if def, ok := t.Modes[token.DefaultMode]; ok {
			t.Value = def.Value
		}
	}
}

func expectedTypesForToken(t *token.Normalized) []string {
	if t.HasType {
		return []string{t.Type}
	}
	return nil
}

func (r *Resolver) resolveValue(value document.Value, mode, path string, expectedTypes []string, source token.Source) document.Value {
	switch value.Kind() {
	case document.KindArray:
		elemTypes := expectedTypes
		if len(expectedTypes) == 1 && expectedTypes[0] == "cubicBezier" {
			elemTypes = []string{"number"}
		}
		items := value.Array()
		out := make([]document.Value, len(items))
		for i, item := range items {
			out[i] = r.resolveValue(item, mode, fmt.Sprintf("%s/%d", path, i), elemTypes, source)
		}
		return document.Array(out)

	case document.KindObject:
		if len(expectedTypes) == 0 {
			return value
		}
		slots, known := CompositeSlots[expectedTypes[0]]
		if !known {
			return value
		}
		result := value
		for _, key := range value.ObjectKeys() {
			slotTypes, ok := slots[key]
			if !ok {
				continue
			}
			child, _ := value.Field(key)
			result = result.WithField(key, r.resolveValue(child, mode, path+"/"+key, slotTypes, source))
		}
		return result

	case document.KindString:
		return r.resolveString(value, mode, path, expectedTypes, source)

	default:
		return value
	}
}

func (r *Resolver) resolveString(value document.Value, mode, path string, expectedTypes []string, source token.Source) document.Value {
	dotted, isAlias := aliasTarget(value)
	if !isAlias {
		if !permitsString(expectedTypes) && strings.ContainsAny(value.String(), "{}") {
			r.diag(diagnostic.InvalidAliasSyntax, source, "Invalid alias syntax.")
		}
		return value
	}

	resolved, ref, chain, ok := r.chaseAlias(dotted, mode, source, nil)
	if !ok {
		return value
	}

	target, _ := r.tokens.Get(token.RootRef(ref))
	if len(expectedTypes) > 0 && target.HasType && !containsStr(expectedTypes, target.Type) {
		r.diag(diagnostic.TypeMismatch, source, fmt.Sprintf("Cannot alias to $type %q from $type %q.", target.Type, strings.Join(expectedTypes, "|")))
		r.record(mode, path, source.Filename, chain)
		return value
	}

	r.record(mode, path, source.Filename, chain)
	return resolved
}

// chaseAlias follows a dotted alias reference transitively until it
// reaches a token whose mode-local OriginalValue is not itself an
// alias, returning that terminal's current value, the terminal $ref,
// and the full chain walked (source site's ref first, terminal last).
func (r *Resolver) chaseAlias(dotted, mode string, source token.Source, chain []string) (document.Value, string, []string, bool) {
	ref := aliasToRef(dotted)
	for _, c := range chain {
		if c == ref {
			r.diag(diagnostic.CircularAlias, source, "Circular alias detected.")
			return document.Value{}, "", nil, false
		}
	}

	target, ok := r.tokens.Get(token.RootRef(ref))
	if !ok {
		r.diag(diagnostic.UnresolvedAlias, source, fmt.Sprintf("Could not resolve alias {%s}.", dotted))
		return document.Value{}, "", nil, false
	}

	chain = append(append([]string(nil), chain...), ref)

	state, ok := target.Modes[mode]
	if !ok {
		state = target.Modes[token.DefaultMode]
	}
	if nested, isAlias := aliasTarget(state.OriginalValue); isAlias {
		return r.chaseAlias(nested, mode, source, chain)
	}
	return state.Value, ref, chain, true
}

func (r *Resolver) record(mode, path, filename string, chain []string) {
	m, ok := r.ModeRefMap[mode]
	if !ok {
		m = make(map[string]RefSite)
		r.ModeRefMap[mode] = m
	}
	m[path] = RefSite{Filename: filename, RefChain: chain}
}

func (r *Resolver) diag(kind diagnostic.Kind, source token.Source, msg string) {
	r.logger.Error(diagnostic.Diagnostic{
		Kind: kind, Group: "parser", Label: "init",
		Message: msg, Node: source.Node, Source: source.Filename,
	})
}

func aliasTarget(v document.Value) (string, bool) {
	if v.Kind() != document.KindString {
		return "", false
	}
	m := aliasPattern.FindStringSubmatch(v.String())
	if m == nil {
		return "", false
	}
	return m[1], true
}

func permitsString(expectedTypes []string) bool {
	if len(expectedTypes) == 0 {
		return true
	}
	return containsStr(expectedTypes, "string")
}

func containsStr(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

// aliasToRef converts a dotted alias path ("a.b.c") to its JSON
// Pointer $ref form ("#/a/b/c/$value"), per spec §6.
func aliasToRef(dotted string) string {
	segs := strings.Split(dotted, ".")
	for i, s := range segs {
		s = strings.ReplaceAll(s, "~", "~0")
		s = strings.ReplaceAll(s, "/", "~1")
		segs[i] = s
	}
	return "#/" + strings.Join(segs, "/") + "/$value"
}
