/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package walker implements the Document Walker (spec §4.A): a
// depth-first traversal of a parsed document tree that classifies
// each object node as token or group, feeding the Group Indexer and
// Token Normalizer in the order the cascade requires (groups before
// their descendant tokens).
//
// Generalizes the teacher's JSONParser.extractTokens (parser/json.go),
// which walked a raw map[string]any building a flat dash-joined Token
// list in one step; here the walk only classifies and dispatches —
// the Group Indexer and Token Normalizer own the actual field
// assembly, so the same walk serves both draft and 2025.10 inputs.
package walker

import (
	"bennypowers.dev/asimonim/document"
	"bennypowers.dev/asimonim/group"
	"bennypowers.dev/asimonim/ignore"
	"bennypowers.dev/asimonim/token"
)

// reservedMembers are DTCG metadata keys that never introduce a child
// group or token when walking an object's members.
var reservedMembers = map[string]bool{
	"$value":       true,
	"$type":        true,
	"$description": true,
	"$deprecated":  true,
	"$extensions":  true,
	"$extends":     true,
	"$schema":      true,
}

// Walk traverses root depth-first, registering every group with
// groups and every non-ignored token with tokens.
func Walk(root document.ObjectNode, filename string, groups *group.Indexer, tokens *token.Set, ignoreCfg ignore.Config) {
	walkNode(root, nil, filename, groups, tokens, ignoreCfg)
}

func walkNode(node document.ObjectNode, path []string, filename string, groups *group.Indexer, tokens *token.Set, ignoreCfg ignore.Config) {
	if isToken(node) {
		if t, ok := token.Normalize(node, path, groups, filename, ignoreCfg); ok {
			tokens.Add(t)
		}
		return
	}

	groups.Index(node, path)

	for _, m := range node.Members() {
		if reservedMembers[m.Name] {
			continue
		}
		childObj, ok := m.Value.(document.ObjectNode)
		if !ok {
			continue
		}
		childPath := make([]string, len(path)+1)
		copy(childPath, path)
		childPath[len(path)] = m.Name
		walkNode(childObj, childPath, filename, groups, tokens, ignoreCfg)
	}
}

// isToken applies spec §4.A's classification rule. A node's own
// $extensions member is never descended into as a set of child
// groups (see reservedMembers), which already keeps anything nested
// under $extensions from ever reaching this function — an equivalent,
// simpler restatement of "classify as token unless $extensions is an
// ancestor on the current path": that ancestor can never be entered in
// the first place.
func isToken(node document.ObjectNode) bool {
	_, ok := node.Member("$value")
	return ok
}
