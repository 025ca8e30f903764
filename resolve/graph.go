/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolve

import (
	"strconv"
	"strings"

	"bennypowers.dev/asimonim/document"
	"bennypowers.dev/asimonim/natsort"
	"bennypowers.dev/asimonim/token"
)

// Link implements the Graph Linker (spec §4.E): it consumes a
// ModeRefMap produced by Resolve and populates aliasOf, aliasChain,
// aliasedBy, dependencies, and partialAliasOf across the flat token
// set, then promotes mode "." up to each token's root alias fields.
//
// Adapted from the teacher's resolver/graph.go, whose DependencyGraph
// tracked only whole-token edges for topological sorting. This linker
// additionally threads a siteID (a JSON-Pointer-like path into a
// token's own $value) through every entry, which is what makes
// partial/nested aliasing and precise reverse-link tails possible.
func Link(tokens *token.Set, modeRefMap ModeRefMap) {
	for _, mode := range orderedModes(modeRefMap) {
		for _, siteID := range orderedSiteIDs(modeRefMap[mode]) {
			linkSite(tokens, mode, siteID, modeRefMap[mode][siteID])
		}
		if mode == token.DefaultMode {
			promoteDefaultMode(tokens)
		}
	}

	for _, t := range tokens.All() {
		t.Dependencies = natsort.SortedUnique(t.Dependencies)
		t.AliasedBy = natsort.SortedUnique(t.AliasedBy)
	}
}

func orderedModes(m ModeRefMap) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		if name != token.DefaultMode {
			names = append(names, name)
		}
	}
	natsort.Strings(names)
	if _, ok := m[token.DefaultMode]; ok {
		return append([]string{token.DefaultMode}, names...)
	}
	return names
}

func orderedSiteIDs(sites map[string]RefSite) []string {
	ids := make([]string, 0, len(sites))
	for id := range sites {
		ids = append(ids, id)
	}
	natsort.Strings(ids)
	return ids
}

func promoteDefaultMode(tokens *token.Set) {
	for _, t := range tokens.All() {
		def, ok := t.Modes[token.DefaultMode]
		if !ok {
			continue
		}
		t.AliasOf = def.AliasOf
		t.HasAliasOf = def.HasAliasOf
		t.AliasChain = def.AliasChain
	}
}

func linkSite(tokens *token.Set, mode, siteID string, site RefSite) {
	rootRef := token.RootRef(siteID)
	owner, ok := tokens.Get(rootRef)
	if !ok || len(site.RefChain) == 0 {
		return
	}

	owner.Dependencies = append(owner.Dependencies, site.RefChain...)

	terminalID := token.RefToTokenID(site.RefChain[len(site.RefChain)-1])
	valueSite := rootRef + "/$value"

	switch {
	case siteID == valueSite:
		state, ok := owner.Modes[mode]
		if !ok {
			break
		}
		state.AliasOf = terminalID
		state.HasAliasOf = true
		state.AliasChain = make([]string, len(site.RefChain))
		for i, ref := range site.RefChain {
			state.AliasChain[i] = token.RefToTokenID(ref)
		}

	case strings.HasPrefix(siteID, valueSite+"/"):
		sub := siteID[len(valueSite)+1:]
		owner.PartialAliasOf = setLeaf(owner.PartialAliasOf, strings.Split(sub, "/"), document.String(terminalID))
		owner.HasPartial = true
	}

	linkReverse(tokens, siteID, site.RefChain)
}

// linkReverse pushes the downstream tail of [siteID, refChain...],
// reversed, into each upstream token's aliasedBy.
func linkReverse(tokens *token.Set, siteID string, refChain []string) {
	chain := make([]string, 0, len(refChain)+1)
	chain = append(chain, siteID)
	chain = append(chain, refChain...)
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	for i := 0; i < len(chain); i++ {
		tail := chain[i+1:]
		if len(tail) == 0 {
			continue
		}
		owner, ok := tokens.Get(token.RootRef(chain[i]))
		if !ok {
			continue
		}
		for _, tailRef := range tail {
			owner.AliasedBy = append(owner.AliasedBy, token.RefToTokenID(tailRef))
		}
	}
}

// setLeaf builds (or extends) a structural mirror of a $value shape,
// setting the leaf at segs to leaf. Numeric segments index arrays;
// everything else indexes objects.
func setLeaf(root document.Value, segs []string, leaf document.Value) document.Value {
	if len(segs) == 0 {
		return leaf
	}
	seg := segs[0]
	if idx, err := strconv.Atoi(seg); err == nil {
		child := document.Null()
		if root.Kind() == document.KindArray && idx < len(root.Array()) {
			child = root.Array()[idx]
		}
		return root.WithIndex(idx, setLeaf(child, segs[1:], leaf))
	}
	child := document.Null()
	if v, ok := root.Field(seg); ok {
		child = v
	}
	return root.WithField(seg, setLeaf(child, segs[1:], leaf))
}
