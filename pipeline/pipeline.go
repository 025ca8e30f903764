/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package pipeline orchestrates the normalization core's three phases
// (walk, resolve, link) across one or more parsed documents, in the
// strict deterministic order spec §5 requires.
package pipeline

import (
	"bennypowers.dev/asimonim/diagnostic"
	"bennypowers.dev/asimonim/document"
	"bennypowers.dev/asimonim/group"
	"bennypowers.dev/asimonim/ignore"
	"bennypowers.dev/asimonim/resolve"
	"bennypowers.dev/asimonim/token"
	"bennypowers.dev/asimonim/walker"
)

// Options configures a pipeline run.
type Options struct {
	Ignore ignore.Config
}

// Result is the pipeline's output: the flat token set and the group
// index it was built against.
type Result struct {
	Tokens *token.Set
	Groups *group.Indexer
}

// Run executes Phase 1 (walk) over every document, then Phase 2
// (resolve) and Phase 3 (link) once over the combined token set.
// Documents are walked in the order given; callers that need to merge
// documents across files do so before calling Run (spec.md's Non-goal
// on document merging puts that ahead of this boundary).
func Run(docs []*document.Document, opts Options, logger diagnostic.Logger) (*Result, error) {
	groups := group.NewIndexer()
	tokens := token.NewSet()

	for _, doc := range docs {
		root, err := group.ApplyExtends(doc.Root)
		if err != nil {
			return nil, err
		}
		walker.Walk(root, doc.Filename, groups, tokens, opts.Ignore)
	}

	r := resolve.NewResolver(tokens, logger)
	r.Resolve()
	resolve.Link(tokens, r.ModeRefMap)

	return &Result{Tokens: tokens, Groups: groups}, nil
}
