/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package ignore implements the Token Normalizer's ignore filters
// (spec §4.C step 7, §6): drop a token whose resolved $deprecated is
// truthy, or whose dotted id matches a configured glob.
//
// The teacher already ships github.com/bmatcuk/doublestar/v4 to expand
// file-path globs in config/loader.go; this package repurposes the same
// matcher for token-id globs, so "color.brand.*" and
// "**.deprecated.*" work exactly like the teacher's file patterns.
package ignore

import "github.com/bmatcuk/doublestar/v4"

// Config mirrors spec §6's ignore configuration shape.
type Config struct {
	// Deprecated drops tokens whose resolved $deprecated is truthy.
	Deprecated bool
	// Tokens is a list of doublestar glob patterns matched against the
	// token's dotted id.
	Tokens []string
}

// ShouldIgnore reports whether a fully-assembled token (id, resolved
// deprecated flag) should be dropped per cfg.
func (cfg Config) ShouldIgnore(id string, deprecated bool) bool {
	if cfg.Deprecated && deprecated {
		return true
	}
	for _, pattern := range cfg.Tokens {
		if ok, _ := doublestar.Match(pattern, id); ok {
			return true
		}
	}
	return false
}
