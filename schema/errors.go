/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package schema

import "errors"

// Sentinel errors for schema operations. Each is actually wrapped with
// %w at its one call site rather than declared speculatively.
var (
	// ErrUnknownVersion indicates an unrecognized schema version string
	// or URL. Wrapped by FromString and FromURL below.
	ErrUnknownVersion = errors.New("unknown schema version")

	// ErrCircularReference indicates a $extends chain revisits a group
	// already being resolved. Wrapped by group.ApplyExtends.
	ErrCircularReference = errors.New("circular reference detected")

	// ErrUnresolvedReference indicates a $extends JSON Pointer does not
	// resolve to a group in the document. Wrapped by group.ApplyExtends.
	ErrUnresolvedReference = errors.New("unresolved token reference")
)
