/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package diagnostic provides the core's diagnostic sink. The core
// never throws on malformed input — every recoverable condition is
// reported through a Logger and traversal continues. This mirrors the
// teacher's internal/logger (silenceable via SetOutput), generalized
// from free-text Warn/Info/Debug to structured Diagnostic values so a
// CLI, a test, or an LSP can filter and render by Kind.
package diagnostic

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"bennypowers.dev/asimonim/document"
)

// Kind identifies one of the four diagnostic conditions the alias
// resolver can report.
type Kind int

const (
	// InvalidAliasSyntax: a non-alias string contains '{' or '}' where
	// an alias was expected. Recovery: value left unchanged.
	InvalidAliasSyntax Kind = iota

	// UnresolvedAlias: the alias target is not present in the token set.
	// Recovery: site left unchanged, no dependencies/aliasOf entry.
	UnresolvedAlias

	// CircularAlias: the alias chain revisits a $ref already in the
	// current chain. Recovery: traversal stops at the cycle point.
	CircularAlias

	// TypeMismatch: the target token's $type is not in the expected set
	// for the alias site. Recovery: site left unchanged, ref still
	// recorded.
	TypeMismatch
)

func (k Kind) String() string {
	switch k {
	case InvalidAliasSyntax:
		return "InvalidAliasSyntax"
	case UnresolvedAlias:
		return "UnresolvedAlias"
	case CircularAlias:
		return "CircularAlias"
	case TypeMismatch:
		return "TypeMismatch"
	default:
		return "Unknown"
	}
}

// Diagnostic is one reported condition, carrying enough to both render
// a human-facing message and point back at the offending source node.
type Diagnostic struct {
	Kind    Kind
	Group   string // e.g. "parser"
	Label   string // e.g. "init"
	Message string
	Node    document.Node
	Source  string // filename
}

func (d Diagnostic) String() string {
	if d.Source != "" && d.Node != nil {
		loc := d.Node.Location()
		return fmt.Sprintf("%s:%d:%d: %s", d.Source, loc.Line, loc.Column, d.Message)
	}
	return d.Message
}

// Logger is the abstract diagnostic sink every component consumes.
// Implementations MUST NOT panic or exit on a logical error — Error
// just records/reports and returns.
type Logger interface {
	Error(d Diagnostic)
}

// StderrLogger is the default Logger, printing to stderr. Set its
// output to io.Discard to silence it entirely (LSP/MCP integrations).
type StderrLogger struct {
	mu     sync.Mutex
	output io.Writer
	logger *log.Logger
}

// NewStderrLogger creates a Logger that writes to os.Stderr by default.
func NewStderrLogger() *StderrLogger {
	l := &StderrLogger{output: os.Stderr}
	l.logger = log.New(l.output, "", 0)
	return l
}

// SetOutput redirects where diagnostics are written. Use io.Discard to
// silence all output.
func (l *StderrLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	l.logger = log.New(w, "", 0)
}

// Error reports a diagnostic.
func (l *StderrLogger) Error(d Diagnostic) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("%s [%s/%s]: %s", d.Kind, d.Group, d.Label, d.String())
}

// CollectingLogger accumulates diagnostics in memory instead of
// printing them — used by the pipeline's tests and by callers that
// want to inspect every diagnostic raised during a run.
type CollectingLogger struct {
	mu          sync.Mutex
	Diagnostics []Diagnostic
}

// NewCollectingLogger creates a Logger that records every Diagnostic.
func NewCollectingLogger() *CollectingLogger {
	return &CollectingLogger{}
}

// Error records a diagnostic.
func (l *CollectingLogger) Error(d Diagnostic) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Diagnostics = append(l.Diagnostics, d)
}

// HasKind reports whether any collected diagnostic has the given Kind.
func (l *CollectingLogger) HasKind(k Kind) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, d := range l.Diagnostics {
		if d.Kind == k {
			return true
		}
	}
	return false
}
