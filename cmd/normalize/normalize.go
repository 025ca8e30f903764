/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package normalize provides the normalize command for asimonim: it
// runs the full walk/resolve/link pipeline over one or more token
// files and prints the flattened, alias-resolved token set.
package normalize

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bennypowers.dev/asimonim/config"
	"bennypowers.dev/asimonim/diagnostic"
	"bennypowers.dev/asimonim/document"
	"bennypowers.dev/asimonim/fs"
	"bennypowers.dev/asimonim/pipeline"
	"bennypowers.dev/asimonim/token"
)

// Cmd is the normalize cobra command.
var Cmd = &cobra.Command{
	Use:   "normalize [files...]",
	Short: "Normalize design token files into a flat, alias-resolved set",
	Long:  `Normalize walks one or more DTCG token files, cascades group properties, resolves aliases, and prints the flattened token set as JSON.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().Bool("quiet", false, "Suppress diagnostic output")
}

func run(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")

	filesystem := fs.NewOSFileSystem()
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg := config.LoadOrDefault(filesystem, cwd)

	paths := args
	if len(paths) == 0 {
		expanded, err := cfg.ExpandFiles(filesystem, cwd)
		if err != nil {
			return fmt.Errorf("error expanding config files: %w", err)
		}
		paths = expanded
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files specified and no files found in config")
	}

	var docs []*document.Document
	for _, path := range paths {
		data, err := filesystem.ReadFile(path)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", path, err)
		}
		doc, err := document.Parse(path, data)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", path, err)
		}
		docs = append(docs, doc)
	}

	logger := diagnostic.NewStderrLogger()
	if quiet {
		logger.SetOutput(io.Discard)
	}
	result, err := pipeline.Run(docs, pipeline.Options{Ignore: cfg.Ignore}, logger)
	if err != nil {
		return fmt.Errorf("normalization failed: %w", err)
	}

	out := make(map[string]tokenView, len(result.Tokens.All()))
	for _, t := range result.Tokens.All() {
		out[t.JSONID] = newTokenView(t)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// tokenView is the CLI-facing projection of a token.Normalized: plain
// JSON-able fields plus the alias graph edges, omitting the AST
// back-references that exist only for diagnostics.
type tokenView struct {
	ID             string         `json:"id"`
	Type           string         `json:"type,omitempty"`
	Description    string         `json:"description,omitempty"`
	Deprecated     bool           `json:"deprecated,omitempty"`
	Value          any            `json:"value"`
	AliasOf        string         `json:"aliasOf,omitempty"`
	AliasChain     []string       `json:"aliasChain,omitempty"`
	AliasedBy      []string       `json:"aliasedBy,omitempty"`
	Dependencies   []string       `json:"dependencies,omitempty"`
	PartialAliasOf any            `json:"partialAliasOf,omitempty"`
	Modes          map[string]any `json:"modes,omitempty"`
}

func newTokenView(t *token.Normalized) tokenView {
	v := tokenView{
		ID:           t.ID,
		Type:         t.Type,
		Description:  t.Description,
		Deprecated:   t.HasDep && t.Deprecated,
		Value:        t.Value.Native(),
		AliasOf:      t.AliasOf,
		AliasChain:   t.AliasChain,
		AliasedBy:    t.AliasedBy,
		Dependencies: t.Dependencies,
	}
	if t.HasPartial {
		v.PartialAliasOf = t.PartialAliasOf.Native()
	}
	if len(t.ModeOrder) > 1 {
		v.Modes = make(map[string]any, len(t.ModeOrder))
		for _, name := range t.ModeOrder {
			v.Modes[name] = t.Modes[name].Value.Native()
		}
	}
	return v
}
