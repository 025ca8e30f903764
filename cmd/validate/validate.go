/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validate provides the validate command for asimonim.
package validate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bennypowers.dev/asimonim/config"
	"bennypowers.dev/asimonim/diagnostic"
	"bennypowers.dev/asimonim/document"
	"bennypowers.dev/asimonim/fs"
	"bennypowers.dev/asimonim/ignore"
	"bennypowers.dev/asimonim/pipeline"
	"bennypowers.dev/asimonim/schema"
	"bennypowers.dev/asimonim/validator"
)

// Cmd is the validate cobra command.
var Cmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate design token files",
	Long:  `Validate design token files for schema consistency, alias resolvability, and cycles.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().Bool("strict", false, "Fail on warnings")
	Cmd.Flags().Bool("quiet", false, "Only output errors")
}

func run(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	strict, _ := cmd.Flags().GetBool("strict")
	schemaFlag, _ := cmd.Flags().GetString("schema")

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
			return fmt.Errorf("error resolving config files: %w", err)
		}
		paths = expanded
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files specified and no files found in config")
	}

	var forcedVersion schema.Version
	if schemaFlag != "" {
		forcedVersion, err = schema.FromString(schemaFlag)
		if err != nil {
			return fmt.Errorf("invalid schema version: %s", schemaFlag)
		}
	} else {
		forcedVersion = cfg.SchemaVersion()
	}

	hasErrors := false
	hasWarnings := false
	var docs []*document.Document

	for _, path := range paths {
		if !quiet {
			fmt.Printf("Validating %s...\n", path)
		}

		data, err := filesystem.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		version := forcedVersion
		if version == schema.Unknown {
			version, err = schema.DetectVersion(data, nil)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error detecting schema for %s: %v\n", path, err)
				hasErrors = true
				continue
			}
		}

		for _, ve := range validator.ValidateConsistencyWithPath(data, version, path) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", ve.Error())
			hasErrors = true
		}

		doc, err := document.Parse(path, data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", path, err)
			hasErrors = true
			continue
		}
		docs = append(docs, doc)
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	logger := diagnostic.NewCollectingLogger()
	result, err := pipeline.Run(docs, pipeline.Options{Ignore: ignore.Config{}}, logger)
	if err != nil {
		return fmt.Errorf("normalization failed: %w", err)
	}

	if logger.HasKind(diagnostic.CircularAlias) {
		for _, d := range logger.Diagnostics {
			if d.Kind == diagnostic.CircularAlias {
				fmt.Fprintf(os.Stderr, "Error: %s\n", d.String())
			}
		}
		return fmt.Errorf("validation failed")
	}

	if logger.HasKind(diagnostic.UnresolvedAlias) || logger.HasKind(diagnostic.TypeMismatch) || logger.HasKind(diagnostic.InvalidAliasSyntax) {
		hasWarnings = true
		if !quiet {
			for _, d := range logger.Diagnostics {
				fmt.Fprintf(os.Stderr, "Warning: %s\n", d.String())
			}
		}
	}

	deprecatedCount := 0
	for _, t := range result.Tokens.All() {
		if t.HasDep && t.Deprecated {
			deprecatedCount++
		}
	}
	if deprecatedCount > 0 {
		hasWarnings = true
		if !quiet {
			fmt.Fprintf(os.Stderr, "Warning: %d deprecated token(s)\n", deprecatedCount)
		}
	}

	if !quiet {
		fmt.Printf("%d tokens checked\n", len(result.Tokens.All()))
	}

	if strict && hasWarnings {
		return fmt.Errorf("validation failed due to warnings (strict mode)")
	}

	if !quiet {
		fmt.Println("All files valid.")
	}
	return nil
}
