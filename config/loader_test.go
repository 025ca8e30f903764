/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"testing"

	"bennypowers.dev/asimonim/schema"
	"bennypowers.dev/asimonim/testutil"
)

func TestLoad_SimpleYAML(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/simple", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if len(cfg.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(cfg.Files))
	}

	if cfg.Files[0].Path != "./tokens.json" {
		t.Errorf("expected file path './tokens.json', got %q", cfg.Files[0].Path)
	}

	if cfg.Schema != "draft" {
		t.Errorf("expected schema 'draft', got %q", cfg.Schema)
	}

	if cfg.SchemaVersion() != schema.Draft {
		t.Errorf("expected schema version Draft, got %v", cfg.SchemaVersion())
	}

	if !cfg.Ignore.Deprecated {
		t.Errorf("expected ignore.deprecated true")
	}
}

func TestLoad_JSON(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/per-file-overrides", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if len(cfg.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(cfg.Files))
	}

	if cfg.Files[0].Path != "./tokens/base.json" {
		t.Errorf("expected path './tokens/base.json', got %q", cfg.Files[0].Path)
	}

	if cfg.Files[1].Path != "./tokens/theme.json" {
		t.Errorf("expected path './tokens/theme.json', got %q", cfg.Files[1].Path)
	}

	if cfg.SchemaVersion() != schema.V2025_10 {
		t.Errorf("expected schema version V2025_10, got %v", cfg.SchemaVersion())
	}
}

func TestLoad_NotFound(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/draft/simple", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg != nil {
		t.Errorf("expected nil config when not found, got %+v", cfg)
	}
}

func TestLoadOrDefault_Found(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/simple", "/project")

	cfg := LoadOrDefault(mfs, "/project")
	if cfg.Schema != "draft" {
		t.Errorf("expected schema 'draft', got %q", cfg.Schema)
	}
}

func TestLoadOrDefault_NotFound(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/draft/simple", "/project")

	cfg := LoadOrDefault(mfs, "/project")
	if cfg == nil {
		t.Fatal("expected default config, got nil")
	}

	if len(cfg.Files) != 0 {
		t.Errorf("expected no files in default, got %v", cfg.Files)
	}
}

func TestConfig_FilePaths(t *testing.T) {
	cfg := &Config{
		Files: []FileSpec{
			{Path: "./tokens.json"},
			{Path: "./vendor/tokens.json"},
			{Path: "./other/*.yaml"},
		},
	}

	paths := cfg.FilePaths()
	if len(paths) != 3 {
		t.Fatalf("expected 3 paths, got %d", len(paths))
	}

	expected := []string{
		"./tokens.json",
		"./vendor/tokens.json",
		"./other/*.yaml",
	}

	for i, path := range paths {
		if path != expected[i] {
			t.Errorf("paths[%d]: expected %q, got %q", i, expected[i], path)
		}
	}
}

func TestFileSpec_UnmarshalYAML_String(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/simple", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// simple config has files as strings
	if cfg.Files[0].Path != "./tokens.json" {
		t.Errorf("expected path './tokens.json', got %q", cfg.Files[0].Path)
	}
}

func TestFileSpec_UnmarshalJSON_Object(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/per-file-overrides", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// per-file-overrides has its second file as an object
	if cfg.Files[1].Path != "./tokens/theme.json" {
		t.Errorf("expected path './tokens/theme.json', got %q", cfg.Files[1].Path)
	}
}

func TestConfig_SchemaVersion_Invalid(t *testing.T) {
	cfg := &Config{Schema: "invalid"}
	if cfg.SchemaVersion() != schema.Unknown {
		t.Errorf("expected Unknown for invalid schema, got %v", cfg.SchemaVersion())
	}
}

func TestConfig_SchemaVersion_Empty(t *testing.T) {
	cfg := &Config{}
	if cfg.SchemaVersion() != schema.Unknown {
		t.Errorf("expected Unknown for empty schema, got %v", cfg.SchemaVersion())
	}
}
