/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package pipeline_test

import (
	"testing"

	"bennypowers.dev/asimonim/diagnostic"
	"bennypowers.dev/asimonim/document"
	"bennypowers.dev/asimonim/ignore"
	"bennypowers.dev/asimonim/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEndToEnd(t *testing.T) {
	doc, err := document.Parse("tokens.json", []byte(`{
		"$type": "color",
		"color": {
			"red": {"$value": "#ff0000"},
			"danger": {"$value": "{color.red}"}
		}
	}`))
	require.NoError(t, err)

	result, err := pipeline.Run([]*document.Document{doc}, pipeline.Options{}, diagnostic.NewCollectingLogger())
	require.NoError(t, err)

	danger, ok := result.Tokens.Get("#/color/danger")
	require.True(t, ok)
	assert.Equal(t, "color", danger.Type)
	assert.Equal(t, "#ff0000", danger.Value.String())
	assert.Equal(t, "color.red", danger.AliasOf)
}

func TestRunAppliesIgnoreConfig(t *testing.T) {
	doc, err := document.Parse("tokens.json", []byte(`{
		"color": {
			"legacy": {"$value": "#000", "$deprecated": true},
			"current": {"$value": "#fff"}
		}
	}`))
	require.NoError(t, err)

	result, err := pipeline.Run([]*document.Document{doc}, pipeline.Options{Ignore: ignore.Config{Deprecated: true}}, diagnostic.NewCollectingLogger())
	require.NoError(t, err)

	_, ok := result.Tokens.Get("#/color/legacy")
	assert.False(t, ok)
	_, ok = result.Tokens.Get("#/color/current")
	assert.True(t, ok)
}

func TestRunMultipleDocuments(t *testing.T) {
	base, err := document.Parse("base.json", []byte(`{"color": {"red": {"$value": "#f00", "$type": "color"}}}`))
	require.NoError(t, err)
	theme, err := document.Parse("theme.json", []byte(`{"color": {"danger": {"$value": "{color.red}", "$type": "color"}}}`))
	require.NoError(t, err)

	result, err := pipeline.Run([]*document.Document{base, theme}, pipeline.Options{}, diagnostic.NewCollectingLogger())
	require.NoError(t, err)

	danger, ok := result.Tokens.Get("#/color/danger")
	require.True(t, ok)
	assert.Equal(t, "#f00", danger.Value.String())
}
