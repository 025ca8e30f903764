/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package group_test

import (
	"errors"
	"testing"

	"bennypowers.dev/asimonim/document"
	"bennypowers.dev/asimonim/group"
	"bennypowers.dev/asimonim/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) document.ObjectNode {
	t.Helper()
	doc, err := document.Parse("inline.json", []byte(src))
	require.NoError(t, err)
	return doc.Root
}

func TestIndexerCascade(t *testing.T) {
	root := mustParse(t, `{
		"$type": "color",
		"color": {
			"$description": "brand colors",
			"brand": {
				"primary": {"$value": "#f00"}
			},
			"accent": {
				"$type": "dimension",
				"tint": {"$value": "#0f0"}
			}
		}
	}`)

	ix := group.NewIndexer()
	ix.Index(root, nil)

	colorNode, _ := root.Member("color")
	ix.Index(colorNode.(document.ObjectNode), []string{"color"})

	brandNode, _ := colorNode.(document.ObjectNode).Member("brand")
	ix.Index(brandNode.(document.ObjectNode), []string{"color", "brand"})

	accentNode, _ := colorNode.(document.ObjectNode).Member("accent")
	ix.Index(accentNode.(document.ObjectNode), []string{"color", "accent"})

	typ, ok := ix.Type([]string{"color", "brand"})
	require.True(t, ok)
	assert.Equal(t, "color", typ)

	typ, ok = ix.Type([]string{"color", "accent"})
	require.True(t, ok)
	assert.Equal(t, "dimension", typ)

	desc, ok := ix.Description([]string{"color", "brand"})
	require.True(t, ok)
	assert.Equal(t, "brand colors", desc)
}

func TestIndexerDeprecatedNullishOverride(t *testing.T) {
	root := mustParse(t, `{
		"$deprecated": true,
		"group": {
			"$deprecated": false,
			"token": {"$value": "1"}
		}
	}`)

	ix := group.NewIndexer()
	ix.Index(root, nil)

	groupNode, _ := root.Member("group")
	ix.Index(groupNode.(document.ObjectNode), []string{"group"})

	dep, ok := ix.Deprecated([]string{"group"})
	require.True(t, ok)
	assert.False(t, dep, "explicit false at the group level must override the ancestor's true")

	rootDep, ok := ix.Deprecated(nil)
	require.True(t, ok)
	assert.True(t, rootDep)
}

func TestAddTokenNaturalSort(t *testing.T) {
	ix := group.NewIndexer()
	ix.AddToken("#/scale", "scale.x10")
	ix.AddToken("#/scale", "scale.x2")
	ix.AddToken("#/scale", "scale.x2")

	g := ix.Get("#/scale")
	require.NotNil(t, g)
	assert.Equal(t, []string{"scale.x2", "scale.x10"}, g.Tokens)
}

func TestApplyExtends(t *testing.T) {
	root := mustParse(t, `{
		"base": {
			"$type": "color",
			"primary": {"$value": "#f00"}
		},
		"theme": {
			"$extends": "#/base",
			"primary": {"$value": "#00f"}
		}
	}`)

	overlay, err := group.ApplyExtends(root)
	require.NoError(t, err)

	theme, ok := overlay.Member("theme")
	require.True(t, ok)
	themeObj := theme.(document.ObjectNode)

	typ, ok := themeObj.Member("$type")
	require.True(t, ok, "inherited $type from the extended group")
	assert.Equal(t, document.KindString, typ.Kind())

	primary, ok := themeObj.Member("primary")
	require.True(t, ok)
	primaryObj := primary.(document.ObjectNode)
	val, ok := primaryObj.Member("$value")
	require.True(t, ok)
	assert.Equal(t, "#00f", val.(document.ScalarNode).Raw(), "local primary overrides the extended one")
}

func TestApplyExtendsCycle(t *testing.T) {
	root := mustParse(t, `{
		"a": {"$extends": "#/b"},
		"b": {"$extends": "#/a"}
	}`)

	_, err := group.ApplyExtends(root)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrCircularReference))
}

func TestApplyExtendsUnresolvedTarget(t *testing.T) {
	root := mustParse(t, `{
		"theme": {"$extends": "#/missing"}
	}`)

	_, err := group.ApplyExtends(root)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrUnresolvedReference))
}
