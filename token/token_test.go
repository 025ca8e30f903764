/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token_test

import (
	"testing"

	"bennypowers.dev/asimonim/document"
	"bennypowers.dev/asimonim/group"
	"bennypowers.dev/asimonim/ignore"
	"bennypowers.dev/asimonim/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMember(t *testing.T, obj document.ObjectNode, path ...string) document.ObjectNode {
	t.Helper()
	cur := obj
	for _, p := range path {
		n, ok := cur.Member(p)
		require.True(t, ok, "missing member %q", p)
		obj, ok := n.(document.ObjectNode)
		require.True(t, ok, "member %q is not an object", p)
		cur = obj
	}
	return cur
}

func TestNormalizeBasicFields(t *testing.T) {
	doc, err := document.Parse("tokens.json", []byte(`{
		"color": {
			"$type": "color",
			"brand": {"$value": "#ff0000", "$description": "brand red"}
		}
	}`))
	require.NoError(t, err)

	groups := group.NewIndexer()
	groups.Index(doc.Root, nil)
	colorNode := mustMember(t, doc.Root, "color")
	groups.Index(colorNode, []string{"color"})

	brandNode, ok := colorNode.Member("brand")
	require.True(t, ok)
	brandObj := brandNode.(document.ObjectNode)

	tok, ok := token.Normalize(brandObj, []string{"color", "brand"}, groups, "tokens.json", ignore.Config{})
	require.True(t, ok)

	assert.Equal(t, "color.brand", tok.ID)
	assert.Equal(t, "#/color/brand", tok.JSONID)
	assert.Equal(t, "color", tok.Type)
	assert.True(t, tok.HasType)
	assert.Equal(t, "brand red", tok.Description)
	assert.Equal(t, "#ff0000", tok.Value.String())
	assert.Contains(t, tok.ModeOrder, token.DefaultMode)
}

func TestNormalizeDropsIgnoredToken(t *testing.T) {
	doc, err := document.Parse("tokens.json", []byte(`{
		"color": {
			"legacy": {"$value": "#000", "$deprecated": true}
		}
	}`))
	require.NoError(t, err)

	groups := group.NewIndexer()
	groups.Index(doc.Root, nil)
	colorNode := mustMember(t, doc.Root, "color")
	groups.Index(colorNode, []string{"color"})

	legacyNode, ok := colorNode.Member("legacy")
	require.True(t, ok)
	legacyObj := legacyNode.(document.ObjectNode)

	tok, ok := token.Normalize(legacyObj, []string{"color", "legacy"}, groups, "tokens.json", ignore.Config{Deprecated: true})
	assert.False(t, ok)
	assert.Nil(t, tok)

	g := groups.Get("#/color")
	require.NotNil(t, g)
	assert.NotContains(t, g.Tokens, "color.legacy")
}

func TestNormalizeExtensionModes(t *testing.T) {
	doc, err := document.Parse("tokens.json", []byte(`{
		"color": {
			"brand": {
				"$value": "#fff",
				"$extensions": {
					"mode": {
						"dark": "#000",
						"light": "#fff"
					}
				}
			}
		}
	}`))
	require.NoError(t, err)

	groups := group.NewIndexer()
	groups.Index(doc.Root, nil)
	colorNode := mustMember(t, doc.Root, "color")
	groups.Index(colorNode, []string{"color"})

	brandNode, ok := colorNode.Member("brand")
	require.True(t, ok)
	brandObj := brandNode.(document.ObjectNode)

	tok, ok := token.Normalize(brandObj, []string{"color", "brand"}, groups, "tokens.json", ignore.Config{})
	require.True(t, ok)

	assert.Equal(t, []string{token.DefaultMode, "dark", "light"}, tok.ModeOrder)
	assert.Equal(t, "#000", tok.Modes["dark"].Value.String())
	assert.Equal(t, "#fff", tok.Modes["light"].Value.String())
}

func TestSetAddGetAll(t *testing.T) {
	set := token.NewSet()
	a := &token.Normalized{ID: "a", JSONID: "#/a"}
	b := &token.Normalized{ID: "b", JSONID: "#/b"}
	set.Add(a)
	set.Add(b)
	set.Add(a)

	got, ok := set.Get("#/a")
	require.True(t, ok)
	assert.Equal(t, a, got)

	all := set.All()
	require.Len(t, all, 2)
	assert.Equal(t, "#/a", all[0].JSONID)
	assert.Equal(t, "#/b", all[1].JSONID)
}

func TestRefToTokenID(t *testing.T) {
	assert.Equal(t, "color.brand.100", token.RefToTokenID("#/color/brand/100/$value"))
	assert.Equal(t, "color.brand.100", token.RefToTokenID("#/color/brand/100"))
	assert.Equal(t, "a/b.c~d", token.RefToTokenID("#/a~1b/c~0d"))
}

func TestRootRef(t *testing.T) {
	assert.Equal(t, "#/color/brand", token.RootRef("#/color/brand/$value"))
	assert.Equal(t, "#/color/brand", token.RootRef("#/color/brand/$value/top/left"))
	assert.Equal(t, "#/color/brand", token.RootRef("#/color/brand"))
}
