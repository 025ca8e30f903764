/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolve

// CompositeSlots enumerates, for each composite DTCG $type, the
// nested-alias slots within its $value object and the $types an alias
// in that slot is allowed to target (spec §4.D, reproduced verbatim).
var CompositeSlots = map[string]map[string][]string{
	"border": {
		"color":  {"color"},
		"stroke": {"strokeStyle"},
		"width":  {"dimension"},
	},
	"gradient": {
		"color":    {"color"},
		"position": {"number"},
	},
	"shadow": {
		"color":   {"color"},
		"offsetX": {"dimension"},
		"offsetY": {"dimension"},
		"blur":    {"dimension"},
		"spread":  {"dimension"},
		"inset":   {"boolean"},
	},
	"strokeStyle": {
		"dashArray": {"dimension"},
	},
	"transition": {
		"duration":       {"duration"},
		"delay":          {"duration"},
		"timingFunction": {"cubicBezier"},
	},
	"typography": {
		"fontFamily":    {"fontFamily"},
		"fontWeight":    {"fontWeight"},
		"fontSize":      {"dimension"},
		"lineHeight":    {"dimension", "number"},
		"letterSpacing": {"dimension"},
	},
}
