// seehuhn.de/go/hangul - compose Hangul syllable glyphs from jamo outlines
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package extract

import (
	"seehuhn.de/go/hangul/jamo"
	"seehuhn.de/go/hangul/layout"
)

// Examples lists the precomposed syllables which show the jamo r in the
// focus position of the layout l.  The partner jamo are varied in
// representative-first order, so that the first syllables use the most
// neutral partner shapes.
func Examples(l *layout.Layout, r rune) []rune {
	var slots []jamo.Role
	var choices [][]rune
	for _, k := range l.Partners() {
		c := jamo.ByPreference(k)
		if len(c) == 0 {
			return nil
		}
		slots = append(slots, k.Role())
		choices = append(choices, c)
	}

	var res []rune
	idx := make([]int, len(choices))
	for {
		parts := map[jamo.Role]rune{l.Focus.Role(): r}
		for i, role := range slots {
			parts[role] = choices[i][idx[i]]
		}
		if s, ok := jamo.Compose(parts[jamo.RoleLeading], parts[jamo.RoleVowel], parts[jamo.RoleTrailing]); ok {
			res = append(res, s)
		}

		// advance the last partner fastest
		i := len(idx) - 1
		for i >= 0 {
			idx[i]++
			if idx[i] < len(choices[i]) {
				break
			}
			idx[i] = 0
			i--
		}
		if i < 0 {
			return res
		}
	}
}
