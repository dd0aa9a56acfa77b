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

package jamo

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"
)

// The range of precomposed Hangul syllables.
const (
	FirstSyllable rune = 0xAC00
	LastSyllable  rune = 0xD7A3
)

// Compose returns the precomposed syllable consisting of the leading
// consonant l, the vowel v and the optional trailing consonant t.
// Use t=0 for syllables without a trailing consonant.
func Compose(l, v, t rune) (rune, bool) {
	if sk, ok := SubkindOf(l); !ok || sk.Kind() != Leading {
		return 0, false
	}
	if k, ok := KindOf(v); !ok || k.Role() != RoleVowel {
		return 0, false
	}
	seq := []rune{l, v}
	if t != 0 {
		if k, ok := KindOf(t); !ok || k != Trailing {
			return 0, false
		}
		seq = append(seq, t)
	}

	composed := []rune(norm.NFC.String(string(seq)))
	if len(composed) != 1 || composed[0] < FirstSyllable || composed[0] > LastSyllable {
		return 0, false
	}
	return composed[0], true
}

// Decompose splits a precomposed syllable into its conjoining jamo.
// The trailing consonant t is 0 if the syllable has none.
func Decompose(s rune) (l, v, t rune, ok bool) {
	if s < FirstSyllable || s > LastSyllable {
		return 0, 0, 0, false
	}
	parts := []rune(norm.NFD.String(string(s)))
	switch len(parts) {
	case 2:
		return parts[0], parts[1], 0, true
	case 3:
		return parts[0], parts[1], parts[2], true
	default:
		return 0, 0, 0, false
	}
}

// Name returns a human readable description of the jamo r,
// for example "ᄀ (U+1100 HANGUL CHOSEONG KIYEOK)".
func Name(r rune) string {
	return fmt.Sprintf("%c (U+%04X %s)", r, r, runenames.Name(r))
}
