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
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTableSizes(t *testing.T) {
	cases := []struct {
		sk Subkind
		n  int
	}{
		{LeadingSingle, 14},
		{LeadingDouble, 5},
		{VowelRight, 9},
		{VowelBottom, 5},
		{VowelMixed, 7},
		{TrailingSingle, 14},
		{TrailingDouble, 2},
		{TrailingStacked, 11},
	}
	for _, c := range cases {
		if got := len(Jamo(c.sk)); got != c.n {
			t.Errorf("%s: got %d jamo, want %d", c.sk, got, c.n)
		}
	}

	if n := len(OfRole(RoleLeading)); n != 19 {
		t.Errorf("got %d leading jamo, want 19", n)
	}
	if n := len(OfRole(RoleVowel)); n != 21 {
		t.Errorf("got %d vowels, want 21", n)
	}
	if n := len(OfRole(RoleTrailing)); n != 27 {
		t.Errorf("got %d trailing jamo, want 27", n)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		r      rune
		sk     Subkind
		compat rune
	}{
		{'ᄀ', LeadingSingle, 'ㄱ'},
		{'ᄁ', LeadingDouble, 'ㄲ'},
		{'ᄒ', LeadingSingle, 'ㅎ'},
		{'ᅡ', VowelRight, 'ㅏ'},
		{'ᅵ', VowelRight, 'ㅣ'},
		{'ᅩ', VowelBottom, 'ㅗ'},
		{'ᅪ', VowelMixed, 'ㅘ'},
		{'ᅴ', VowelMixed, 'ㅢ'},
		{'ᆨ', TrailingSingle, 'ㄱ'},
		{'ᆩ', TrailingDouble, 'ㄲ'},
		{'ᆪ', TrailingStacked, 'ㄳ'},
		{'ᆻ', TrailingDouble, 'ㅆ'},
		{'ᇂ', TrailingSingle, 'ㅎ'},
	}
	for _, c := range cases {
		sk, ok := SubkindOf(c.r)
		if !ok || sk != c.sk {
			t.Errorf("SubkindOf(%U) = %s, %t, want %s", c.r, sk, ok, c.sk)
		}
		compat, ok := Compat(c.r)
		if !ok || compat != c.compat {
			t.Errorf("Compat(%U) = %U, want %U", c.r, compat, c.compat)
		}
	}

	for _, r := range []rune{'A', 'ㄱ', '가', 0x1113} {
		if _, ok := KindOf(r); ok {
			t.Errorf("%U is not a modern conjoining jamo", r)
		}
	}
}

func TestCompose(t *testing.T) {
	cases := []struct {
		l, v, t rune
		s       rune
	}{
		{'ᄀ', 'ᅡ', 0, '가'},
		{'ᄀ', 'ᅡ', 'ᆨ', '각'},
		{'ᄒ', 'ᅵ', 'ᇂ', '힣'},
		{'ᄋ', 'ᅪ', 'ᆼ', '왕'},
	}
	for _, c := range cases {
		s, ok := Compose(c.l, c.v, c.t)
		if !ok || s != c.s {
			t.Errorf("Compose(%U, %U, %U) = %c, %t, want %c", c.l, c.v, c.t, s, ok, c.s)
		}
		l, v, tr, ok := Decompose(c.s)
		if !ok || l != c.l || v != c.v || tr != c.t {
			t.Errorf("Decompose(%c) = %U %U %U", c.s, l, v, tr)
		}
	}

	if _, ok := Compose('ᅡ', 'ᄀ', 0); ok {
		t.Error("composed jamo in the wrong order")
	}
	if _, _, _, ok := Decompose('A'); ok {
		t.Error("decomposed a non-syllable")
	}
}

func TestComposeAll(t *testing.T) {
	count := 0
	for _, l := range OfRole(RoleLeading) {
		for _, v := range OfRole(RoleVowel) {
			for _, tr := range append([]rune{0}, OfRole(RoleTrailing)...) {
				if _, ok := Compose(l, v, tr); !ok {
					t.Fatalf("cannot compose %U %U %U", l, v, tr)
				}
				count++
			}
		}
	}
	if want := int(LastSyllable-FirstSyllable) + 1; count != want {
		t.Errorf("got %d syllables, want %d", count, want)
	}
}

func TestLigatures(t *testing.T) {
	ligs := Ligatures()
	if len(ligs) != 18 {
		t.Fatalf("got %d ligatures, want 18", len(ligs))
	}

	byResult := make(map[rune][]rune)
	for _, lig := range ligs {
		byResult[lig.Result] = lig.Components
	}
	if d := cmp.Diff([]rune{'ᅩ', 'ᅡ', 'ᅵ'}, byResult['ᅫ']); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff([]rune{'ᆯ', 'ᆨ'}, byResult['ᆰ']); d != "" {
		t.Error(d)
	}

	for _, lig := range ligs {
		k, _ := KindOf(lig.Result)
		for _, c := range lig.Components {
			ck, ok := KindOf(c)
			if !ok || ck.Role() != k.Role() {
				t.Errorf("%U: component %U has the wrong role", lig.Result, c)
			}
		}
	}

	// modifying the result must not affect the table
	ligs[0].Components[0] = 0
	if Ligatures()[0].Components[0] == 0 {
		t.Error("Ligatures returned shared data")
	}
}

func TestByPreference(t *testing.T) {
	for _, k := range AllKinds {
		pref := ByPreference(k)
		if len(pref) != len(OfKind(k)) {
			t.Errorf("%s: wrong length", k)
		}
		if pref[0] != Representative(k) {
			t.Errorf("%s: %U is not first", k, Representative(k))
		}
		if got, _ := KindOf(pref[0]); got != k {
			t.Errorf("%s: representative has kind %s", k, got)
		}
	}
}

func TestKindJSON(t *testing.T) {
	type rec struct {
		K  Kind
		SK Subkind
	}
	for _, sk := range AllSubkinds {
		in := rec{K: sk.Kind(), SK: sk}
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatal(err)
		}
		var out rec
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatal(err)
		}
		if out != in {
			t.Errorf("%s: got %v", data, out)
		}
	}

	var k Kind
	if err := k.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestName(t *testing.T) {
	got := Name('ᄀ')
	want := "ᄀ (U+1100 HANGUL CHOSEONG KIYEOK)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
