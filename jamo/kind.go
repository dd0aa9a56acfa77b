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

// Package jamo provides the tables of modern Hangul jamo used to compose
// syllable glyphs.
//
// Jamo are identified by their conjoining code points in the Hangul Jamo
// block (U+1100 to U+11FF).  Every jamo has a [Kind], describing the role it
// plays in a syllable together with the shape of a vowel, and a [Subkind]
// which further distinguishes simple and compound letters.
package jamo

import "fmt"

// Role is the position of a jamo within a syllable.
type Role uint8

// These are the three roles of jamo in a syllable.
const (
	RoleLeading Role = iota + 1
	RoleVowel
	RoleTrailing
)

func (r Role) String() string {
	switch r {
	case RoleLeading:
		return "leading"
	case RoleVowel:
		return "vowel"
	case RoleTrailing:
		return "trailing"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// Kind identifies the combining role of a jamo.
// Vowels are split according to where they are drawn relative to the
// leading consonant.
type Kind uint8

// These are the jamo kinds.
const (
	Leading     Kind = iota + 1
	RightVowel       // vowel to the right of the leading consonant, e.g. ᅡ
	BottomVowel      // vowel below the leading consonant, e.g. ᅩ
	MixedVowel       // vowel wrapping around the leading consonant, e.g. ᅪ
	Trailing
)

var kindNames = map[Kind]string{
	Leading:     "leading",
	RightVowel:  "right-vowel",
	BottomVowel: "bottom-vowel",
	MixedVowel:  "mixed-vowel",
	Trailing:    "trailing",
}

// AllKinds lists the jamo kinds in syllable order.
var AllKinds = []Kind{Leading, RightVowel, BottomVowel, MixedVowel, Trailing}

// Role returns the position of jamo of kind k within a syllable.
func (k Kind) Role() Role {
	switch k {
	case Leading:
		return RoleLeading
	case RightVowel, BottomVowel, MixedVowel:
		return RoleVowel
	case Trailing:
		return RoleTrailing
	default:
		return 0
	}
}

// IsValid reports whether k is one of the defined kinds.
func (k Kind) IsValid() bool {
	_, ok := kindNames[k]
	return ok
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("jamo: invalid kind %d", uint8(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (k *Kind) UnmarshalText(text []byte) error {
	for val, name := range kindNames {
		if name == string(text) {
			*k = val
			return nil
		}
	}
	return fmt.Errorf("jamo: unknown kind %q", text)
}

// Subkind refines a [Kind].
type Subkind uint8

// These are the jamo subkinds.
const (
	LeadingSingle Subkind = iota + 1

	// LeadingDouble is a tense consonant like ᄁ.
	LeadingDouble

	VowelRight
	VowelBottom
	VowelMixed
	TrailingSingle

	// TrailingDouble is a doubled consonant, ᆩ or ᆻ.
	TrailingDouble

	// TrailingStacked is a cluster of two different consonants, like ᆪ.
	TrailingStacked
)

var subkindInfo = map[Subkind]struct {
	name string
	kind Kind
}{
	LeadingSingle:   {"single-leading", Leading},
	LeadingDouble:   {"double-leading", Leading},
	VowelRight:      {"right-vowel", RightVowel},
	VowelBottom:     {"bottom-vowel", BottomVowel},
	VowelMixed:      {"mixed-vowel", MixedVowel},
	TrailingSingle:  {"single-trailing", Trailing},
	TrailingDouble:  {"double-trailing", Trailing},
	TrailingStacked: {"stacked-trailing", Trailing},
}

// AllSubkinds lists all subkinds.
var AllSubkinds = []Subkind{
	LeadingSingle, LeadingDouble,
	VowelRight, VowelBottom, VowelMixed,
	TrailingSingle, TrailingDouble, TrailingStacked,
}

// Kind returns the kind of jamo covered by the subkind.
func (s Subkind) Kind() Kind {
	return subkindInfo[s].kind
}

// IsValid reports whether s is one of the defined subkinds.
func (s Subkind) IsValid() bool {
	_, ok := subkindInfo[s]
	return ok
}

func (s Subkind) String() string {
	if info, ok := subkindInfo[s]; ok {
		return info.name
	}
	return fmt.Sprintf("Subkind(%d)", uint8(s))
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (s Subkind) MarshalText() ([]byte, error) {
	info, ok := subkindInfo[s]
	if !ok {
		return nil, fmt.Errorf("jamo: invalid subkind %d", uint8(s))
	}
	return []byte(info.name), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (s *Subkind) UnmarshalText(text []byte) error {
	for val, info := range subkindInfo {
		if info.name == string(text) {
			*s = val
			return nil
		}
	}
	return fmt.Errorf("jamo: unknown subkind %q", text)
}
