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

package gtab

import (
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
	"seehuhn.de/go/sfnt/glyph"
)

// maxNestingDepth limits the recursion of contextual lookups.
const maxNestingDepth = 16

// FindLookups returns the lookups required to implement the given features
// for the given language, in the order in which they must be applied.
// The language system is looked up by the full tag first, then by the
// script alone, and finally the "DFLT" script is used.
func (info *Info) FindLookups(lang language.Tag, includeFeature map[string]bool) []LookupIndex {
	if info == nil || len(info.ScriptList) == 0 {
		return nil
	}

	candidates := []language.Tag{lang}
	_, script, _ := lang.Raw()
	if script.String() != "Zzzz" {
		if t, err := language.Compose(script); err == nil {
			candidates = append(candidates, t)
		}
	}
	candidates = append(candidates, language.Und)

	var features *Features
	for _, cand := range candidates {
		if f, ok := info.ScriptList[cand]; ok {
			features = f
			break
		}
	}
	if features == nil {
		return nil
	}

	includeLookup := make(map[LookupIndex]bool)
	numFeatures := FeatureIndex(len(info.FeatureList))
	if features.Required < numFeatures {
		for _, l := range info.FeatureList[features.Required].Lookups {
			includeLookup[l] = true
		}
	}
	for _, f := range features.Optional {
		if f >= numFeatures {
			continue
		}
		feature := info.FeatureList[f]
		if !includeFeature[feature.Tag] {
			continue
		}
		for _, l := range feature.Lookups {
			includeLookup[l] = true
		}
	}

	numLookups := LookupIndex(len(info.LookupList))
	var ll []LookupIndex
	for l := range includeLookup {
		if l < numLookups {
			ll = append(ll, l)
		}
	}
	slices.Sort(ll)
	return ll
}

// Apply applies the lookups for the given features and language to a
// glyph sequence.  The input is not modified; the result is a new slice.
func (info *Info) Apply(seq []glyph.ID, lang language.Tag, includeFeature map[string]bool) []glyph.ID {
	return info.ApplyLookups(seq, info.FindLookups(lang, includeFeature)...)
}

// ApplyLookups applies the given lookups, one after another, to a glyph
// sequence.  The input is not modified; the result is a new slice.
func (info *Info) ApplyLookups(seq []glyph.ID, lookups ...LookupIndex) []glyph.ID {
	seq = slices.Clone(seq)
	for _, li := range lookups {
		pos := 0
		for pos < len(seq) {
			seq, pos, _ = info.applyAt(seq, li, pos, len(seq), 0)
		}
	}
	return seq
}

// applyAt applies lookup li at position pos, matching input glyphs before
// position end only.  The function returns the new sequence, the position
// where processing continues and the new value of end.
func (info *Info) applyAt(seq []glyph.ID, li LookupIndex, pos, end, depth int) ([]glyph.ID, int, int) {
	if int(li) >= len(info.LookupList) || depth > maxNestingDepth {
		return seq, pos + 1, end
	}

	m := info.LookupList[li].Subtables.Apply(seq, pos, end)
	if m == nil {
		return seq, pos + 1, end
	}

	if m.Replace != nil {
		first := m.InputPos[0]
		last := m.InputPos[len(m.InputPos)-1]
		delta := len(m.Replace) - (last - first + 1)

		res := make([]glyph.ID, 0, len(seq)+delta)
		res = append(res, seq[:first]...)
		res = append(res, m.Replace...)
		res = append(res, seq[last+1:]...)
		return res, m.Next + delta, end + delta
	}

	inputPos := slices.Clone(m.InputPos)
	next := m.Next
	for _, action := range m.Actions {
		idx := int(action.SequenceIndex)
		if idx >= len(inputPos) {
			continue
		}
		at := inputPos[idx]
		oldLen := len(seq)
		seq, _, _ = info.applyAt(seq, action.LookupListIndex, at, next, depth+1)
		delta := len(seq) - oldLen
		if delta == 0 {
			continue
		}
		// Positions following the modified glyph move; matched input
		// glyphs which were absorbed by a ligature are dropped.
		var kept []int
		for _, p := range inputPos {
			switch {
			case p <= at:
				kept = append(kept, p)
			case delta < 0 && p <= at-delta:
				// absorbed
			default:
				kept = append(kept, p+delta)
			}
		}
		inputPos = kept
		next += delta
		end += delta
	}
	return seq, next, end
}
