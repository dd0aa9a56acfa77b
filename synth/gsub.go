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

package synth

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/hangul"
	"seehuhn.de/go/hangul/jamo"
	"seehuhn.de/go/hangul/layout"
	"seehuhn.de/go/hangul/opentype/coverage"
	"seehuhn.de/go/hangul/opentype/gtab"
)

// Feature tags of the positional variants.
var featureTag = map[jamo.Role]string{
	jamo.RoleLeading:  "ljmo",
	jamo.RoleVowel:    "vjmo",
	jamo.RoleTrailing: "tjmo",
}

var (
	hangScript = language.MustParseScript("Hang")
	undHang    = language.MustParse("und-Hang")
)

// lookupBuilder collects new lookups, and the features which use them.
type lookupBuilder struct {
	offset   int
	list     gtab.LookupList
	features map[string][]gtab.LookupIndex
	tags     []string
}

// add appends a lookup and returns its index in the final lookup list.
// If tag is empty, the lookup is only used from other lookups.
func (b *lookupBuilder) add(tag string, lookupType uint16, subtables ...gtab.Subtable) gtab.LookupIndex {
	idx := gtab.LookupIndex(b.offset + len(b.list))
	b.list = append(b.list, &gtab.LookupTable{
		Meta:      &gtab.LookupMetaInfo{LookupType: lookupType},
		Subtables: subtables,
	})
	if tag != "" {
		if _, seen := b.features[tag]; !seen {
			b.tags = append(b.tags, tag)
		}
		b.features[tag] = append(b.features[tag], idx)
	}
	return idx
}

// addLookups appends the new lookups and features to the GSUB table.
// The lookups are added in the order in which a shaper must apply them:
// first the "ccmp" lookups, then the variants for syllables with trailing
// consonant, and finally the variants for syllables without.
func (s *synthesizer) addLookups() error {
	var offset int
	if s.font.GSUB != nil {
		offset = len(s.font.GSUB.LookupList)
	}
	b := &lookupBuilder{
		offset:   offset,
		features: make(map[string][]gtab.LookupIndex),
	}
	s.addLigatures(b)
	for _, tag := range []layout.Tag{layout.WithTrailing, layout.NoTrailing} {
		for _, lv := range s.layouts {
			if lv.layout.Tag == tag {
				s.addVariants(b, lv)
			}
		}
	}
	if len(b.list) == 0 {
		return nil
	}
	if b.offset+len(b.list) > 0xFFFF {
		return fmt.Errorf("synth: too many GSUB lookups (%d)", b.offset+len(b.list))
	}

	info := s.font.GSUB
	if info == nil {
		info = &gtab.Info{}
		s.font.GSUB = info
	}
	if info.ScriptList == nil {
		info.ScriptList = gtab.ScriptListInfo{}
	}
	info.LookupList = append(info.LookupList, b.list...)
	var newFeatures []gtab.FeatureIndex
	for _, tag := range b.tags {
		newFeatures = append(newFeatures, gtab.FeatureIndex(len(info.FeatureList)))
		info.FeatureList = append(info.FeatureList, &gtab.Feature{
			Tag:     tag,
			Lookups: b.features[tag],
		})
	}

	if _, ok := info.ScriptList[undHang]; !ok {
		info.ScriptList[undHang] = &gtab.Features{Required: gtab.NoRequiredFeature}
	}
	for tag, ff := range info.ScriptList {
		if script, conf := tag.Script(); conf != language.Exact || script != hangScript {
			continue
		}
		ff.Optional = append(ff.Optional, newFeatures...)
	}

	s.report.Lookups = len(b.list)
	return nil
}

// addVariants adds the lookups which replace the jamo of a layout by
// their variants.  A single substitution does the replacement, and is
// called from a chained context lookup which checks that the partner jamo
// have the kinds required by the layout.
func (s *synthesizer) addVariants(b *lookupBuilder, lv *layoutVariants) {
	l := lv.layout
	single := b.add("", gtab.TypeSingle, gtab.NewGsub1_2(lv.subst))

	partners := l.Partners()
	slices.SortStableFunc(partners, func(a, b jamo.Kind) int {
		return int(a.Role()) - int(b.Role())
	})
	focus := l.Focus.Role()
	var before, after []coverage.Set
	for _, k := range partners {
		if k.Role() < focus {
			before = append(before, s.kindSet(k))
		} else {
			after = append(after, s.kindSet(k))
		}
	}
	slices.Reverse(before)

	chain := &gtab.ChainedSeqContext3{
		Backtrack: before,
		Input:     []coverage.Set{coverage.NewSet(maps.Keys(lv.subst)...)},
		Lookahead: after,
		Actions:   gtab.SeqLookups{{SequenceIndex: 0, LookupListIndex: single}},
	}
	b.add(featureTag[focus], gtab.TypeChainContext, chain)
}

// kindSet returns the base glyphs and all variants of the jamo of kind k.
func (s *synthesizer) kindSet(k jamo.Kind) coverage.Set {
	var gids []glyph.ID
	for _, r := range jamo.OfKind(k) {
		if gid, ok := s.base[r]; ok {
			gids = append(gids, gid)
		}
		gids = append(gids, s.variants[r]...)
	}
	return coverage.NewSet(gids...)
}

// addLigatures adds the "ccmp" lookups for compound jamo.
//
// Compound jamo with variants are composed from their components.
// Ligatures of three components are formed unconditionally.  Ligatures of
// two components are not formed if a trailing consonant follows.
// Compound jamo without variants, whose components all have variants, are
// decomposed instead.
func (s *synthesizer) addLigatures(b *lookupBuilder) {
	decompose := make(map[glyph.ID][]glyph.ID)
	compose3 := make(map[glyph.ID][]gtab.Ligature)
	compose2 := make(map[glyph.ID][]gtab.Ligature)
	var first, second []glyph.ID

ligLoop:
	for _, lig := range jamo.Ligatures() {
		res, ok := s.base[lig.Result]
		if !ok {
			continue
		}
		comps := make([]glyph.ID, len(lig.Components))
		allVariants := true
		for i, c := range lig.Components {
			gid, ok := s.base[c]
			if !ok {
				continue ligLoop
			}
			comps[i] = gid
			if len(s.variants[c]) == 0 {
				allVariants = false
			}
		}

		switch {
		case len(s.variants[lig.Result]) > 0:
			l := gtab.Ligature{In: comps[1:], Out: res}
			if len(comps) == 2 {
				compose2[comps[0]] = append(compose2[comps[0]], l)
				first = append(first, comps[0])
				second = append(second, comps[1])
			} else {
				compose3[comps[0]] = append(compose3[comps[0]], l)
			}
		case allVariants:
			decompose[res] = comps
		}
	}

	if len(decompose) > 0 {
		b.add("ccmp", gtab.TypeMultiple, gtab.NewGsub2_1(decompose))
	}
	if len(compose3) > 0 {
		b.add("ccmp", gtab.TypeLigature, gtab.NewGsub4_1(compose3))
	}
	if len(compose2) > 0 {
		nested := b.add("", gtab.TypeLigature, gtab.NewGsub4_1(compose2))
		input := []coverage.Set{coverage.NewSet(first...), coverage.NewSet(second...)}
		suppress := &gtab.ChainedSeqContext3{
			Input:     input,
			Lookahead: []coverage.Set{s.kindSet(jamo.Trailing)},
		}
		compose := &gtab.ChainedSeqContext3{
			Input:   input,
			Actions: gtab.SeqLookups{{SequenceIndex: 0, LookupListIndex: nested}},
		}
		b.add("ccmp", gtab.TypeChainContext, suppress, compose)
	}
}

// checkEncoding verifies that info can be written as a binary "GSUB" table
// and read back.  Tables with opaque lookups cannot be encoded and are not
// checked.
func checkEncoding(info *gtab.Info) error {
	for _, l := range info.LookupList {
		for _, st := range l.Subtables {
			if _, ok := st.(*gtab.Opaque); ok {
				hangul.Logger().Debug("binary GSUB check skipped", "reason", "opaque lookups")
				return nil
			}
		}
	}

	data, err := info.Encode()
	if err != nil {
		return fmt.Errorf("synth: GSUB table: %w", err)
	}
	back, err := gtab.Read("GSUB", data)
	if err != nil {
		return fmt.Errorf("synth: GSUB table: %w", err)
	}
	if len(back.LookupList) != len(info.LookupList) || len(back.FeatureList) != len(info.FeatureList) {
		return fmt.Errorf("synth: GSUB table: %d lookups and %d features after encoding, want %d and %d",
			len(back.LookupList), len(back.FeatureList), len(info.LookupList), len(info.FeatureList))
	}
	hangul.Logger().Debug("binary GSUB check passed", "bytes", len(data))
	return nil
}
