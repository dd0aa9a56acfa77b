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

// Package synth adds positional jamo variants to a font.
//
// For every layout, scaled copies of the jamo glyphs are added to the font,
// together with GSUB lookups which select the right variant for each
// position in a syllable.  Compound vowels and consonant clusters typed as
// separate jamo are composed by ligature lookups in the "ccmp" feature.
package synth

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/hangul"
	"seehuhn.de/go/hangul/charstring"
	"seehuhn.de/go/hangul/fonttable"
	"seehuhn.de/go/hangul/jamo"
	"seehuhn.de/go/hangul/layout"
	"seehuhn.de/go/hangul/outline"
	"seehuhn.de/go/hangul/outline/bold"
)

// Options control the synthesis of variant glyphs.
type Options struct {
	// VerticalOnly gives the trailing consonant variants a full advance
	// width.  Use this for fonts which only set the leading consonant
	// variants horizontally.
	VerticalOnly bool

	// Compensation, if set, corrects the stroke weight of scaled glyphs.
	Compensation *bold.Compensation
}

// Report summarizes the result of a synthesis.
type Report struct {
	// NewGlyphs is the number of glyphs added to the font.
	NewGlyphs int

	// Lookups is the number of GSUB lookups added to the font.
	Lookups int

	// Missing lists jamo for which the font has no base glyph.
	Missing []*hangul.MissingGlyphError

	// Unresolved lists the corners which could not be repaired during
	// stroke compensation, by name of the new glyph.
	Unresolved map[string][]bold.UnresolvedJoint

	// Uncompensated lists the glyphs which were scaled without stroke
	// compensation because the emboldened outline did not match the thin
	// one, by name of the new glyph.
	Uncompensated map[string]error
}

// Width of the em square in design units.
const emWidth = 1000

// Synthesize returns a copy of font with the jamo variants described by
// layouts.  The input font and layouts are not modified.
//
// An error is returned if a layout is invalid or if the new glyphs cannot
// be added to the font.  Jamo without base glyph are skipped and listed in
// the report.
func Synthesize(font *fonttable.Font, layouts layout.Layouts, opts *Options) (*fonttable.Font, *Report, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := layouts.Validate(); err != nil {
		return nil, nil, err
	}
	asc, desc := font.VerticalExtent()
	if !(asc > desc) {
		return nil, nil, fmt.Errorf("synth: invalid vertical extent [%g, %g]", desc, asc)
	}

	s := &synthesizer{
		font:     font.Clone(),
		opts:     opts,
		asc:      asc,
		desc:     desc,
		base:     make(map[rune]glyph.ID),
		variants: make(map[rune][]glyph.ID),
		report: &Report{
			Unresolved:    make(map[string][]bold.UnresolvedJoint),
			Uncompensated: make(map[string]error),
		},
	}
	gids := s.font.GlyphIDs()
	for r, name := range s.font.CMap {
		if gid, ok := gids[name]; ok {
			s.base[r] = gid
		}
	}

	for _, l := range layouts.All() {
		if err := s.addGlyphs(l); err != nil {
			return nil, nil, err
		}
	}
	if err := s.addLookups(); err != nil {
		return nil, nil, err
	}
	if s.font.GSUB != nil {
		if err := checkEncoding(s.font.GSUB); err != nil {
			return nil, nil, err
		}
	}

	hangul.Logger().Info("variants synthesized",
		"glyphs", s.report.NewGlyphs,
		"lookups", s.report.Lookups,
		"missing", len(s.report.Missing),
		"uncompensated", len(s.report.Uncompensated))

	return s.font, s.report, nil
}

type synthesizer struct {
	font      *fonttable.Font
	opts      *Options
	asc, desc float64

	// base maps code points to the glyphs of the font's cmap.
	base map[rune]glyph.ID

	// variants lists all new glyphs of every jamo.
	variants map[rune][]glyph.ID

	layouts []*layoutVariants
	report  *Report
}

// layoutVariants records the glyphs created for one layout.
type layoutVariants struct {
	layout *layout.Layout
	subst  map[glyph.ID]glyph.ID // base glyph -> variant
}

// addGlyphs creates the variant glyphs for a layout.
func (s *synthesizer) addGlyphs(l *layout.Layout) error {
	hull, err := l.FocusBounds()
	if err != nil {
		return err
	}
	height := s.asc - s.desc
	target := rect.Rect{
		LLx: hull.LLx * emWidth,
		LLy: s.desc + hull.LLy*height,
		URx: hull.URx * emWidth,
		URy: s.desc + hull.URy*height,
	}

	lv := &layoutVariants{
		layout: l,
		subst:  make(map[glyph.ID]glyph.ID),
	}
	for _, r := range l.Jamo() {
		rg := l.Glyphs[r]
		if rg == nil || rg.Glyph == nil {
			continue
		}
		baseGID, ok := s.base[r]
		if !ok {
			hangul.Logger().Warn("base glyph missing", "jamo", jamo.Name(r), "layout", l.Name)
			s.report.Missing = append(s.report.Missing,
				&hangul.MissingGlyphError{Jamo: r, Layout: l.Name})
			continue
		}
		baseName := s.font.GlyphOrder[baseGID]
		fd := s.font.CharStrings[baseName].FDIndex

		name := s.font.NewGlyphName(baseName, l.Name)
		g, joints, err := s.place(rg, target)
		if err != nil {
			hangul.Logger().Warn("glyph not compensated", "glyph", name, "error", err)
			s.report.Uncompensated[name] = err
		}
		if len(joints) > 0 {
			s.report.Unresolved[name] = joints
		}
		h, v := s.metrics(l.Focus, outline.BBox(g))
		g.Width = float64(h.Advance)

		var code string
		if fd < len(s.font.FontDicts) {
			dict := s.font.FontDicts[fd]
			code = charstring.Encode(g, dict.DefaultWidthX, dict.NominalWidthX)
		} else {
			code = charstring.Encode(g, 0, 0)
		}
		gid, err := s.font.AddGlyph(name, &fonttable.CharString{Code: code, FDIndex: fd}, h, v)
		if err != nil {
			return err
		}

		lv.subst[baseGID] = gid
		s.variants[r] = append(s.variants[r], gid)
		s.report.NewGlyphs++
	}
	if len(lv.subst) > 0 {
		s.layouts = append(s.layouts, lv)
	}
	return nil
}

// place scales the glyph into its box inside the target rectangle.
// If stroke compensation fails, the uncompensated glyph is returned
// together with the error.
func (s *synthesizer) place(rg *layout.ResizedGlyph, target rect.Rect) (*outline.Glyph, []bold.UnresolvedJoint, error) {
	src := outline.BBox(rg.Glyph)
	if outline.IsEmpty(src) {
		return &outline.Glyph{}, nil, nil
	}

	w := target.URx - target.LLx
	h := target.URy - target.LLy
	b := rg.Bounds
	box := rect.Rect{
		LLx: target.LLx + b.LLx*w,
		LLy: target.LLy + b.LLy*h,
		URx: target.LLx + b.URx*w,
		URy: target.LLy + b.URy*h,
	}

	g := rg.Glyph
	var joints []bold.UnresolvedJoint
	var err error
	if c := s.opts.Compensation; c != nil {
		xScale := scale(src.URx-src.LLx, box.URx-box.LLx)
		yScale := scale(src.URy-src.LLy, box.URy-box.LLy)
		g, joints, err = c.Apply(g, xScale, yScale)
	}
	return g.Transform(outline.MapRect(src, box)), joints, err
}

func scale(from, to float64) float64 {
	if from <= 0 {
		return 1
	}
	return to / from
}

// metrics returns the horizontal and vertical metrics of a variant glyph.
// Leading consonants carry the advance of the syllable, vowels and
// trailing consonants are drawn on top of it.
func (s *synthesizer) metrics(focus jamo.Kind, bbox rect.Rect) (h, v fonttable.Metric) {
	role := focus.Role()
	if role == jamo.RoleLeading || (role == jamo.RoleTrailing && s.opts.VerticalOnly) {
		h.Advance = emWidth
	}
	if role == jamo.RoleLeading {
		v.Advance = funit.Uint16(math.Round(s.asc - s.desc))
	}
	if !outline.IsEmpty(bbox) {
		h.Bearing = funit.Int16(math.Round(bbox.LLx))
		v.Bearing = funit.Int16(math.Round(s.asc - bbox.URy))
	}
	return h, v
}
