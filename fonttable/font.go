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

// Package fonttable holds the parts of a CFF-based OpenType font which are
// needed to extract jamo outlines and to add positional jamo variants.
//
// Fonts are read from and written to TTX files, the XML format of the
// fontTools library.  Tables which are not used by this package are passed
// through unchanged.
package fonttable

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/hangul/charstring"
	"seehuhn.de/go/hangul/opentype/gtab"
)

// Font is the in-memory representation of a font.
type Font struct {
	// FontName is the name of the CFF font.
	FontName string

	// ROS is the registry-ordering-supplement triple of CID-keyed fonts,
	// or nil for name-keyed fonts.
	ROS *ROS

	// CIDCount is the number of CIDs in a CID-keyed font.
	CIDCount int

	// GlyphOrder lists the glyph names by glyph ID.
	GlyphOrder []string

	// CharStrings maps glyph names to charstrings in text form.
	CharStrings map[string]*CharString

	// FontDicts contains the private dictionary information, indexed by
	// the FDSelect index of a glyph.  Name-keyed fonts have exactly one
	// entry.
	FontDicts []*FontDict

	// GlobalSubrs are the global subroutines, in text form.
	GlobalSubrs []string

	// TypoAscender and TypoDescender are the typographic ascender and
	// descender from the OS/2 table.
	TypoAscender  funit.Int16
	TypoDescender funit.Int16

	// CMap maps code points to glyph names.
	CMap map[rune]string

	// HMetrics and VMetrics contain the horizontal and vertical glyph
	// metrics.  VMetrics is nil if the font has no vmtx table.
	HMetrics map[string]Metric
	VMetrics map[string]Metric

	// GSUB is the glyph substitution table, or nil.
	GSUB *gtab.Info

	doc *node // the TTX document, for tables which are passed through
}

// ROS identifies the character collection of a CID-keyed font.
type ROS struct {
	Registry   string
	Ordering   string
	Supplement int
}

// CharString is the outline of a glyph, in the text form used by TTX.
type CharString struct {
	Code    string
	FDIndex int
}

// FontDict contains the private dictionary entries of a font dict.
type FontDict struct {
	DefaultWidthX float64
	NominalWidthX float64
	Subrs         []string
}

// Metric contains the advance and side bearing of a glyph in one
// direction.  For vertical metrics, the side bearing is the top side
// bearing.
type Metric struct {
	Advance funit.Uint16
	Bearing funit.Int16
}

// IsCIDKeyed returns true for CID-keyed fonts.
func (f *Font) IsCIDKeyed() bool {
	return f.ROS != nil
}

// Clone returns a deep copy of the font.
// The GSUB lookup subtables are shared, since they are never modified.
func (f *Font) Clone() *Font {
	res := &Font{
		FontName:      f.FontName,
		CIDCount:      f.CIDCount,
		GlyphOrder:    slices.Clone(f.GlyphOrder),
		CharStrings:   make(map[string]*CharString, len(f.CharStrings)),
		FontDicts:     make([]*FontDict, len(f.FontDicts)),
		GlobalSubrs:   slices.Clone(f.GlobalSubrs),
		TypoAscender:  f.TypoAscender,
		TypoDescender: f.TypoDescender,
		CMap:          maps.Clone(f.CMap),
		HMetrics:      maps.Clone(f.HMetrics),
		VMetrics:      maps.Clone(f.VMetrics),
		GSUB:          f.GSUB.Clone(),
		doc:           f.doc,
	}
	if f.ROS != nil {
		ros := *f.ROS
		res.ROS = &ros
	}
	for name, cs := range f.CharStrings {
		c := *cs
		res.CharStrings[name] = &c
	}
	for i, fd := range f.FontDicts {
		res.FontDicts[i] = &FontDict{
			DefaultWidthX: fd.DefaultWidthX,
			NominalWidthX: fd.NominalWidthX,
			Subrs:         slices.Clone(fd.Subrs),
		}
	}
	return res
}

// GlyphIDs returns a map from glyph names to glyph IDs.
func (f *Font) GlyphIDs() map[string]glyph.ID {
	res := make(map[string]glyph.ID, len(f.GlyphOrder))
	for i, name := range f.GlyphOrder {
		res[name] = glyph.ID(i)
	}
	return res
}

// NewGlyphName returns an unused name for a variant of the glyph base.
// For CID-keyed fonts, the name of the next unused CID is returned.
func (f *Font) NewGlyphName(base, suffix string) string {
	if f.IsCIDKeyed() {
		cid := f.CIDCount
		for {
			name := fmt.Sprintf("cid%05d", cid)
			if _, exists := f.CharStrings[name]; !exists {
				return name
			}
			cid++
		}
	}

	name := base + "." + suffix
	for i := 1; ; i++ {
		if _, exists := f.CharStrings[name]; !exists {
			return name
		}
		name = fmt.Sprintf("%s.%s.%d", base, suffix, i)
	}
}

// AddGlyph appends a new glyph to the font and returns its glyph ID.
// The vertical metrics are only stored if the font has a vmtx table.
// For CID-keyed fonts, the CID count is increased if needed.
func (f *Font) AddGlyph(name string, cs *CharString, h, v Metric) (glyph.ID, error) {
	if _, exists := f.CharStrings[name]; exists {
		return 0, fmt.Errorf("fonttable: duplicate glyph name %q", name)
	}
	if cs.FDIndex < 0 || cs.FDIndex >= len(f.FontDicts) {
		return 0, fmt.Errorf("fonttable: invalid font dict index %d for %q", cs.FDIndex, name)
	}
	if len(f.GlyphOrder) >= 0xFFFF {
		return 0, fmt.Errorf("fonttable: too many glyphs")
	}

	gid := glyph.ID(len(f.GlyphOrder))
	f.GlyphOrder = append(f.GlyphOrder, name)
	if f.CharStrings == nil {
		f.CharStrings = make(map[string]*CharString)
	}
	f.CharStrings[name] = cs
	if f.HMetrics == nil {
		f.HMetrics = make(map[string]Metric)
	}
	f.HMetrics[name] = h
	if f.VMetrics != nil {
		f.VMetrics[name] = v
	}
	if cid, ok := parseCID(name); ok && f.IsCIDKeyed() && cid >= f.CIDCount {
		f.CIDCount = cid + 1
	}
	return gid, nil
}

func parseCID(name string) (int, bool) {
	digits, ok := strings.CutPrefix(name, "cid")
	if !ok {
		return 0, false
	}
	cid, err := strconv.Atoi(digits)
	if err != nil || cid < 0 {
		return 0, false
	}
	return cid, true
}

// GlyphName returns the name of the glyph used for the code point r.
func (f *Font) GlyphName(r rune) (string, bool) {
	name, ok := f.CMap[r]
	if !ok {
		return "", false
	}
	_, ok = f.CharStrings[name]
	return name, ok
}

// CharString returns the charstring of the named glyph, together with
// its font dict index.
func (f *Font) CharString(name string) (string, int, bool) {
	cs, ok := f.CharStrings[name]
	if !ok {
		return "", 0, false
	}
	return cs.Code, cs.FDIndex, true
}

// Decoder returns a charstring decoder for glyphs using the given font
// dict.
func (f *Font) Decoder(fd int) *charstring.Decoder {
	d := &charstring.Decoder{GSubrs: f.GlobalSubrs}
	if fd >= 0 && fd < len(f.FontDicts) {
		dict := f.FontDicts[fd]
		d.DefaultWidth = dict.DefaultWidthX
		d.NominalWidth = dict.NominalWidthX
		d.Subrs = dict.Subrs
	}
	return d
}

// VerticalExtent returns the typographic ascender and descender in
// design units.
func (f *Font) VerticalExtent() (ascender, descender float64) {
	return float64(f.TypoAscender), float64(f.TypoDescender)
}
