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

// Package extract finds the outlines of individual jamo inside the
// precomposed syllable glyphs of a font.
//
// For every layout and every jamo of the layout's subkind, an example
// syllable is located which uses the jamo in the focus position of the
// layout.  The contours of the syllable glyph which fall into the focus
// cell are taken as the outline of the jamo.
package extract

import (
	"fmt"
	"runtime"
	"sync"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/hangul"
	"seehuhn.de/go/hangul/charstring"
	"seehuhn.de/go/hangul/jamo"
	"seehuhn.de/go/hangul/layout"
	"seehuhn.de/go/hangul/outline"
)

// Source gives access to the glyphs of a font.
type Source interface {
	// GlyphName returns the name of the glyph mapped to the code point r.
	GlyphName(r rune) (string, bool)

	// CharString returns the charstring of the named glyph, together with
	// the index of the font dict it uses.
	CharString(name string) (code string, fd int, ok bool)

	// Decoder returns a charstring decoder with the private widths and
	// subroutines of the given font dict.
	Decoder(fd int) *charstring.Decoder

	// VerticalExtent returns the typographic ascender and descender.
	VerticalExtent() (ascender, descender float64)
}

// Options control the glyph extraction.
type Options struct {
	// Workers is the maximum number of layouts processed concurrently.
	// Default: the value of runtime.GOMAXPROCS.
	Workers int

	// CacheSize is the number of decoded glyphs kept in memory.
	// Default: 512.
	CacheSize int
}

// Width of the em square in design units.
const emWidth = 1000

// FallbackBounds is the position assigned to glyphs taken from standalone
// compatibility jamo.
var FallbackBounds = rect.Rect{LLx: 0.2, LLy: 0.2, URx: 0.8, URy: 0.8}

// Only this many example syllables with an empty focus cell are tried
// before falling back to the standalone jamo.
const maxExamples = 8

// GlyphError reports a glyph which could not be decoded.
type GlyphError struct {
	Glyph string
	Err   error
}

func (err *GlyphError) Error() string {
	return "glyph " + err.Glyph + ": " + err.Err.Error()
}

func (err *GlyphError) Unwrap() error {
	return err.Err
}

// Report summarizes the result of an extraction.
type Report struct {
	// Extracted is the number of jamo glyphs taken from example syllables.
	Extracted int

	// Fallback is the number of jamo glyphs taken from standalone
	// compatibility jamo.
	Fallback int

	// Missing lists the jamo for which no glyph could be found.
	Missing []*hangul.MissingGlyphError

	// Malformed lists the glyphs with invalid charstrings.
	// Every glyph is listed at most once.
	Malformed []*GlyphError
}

// Complete returns true if glyphs were found for all jamo.
func (r *Report) Complete() bool {
	return len(r.Missing) == 0
}

func (r *Report) merge(other *Report, seen map[string]bool) {
	r.Extracted += other.Extracted
	r.Fallback += other.Fallback
	r.Missing = append(r.Missing, other.Missing...)
	for _, err := range other.Malformed {
		if seen[err.Glyph] {
			continue
		}
		seen[err.Glyph] = true
		r.Malformed = append(r.Malformed, err)
	}
}

// Extract locates the glyphs of all jamo in the given layouts.
//
// The result is a copy of layouts, where the Glyphs field of every layout
// is replaced by the extracted glyphs.  The input is not modified.
// Jamo without glyph and glyphs which cannot be decoded are listed in the
// report.  An error is returned only if a layout is invalid.
func Extract(font Source, layouts layout.Layouts, opts *Options) (layout.Layouts, *Report, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := layouts.Validate(); err != nil {
		return nil, nil, err
	}
	asc, desc := font.VerticalExtent()
	if !(asc > desc) {
		return nil, nil, fmt.Errorf("extract: invalid vertical extent [%g, %g]", desc, asc)
	}

	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = 512
	}
	e := &extractor{
		font:  font,
		cache: newCache(cacheSize),
		asc:   asc,
		desc:  desc,
	}

	res := layouts.Clone()
	all := res.All()
	reports := make([]*Report, len(all))
	errs := make([]error, len(all))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(all))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				reports[i], errs[i] = e.layout(all[i])
			}
		}()
	}
	for i := range all {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report := &Report{}
	seen := make(map[string]bool)
	for i := range all {
		if errs[i] != nil {
			return nil, nil, errs[i]
		}
		report.merge(reports[i], seen)
	}

	hangul.Logger().Info("glyphs extracted",
		"layouts", len(all),
		"extracted", report.Extracted,
		"fallback", report.Fallback,
		"missing", len(report.Missing),
		"malformed", len(report.Malformed))

	return res, report, nil
}

type extractor struct {
	font      Source
	cache     *glyphCache
	asc, desc float64
}

// layout fills in the glyphs of a single layout.
func (e *extractor) layout(l *layout.Layout) (*Report, error) {
	region, err := l.FocusRegion()
	if err != nil {
		return nil, err
	}
	design := make([]rect.Rect, len(region))
	for i, r := range region {
		design[i] = e.toDesign(r)
	}
	hull := e.toDesign(layout.Hull(region))

	rep := &Report{}
	l.Glyphs = make(map[rune]*layout.ResizedGlyph)
	for _, r := range l.Jamo() {
		if g := e.fromSyllable(l, r, design, hull, rep); g != nil {
			l.Glyphs[r] = g
			rep.Extracted++
			continue
		}
		if g := e.fromCompat(r, rep); g != nil {
			l.Glyphs[r] = g
			rep.Fallback++
			continue
		}
		hangul.Logger().Warn("no glyph found", "jamo", jamo.Name(r), "layout", l.Name)
		rep.Missing = append(rep.Missing, &hangul.MissingGlyphError{Jamo: r, Layout: l.Name})
	}
	return rep, nil
}

// fromSyllable extracts the glyph of the jamo r from an example syllable.
func (e *extractor) fromSyllable(l *layout.Layout, r rune, design []rect.Rect, hull rect.Rect, rep *Report) *layout.ResizedGlyph {
	tried := 0
	for _, s := range Examples(l, r) {
		name, ok := e.font.GlyphName(s)
		if !ok {
			continue
		}
		g := e.decode(name, rep)
		if g == nil {
			continue
		}

		part := outline.Intersect(g, design)
		bbox := outline.BBox(part)
		if outline.IsEmpty(bbox) {
			tried++
			if tried >= maxExamples {
				break
			}
			continue
		}
		hangul.Logger().Debug("jamo extracted",
			"jamo", jamo.Name(r), "layout", l.Name, "syllable", string(s))
		return &layout.ResizedGlyph{
			Glyph:  part,
			Bounds: relative(bbox, hull),
		}
	}
	return nil
}

// fromCompat uses the glyph of the compatibility jamo corresponding to r.
func (e *extractor) fromCompat(r rune, rep *Report) *layout.ResizedGlyph {
	c, ok := jamo.Compat(r)
	if !ok {
		return nil
	}
	name, ok := e.font.GlyphName(c)
	if !ok {
		return nil
	}
	g := e.decode(name, rep)
	if g == nil || len(g.Paths) == 0 {
		return nil
	}
	return &layout.ResizedGlyph{
		Glyph:  g.Clone(),
		Bounds: FallbackBounds,
	}
}

// decode returns the outline of the named glyph, or nil if the glyph
// cannot be decoded.  Decoding errors are added to rep when the glyph is
// decoded, not on later cache hits.
// The returned glyph is shared and must not be modified.
func (e *extractor) decode(name string, rep *Report) *outline.Glyph {
	val, ok := e.cache.Get(name)
	if !ok {
		code, fd, found := e.font.CharString(name)
		if found {
			val.glyph, val.err = e.font.Decoder(fd).Decode(code)
		}
		e.cache.Put(name, val)
		if val.err != nil {
			hangul.Logger().Warn("glyph skipped", "glyph", name, "error", val.err)
			rep.Malformed = append(rep.Malformed, &GlyphError{Glyph: name, Err: val.err})
		}
	}
	if val.err != nil {
		return nil
	}
	return val.glyph
}

// toDesign maps a rectangle from the unit square to design space.
func (e *extractor) toDesign(r rect.Rect) rect.Rect {
	height := e.asc - e.desc
	return rect.Rect{
		LLx: r.LLx * emWidth,
		LLy: e.desc + r.LLy*height,
		URx: r.URx * emWidth,
		URy: e.desc + r.URy*height,
	}
}

// relative gives the position of b as fractions of the rectangle hull.
func relative(b, hull rect.Rect) rect.Rect {
	w := hull.URx - hull.LLx
	h := hull.URy - hull.LLy
	return rect.Rect{
		LLx: (b.LLx - hull.LLx) / w,
		LLy: (b.LLy - hull.LLy) / h,
		URx: (b.URx - hull.LLx) / w,
		URy: (b.URy - hull.LLy) / h,
	}
}
