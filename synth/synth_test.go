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
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/text/language"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/hangul/fonttable"
	"seehuhn.de/go/hangul/layout"
	"seehuhn.de/go/hangul/opentype/gtab"
	"seehuhn.de/go/hangul/outline"
	"seehuhn.de/go/hangul/outline/bold"
)

func readSample(t *testing.T) *fonttable.Font {
	t.Helper()
	fd, err := os.Open("../fonttable/testdata/sample.ttx")
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()
	font, err := fonttable.ReadTTX(fd)
	if err != nil {
		t.Fatal(err)
	}
	return font
}

// testFont returns a name-keyed font with a square glyph for each of the
// given jamo.
func testFont(t *testing.T, jj ...rune) *fonttable.Font {
	t.Helper()
	f := &fonttable.Font{
		FontName:      "Test",
		GlyphOrder:    []string{".notdef"},
		CharStrings:   map[string]*fonttable.CharString{".notdef": {Code: "endchar"}},
		FontDicts:     []*fonttable.FontDict{{DefaultWidthX: 1000}},
		TypoAscender:  800,
		TypoDescender: -200,
		CMap:          make(map[rune]string),
		HMetrics:      map[string]fonttable.Metric{".notdef": {Advance: 1000}},
	}
	for _, r := range jj {
		name := fmt.Sprintf("uni%04X", r)
		cs := &fonttable.CharString{
			Code: "100 100 rmoveto 0 600 rlineto 800 0 rlineto 0 -600 rlineto endchar",
		}
		_, err := f.AddGlyph(name, cs, fonttable.Metric{Advance: 1000}, fonttable.Metric{})
		if err != nil {
			t.Fatal(err)
		}
		f.CMap[r] = name
	}
	return f
}

// square returns a 1000×1000 square, placed at the given position.
func square(bounds rect.Rect) *layout.ResizedGlyph {
	pts := []vec.Vec2{{X: 0, Y: 1000}, {X: 1000, Y: 1000}, {X: 1000, Y: 0}}
	p := outline.Path{}
	prev := p.Start
	for _, pt := range pts {
		p.Segments = append(p.Segments, outline.Line(prev, pt))
		prev = pt
	}
	return &layout.ResizedGlyph{
		Glyph:  &outline.Glyph{Width: 1000, Paths: []outline.Path{p}},
		Bounds: bounds,
	}
}

var inner = rect.Rect{LLx: 0.1, LLy: 0.1, URx: 0.9, URy: 0.9}

func setGlyphs(ls layout.Layouts, name string, bounds rect.Rect, jj ...rune) {
	l := ls.Find(name)
	l.Glyphs = make(map[rune]*layout.ResizedGlyph)
	for _, r := range jj {
		l.Glyphs[r] = square(bounds)
	}
}

func TestSynthesizeSample(t *testing.T) {
	font := readSample(t)
	font.CMap['ᆨ'] = "cid00004"

	layouts := layout.Templates()
	setGlyphs(layouts, "l1r", inner, 'ᄀ')
	setGlyphs(layouts, "l1rt", inner, 'ᄀ')
	setGlyphs(layouts, "vr", inner, 'ᅡ')
	setGlyphs(layouts, "vrt", inner, 'ᅡ')
	setGlyphs(layouts, "t1r", inner, 'ᆨ')

	res, report, err := Synthesize(font, layouts, nil)
	if err != nil {
		t.Fatal(err)
	}

	wantNames := []string{"cid00005", "cid00006", "cid00007", "cid00008", "cid00009"}
	if d := cmp.Diff(wantNames, res.GlyphOrder[5:]); d != "" {
		t.Error(d)
	}
	if res.CIDCount != 10 {
		t.Errorf("CIDCount = %d", res.CIDCount)
	}
	if len(font.GlyphOrder) != 5 || font.CIDCount != 5 || len(font.GSUB.LookupList) != 2 {
		t.Error("input font was modified")
	}
	if report.NewGlyphs != 5 || report.Lookups != 10 || len(report.Missing) != 0 {
		t.Errorf("unexpected report %+v", report)
	}

	// The focus cell of l1r is [0, 600]×[-120, 880].
	code, fd, ok := res.CharString("cid00005")
	if !ok {
		t.Fatal("cid00005 missing")
	}
	g, err := res.Decoder(fd).Decode(code)
	if err != nil {
		t.Fatal(err)
	}
	want := rect.Rect{LLx: 60, LLy: -20, URx: 540, URy: 780}
	if d := cmp.Diff(want, outline.BBox(g), cmpopts.EquateApprox(0, 1)); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(fonttable.Metric{Advance: 1000, Bearing: 60}, res.HMetrics["cid00005"]); d != "" {
		t.Error(d)
	}
	if m := res.HMetrics["cid00007"]; m.Advance != 0 {
		t.Errorf("vowel variant has advance %d", m.Advance)
	}

	features := map[string]bool{"ljmo": true, "vjmo": true, "tjmo": true}
	cases := []struct {
		in, out []glyph.ID
	}{
		{[]glyph.ID{1, 2}, []glyph.ID{5, 7}},
		{[]glyph.ID{1, 2, 4}, []glyph.ID{6, 8, 9}},
		{[]glyph.ID{1}, []glyph.ID{1}},
		{[]glyph.ID{2}, []glyph.ID{2}},
		{[]glyph.ID{1, 2, 1, 2}, []glyph.ID{5, 7, 5, 7}},
		{[]glyph.ID{1, 2, 4, 1, 2}, []glyph.ID{6, 8, 9, 5, 7}},
	}

	buf := &bytes.Buffer{}
	err = res.WriteTTX(buf)
	if err != nil {
		t.Fatal(err)
	}
	reread, err := fonttable.ReadTTX(buf)
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range []*fonttable.Font{res, reread} {
		for _, lang := range []string{"und-Hang", "ko-Hang"} {
			tag := language.MustParse(lang)
			for _, c := range cases {
				got := f.GSUB.Apply(c.in, tag, features)
				if d := cmp.Diff(c.out, got); d != "" {
					t.Errorf("%s %v: %s", lang, c.in, d)
				}
			}
		}
	}
}

func TestLigatures(t *testing.T) {
	font := testFont(t, 'ᄀ', 'ᅡ', 'ᅩ', 'ᅪ', 'ᅫ', 'ᅳ', 'ᅴ', 'ᅵ', 'ᆨ')

	layouts := layout.Templates()
	setGlyphs(layouts, "vb", inner, 'ᅩ', 'ᅳ')
	setGlyphs(layouts, "vr", inner, 'ᅡ', 'ᅵ')
	setGlyphs(layouts, "vm", inner, 'ᅫ', 'ᅴ')

	res, report, err := Synthesize(font, layouts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if report.NewGlyphs != 6 || report.Lookups != 10 {
		t.Errorf("unexpected report %+v", report)
	}

	gids := res.GlyphIDs()
	gid := func(s string) []glyph.ID {
		var res []glyph.ID
		for _, r := range s {
			res = append(res, gids[fmt.Sprintf("uni%04X", r)])
		}
		return res
	}

	ccmp := map[string]bool{"ccmp": true}
	cases := []struct {
		in, out string
	}{
		{"ᅪ", "ᅩᅡ"},
		{"ᅩᅡᅵ", "ᅫ"},
		{"ᅪᅵ", "ᅫ"},
		{"ᅳᅵ", "ᅴ"},
		{"ᅳᅵᆨ", "ᅳᅵᆨ"},
		{"그ᅵ", "긔"},
		{"ᅩᅵ", "ᅩᅵ"},
	}
	for _, c := range cases {
		got := res.GSUB.Apply(gid(c.in), undHang, ccmp)
		if d := cmp.Diff(gid(c.out), got); d != "" {
			t.Errorf("%s: %s", c.in, d)
		}
	}

	all := map[string]bool{"ccmp": true, "ljmo": true, "vjmo": true, "tjmo": true}
	got := res.GSUB.Apply(gid("그ᅵ"), undHang, all)
	want := []glyph.ID{gids["uni1100"], gids["uni1174.vm"]}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}

	if _, err := res.GSUB.Encode(); err != nil {
		t.Error(err)
	}
}

func TestMetrics(t *testing.T) {
	font := testFont(t, 'ᄀ', 'ᆨ')
	full := rect.Rect{LLx: 0, LLy: 0, URx: 1, URy: 1}

	layouts := layout.Templates()
	setGlyphs(layouts, "l1r", full, 'ᄀ')
	setGlyphs(layouts, "t1r", inner, 'ᆨ')

	for _, verticalOnly := range []bool{false, true} {
		opts := &Options{
			VerticalOnly: verticalOnly,
			Compensation: &bold.Compensation{Stroke: 40},
		}
		res, report, err := Synthesize(font, layouts, opts)
		if err != nil {
			t.Fatal(err)
		}
		if len(report.Unresolved) != 0 {
			t.Errorf("unresolved joints: %v", report.Unresolved)
		}

		wantAdvance := 0
		if verticalOnly {
			wantAdvance = 1000
		}
		if m := res.HMetrics["uni11A8.t1r"]; int(m.Advance) != wantAdvance {
			t.Errorf("VerticalOnly=%t: trailing advance %d", verticalOnly, m.Advance)
		}

		// The glyph is squeezed horizontally, so the strokes are
		// thickened in x-direction only.
		code, fd, _ := res.CharString("uni1100.l1r")
		g, err := res.Decoder(fd).Decode(code)
		if err != nil {
			t.Fatal(err)
		}
		bbox := outline.BBox(g)
		if !(bbox.LLx < -1 && bbox.URx > 601) {
			t.Errorf("no stroke compensation: %v", bbox)
		}
		if d := cmp.Diff(-200.0, bbox.LLy, cmpopts.EquateApprox(0, 1)); d != "" {
			t.Error(d)
		}
	}
}

func TestSynthesizeErrors(t *testing.T) {
	font := testFont(t, 'ᄀ')

	layouts := layout.Templates()
	setGlyphs(layouts, "l1r", inner, 'ᄀ', 'ᄂ')
	res, report, err := Synthesize(font, layouts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Missing) != 1 || report.Missing[0].Jamo != 'ᄂ' || report.Missing[0].Layout != "l1r" {
		t.Errorf("missing: %v", report.Missing)
	}
	if report.NewGlyphs != 1 || len(res.GlyphOrder) != 3 {
		t.Errorf("%d new glyphs", report.NewGlyphs)
	}

	bad := layout.Templates()
	bad.Find("vr").Dividers.(*layout.Vertical).X = 0
	_, _, err = Synthesize(font, bad, nil)
	var lErr *layout.InvalidLayoutError
	if !errors.As(err, &lErr) {
		t.Errorf("got %v, want InvalidLayoutError", err)
	}

	empty := layout.Templates()
	res, report, err = Synthesize(font, empty, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.GSUB != nil || report.NewGlyphs != 0 {
		t.Error("unexpected changes")
	}
}

func TestUncompensated(t *testing.T) {
	font := testFont(t, 'ᄀ', 'ᅡ')

	layouts := layout.Templates()
	setGlyphs(layouts, "l1r", inner, 'ᄀ')
	setGlyphs(layouts, "vr", inner, 'ᅡ')

	// A lone moveto leaves a zero-length contour behind, which disappears
	// when the outline is emboldened.
	stray := layouts.Find("l1r").Glyphs['ᄀ']
	p := vec.Vec2{X: 500, Y: 500}
	stray.Glyph.Paths = append(stray.Glyph.Paths, outline.Path{
		Start:    p,
		Segments: []outline.Segment{outline.Line(p, p)},
	})

	opts := &Options{Compensation: &bold.Compensation{Stroke: 40}}
	res, report, err := Synthesize(font, layouts, opts)
	if err != nil {
		t.Fatal(err)
	}
	if report.NewGlyphs != 2 {
		t.Errorf("%d new glyphs", report.NewGlyphs)
	}
	if len(report.Uncompensated) != 1 {
		t.Fatalf("uncompensated glyphs: %v", report.Uncompensated)
	}
	var mismatch *bold.MismatchError
	if !errors.As(report.Uncompensated["uni1100.l1r"], &mismatch) || mismatch.Contour != -1 {
		t.Errorf("got %v, want contour count mismatch", report.Uncompensated["uni1100.l1r"])
	}

	// The glyph is still added, without stroke compensation.
	code, fd, ok := res.CharString("uni1100.l1r")
	if !ok {
		t.Fatal("uni1100.l1r missing")
	}
	g, err := res.Decoder(fd).Decode(code)
	if err != nil {
		t.Fatal(err)
	}
	// The focus cell of l1r is [0, 600] wide.
	bbox := outline.BBox(g)
	if d := cmp.Diff(60.0, bbox.LLx, cmpopts.EquateApprox(0, 1)); d != "" {
		t.Error(d)
	}
}

func TestCheckEncoding(t *testing.T) {
	font := testFont(t, 'ᄀ', 'ᅡ')
	layouts := layout.Templates()
	setGlyphs(layouts, "l1r", inner, 'ᄀ')
	setGlyphs(layouts, "vr", inner, 'ᅡ')
	res, _, err := Synthesize(font, layouts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := checkEncoding(res.GSUB); err != nil {
		t.Error(err)
	}

	opaque := res.GSUB.Clone()
	opaque.LookupList = append(opaque.LookupList, &gtab.LookupTable{
		Meta:      &gtab.LookupMetaInfo{LookupType: gtab.TypeAlternate},
		Subtables: gtab.Subtables{&gtab.Opaque{Data: "alternates"}},
	})
	if err := checkEncoding(opaque); err != nil {
		t.Errorf("opaque lookups: %v", err)
	}

	// The feature list alone needs more than 64kB.
	many := make([]gtab.LookupIndex, 20000)
	large := &gtab.Info{
		ScriptList: gtab.ScriptListInfo{
			undHang: {Required: gtab.NoRequiredFeature, Optional: []gtab.FeatureIndex{0, 1}},
		},
		FeatureList: gtab.FeatureListInfo{
			{Tag: "ljmo", Lookups: many},
			{Tag: "vjmo", Lookups: many},
		},
		LookupList: res.GSUB.LookupList[:1],
	}
	err = checkEncoding(large)
	var notSupported *gtab.NotSupportedError
	if !errors.As(err, &notSupported) {
		t.Errorf("got %v, want NotSupportedError", err)
	}
}
