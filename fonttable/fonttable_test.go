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

package fonttable

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/text/language"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/hangul/opentype/coverage"
	"seehuhn.de/go/hangul/opentype/gtab"
	"seehuhn.de/go/hangul/outline"
)

func readSample(t *testing.T) *Font {
	t.Helper()
	fd, err := os.Open("testdata/sample.ttx")
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()
	f, err := ReadTTX(fd)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestReadTTX(t *testing.T) {
	f := readSample(t)

	if f.FontName != "SampleCID" {
		t.Errorf("FontName = %q", f.FontName)
	}
	if d := cmp.Diff(&ROS{Registry: "Adobe", Ordering: "Identity"}, f.ROS); d != "" {
		t.Error(d)
	}
	if f.CIDCount != 5 {
		t.Errorf("CIDCount = %d", f.CIDCount)
	}
	wantOrder := []string{".notdef", "cid00001", "cid00002", "cid00003", "cid00004"}
	if d := cmp.Diff(wantOrder, f.GlyphOrder); d != "" {
		t.Error(d)
	}
	wantCMap := map[rune]string{
		0x1100: "cid00001",
		0x1161: "cid00002",
		0xAC00: "cid00003",
		0x3131: "cid00004",
	}
	if d := cmp.Diff(wantCMap, f.CMap); d != "" {
		t.Error(d)
	}
	if f.TypoAscender != 880 || f.TypoDescender != -120 {
		t.Errorf("ascender/descender = %d/%d", f.TypoAscender, f.TypoDescender)
	}
	if d := cmp.Diff(Metric{Advance: 1000, Bearing: 600}, f.HMetrics["cid00002"]); d != "" {
		t.Error(d)
	}
	if f.VMetrics != nil {
		t.Error("unexpected vertical metrics")
	}
	if len(f.FontDicts) != 1 {
		t.Fatalf("%d font dicts", len(f.FontDicts))
	}
	if fd := f.FontDicts[0]; fd.DefaultWidthX != 1000 || fd.NominalWidthX != 500 || len(fd.Subrs) != 1 {
		t.Errorf("unexpected font dict %v", fd)
	}

	gsub := f.GSUB
	if gsub == nil || len(gsub.LookupList) != 2 {
		t.Fatal("GSUB not read")
	}
	if _, ok := gsub.LookupList[0].Subtables[0].(*gtab.Opaque); !ok {
		t.Error("alternate substitution is not opaque")
	}
	if gsub.LookupList[1].Meta.LookupType != gtab.TypeLigature {
		t.Error("extension lookup not unwrapped")
	}
	if _, ok := gsub.ScriptList[language.MustParse("ko-Hang")]; !ok {
		t.Error("missing language system for Korean")
	}
	got := gsub.Apply([]glyph.ID{1, 2}, language.MustParse("und-Hang"), map[string]bool{"ccmp": true})
	if d := cmp.Diff([]glyph.ID{3}, got); d != "" {
		t.Error(d)
	}
}

func TestDecode(t *testing.T) {
	f := readSample(t)

	cases := []struct {
		name   string
		width  float64
		bbox   rect.Rect
		nPaths int
	}{
		{"cid00001", 1000, rect.Rect{LLx: 100, LLy: 100, URx: 500, URy: 700}, 1},
		{"cid00003", 1000, rect.Rect{LLx: 100, LLy: 100, URx: 700, URy: 700}, 2},
		{"cid00004", 400, rect.Rect{LLx: 300, LLy: 300, URx: 700, URy: 700}, 1},
	}
	for _, c := range cases {
		code, fd, ok := f.CharString(c.name)
		if !ok {
			t.Fatalf("%s: missing", c.name)
		}
		g, err := f.Decoder(fd).Decode(code)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if g.Width != c.width {
			t.Errorf("%s: width %g, want %g", c.name, g.Width, c.width)
		}
		if len(g.Paths) != c.nPaths {
			t.Errorf("%s: %d paths, want %d", c.name, len(g.Paths), c.nPaths)
		}
		if d := cmp.Diff(c.bbox, outline.BBox(g)); d != "" {
			t.Errorf("%s: %s", c.name, d)
		}
	}

	name, ok := f.GlyphName(0xAC00)
	if !ok || name != "cid00003" {
		t.Errorf("GlyphName(U+AC00) = %q, %t", name, ok)
	}
	if _, ok := f.GlyphName(0xAC01); ok {
		t.Error("unexpected glyph for U+AC01")
	}
	asc, desc := f.VerticalExtent()
	if asc != 880 || desc != -120 {
		t.Errorf("VerticalExtent() = %g, %g", asc, desc)
	}
}

func TestWriteTTX(t *testing.T) {
	f := readSample(t)

	g := f.Clone()
	name := g.NewGlyphName("cid00001", "l1r")
	if name != "cid00005" {
		t.Errorf("NewGlyphName = %q", name)
	}
	gid, err := g.AddGlyph(name, &CharString{Code: "0 0 rmoveto 10 0 rlineto 0 10 rlineto endchar"},
		Metric{Advance: 1000}, Metric{})
	if err != nil {
		t.Fatal(err)
	}
	if gid != 5 || g.CIDCount != 6 {
		t.Errorf("gid=%d, CIDCount=%d", gid, g.CIDCount)
	}
	g.GSUB.LookupList = append(g.GSUB.LookupList,
		&gtab.LookupTable{
			Meta:      &gtab.LookupMetaInfo{LookupType: gtab.TypeSingle},
			Subtables: gtab.Subtables{gtab.NewGsub1_2(map[glyph.ID]glyph.ID{1: 5})},
		},
		&gtab.LookupTable{
			Meta: &gtab.LookupMetaInfo{LookupType: gtab.TypeChainContext},
			Subtables: gtab.Subtables{&gtab.ChainedSeqContext3{
				Input:     []coverage.Set{coverage.NewSet(1)},
				Lookahead: []coverage.Set{coverage.NewSet(2)},
				Actions:   gtab.SeqLookups{{SequenceIndex: 0, LookupListIndex: 2}},
			}},
		},
		&gtab.LookupTable{
			Meta: &gtab.LookupMetaInfo{LookupType: gtab.TypeMultiple},
			Subtables: gtab.Subtables{&gtab.Gsub2_1{
				Cov:  coverage.New(3),
				Repl: [][]glyph.ID{{1, 2}},
			}},
		})
	g.GSUB.FeatureList = append(g.GSUB.FeatureList,
		&gtab.Feature{Tag: "ljmo", Lookups: []gtab.LookupIndex{3}})
	hang := language.MustParse("und-Hang")
	g.GSUB.ScriptList[hang].Optional = append(g.GSUB.ScriptList[hang].Optional, 2)

	if len(f.GlyphOrder) != 5 || len(f.GSUB.LookupList) != 2 || len(f.GSUB.FeatureList) != 2 {
		t.Error("Clone shares data with the original")
	}

	buf := &bytes.Buffer{}
	err = g.WriteTTX(buf)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, tag := range []string{"<post>", "<maxp>", "<AlternateSubst", "<FontMatrix"} {
		if !strings.Contains(out, tag) {
			t.Errorf("%s missing from output", tag)
		}
	}

	h, err := ReadTTX(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(g.GlyphOrder, h.GlyphOrder); d != "" {
		t.Error(d)
	}
	if h.CIDCount != 6 {
		t.Errorf("CIDCount = %d", h.CIDCount)
	}
	if d := cmp.Diff(g.HMetrics, h.HMetrics); d != "" {
		t.Error(d)
	}
	for _, name := range g.GlyphOrder {
		a := strings.Fields(g.CharStrings[name].Code)
		b := strings.Fields(h.CharStrings[name].Code)
		if d := cmp.Diff(a, b); d != "" {
			t.Errorf("%s: %s", name, d)
		}
	}
	opts := []cmp.Option{
		cmpopts.EquateEmpty(),
		cmpopts.IgnoreTypes(&gtab.Opaque{}),
		cmp.Comparer(func(a, b language.Tag) bool { return a == b }),
	}
	if d := cmp.Diff(g.GSUB, h.GSUB, opts...); d != "" {
		t.Error(d)
	}
}

func TestNewGlyphName(t *testing.T) {
	f := &Font{
		CharStrings: map[string]*CharString{
			"uni1100":     {},
			"uni1100.l1r": {},
		},
		FontDicts: []*FontDict{{}},
	}
	if name := f.NewGlyphName("uni1100", "l1r"); name != "uni1100.l1r.1" {
		t.Errorf("got %q", name)
	}
	if name := f.NewGlyphName("uni1100", "vr"); name != "uni1100.vr" {
		t.Errorf("got %q", name)
	}

	_, err := f.AddGlyph("uni1100", &CharString{}, Metric{}, Metric{})
	if err == nil {
		t.Error("duplicate name accepted")
	}
	_, err = f.AddGlyph("x", &CharString{FDIndex: 1}, Metric{}, Metric{})
	if err == nil {
		t.Error("invalid font dict accepted")
	}
	gid, err := f.AddGlyph("x", &CharString{}, Metric{Advance: 10}, Metric{})
	if err != nil || gid != 0 || f.HMetrics["x"].Advance != 10 {
		t.Errorf("AddGlyph: %d %v", gid, err)
	}
}

func TestReadTTXErrors(t *testing.T) {
	sample, err := os.ReadFile("testdata/sample.ttx")
	if err != nil {
		t.Fatal(err)
	}
	cases := []string{
		`<html></html>`,
		`<ttFont><GlyphOrder/></ttFont>`,
		strings.Replace(string(sample), `name="cid00004" fdSelectIndex="0"`, `name="cid00004" fdSelectIndex="3"`, 1),
		strings.Replace(string(sample), `<sTypoAscender value="880"/>`, `<sTypoAscender value="high"/>`, 1),
		strings.Replace(string(sample), `<Ligature components="cid00002"`, `<Ligature components="nosuchglyph"`, 1),
	}
	for i, c := range cases {
		_, err := ReadTTX(strings.NewReader(c))
		if err == nil {
			t.Errorf("%d: invalid font accepted", i)
			continue
		}
		var formatErr *FormatError
		if i > 0 && !errors.As(err, &formatErr) {
			t.Errorf("%d: unexpected error type %T", i, err)
		}
	}
}
