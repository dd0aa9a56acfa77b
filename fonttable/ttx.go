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
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/hangul"
)

// FormatError is returned when a TTX file cannot be interpreted.
type FormatError struct {
	Element string
	Reason  string
}

func (err *FormatError) Error() string {
	return "fonttable: invalid <" + err.Element + ">: " + err.Reason
}

// ReadTTX reads a font from a TTX file.
func ReadTTX(r io.Reader) (*Font, error) {
	doc := &node{}
	err := xml.NewDecoder(r).Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("fonttable: %w", err)
	}
	if doc.name() != "ttFont" {
		return nil, &FormatError{Element: doc.name(), Reason: "not a TTX file"}
	}

	f := &Font{doc: doc}

	glyphOrder := doc.child("GlyphOrder")
	if glyphOrder == nil {
		return nil, &FormatError{Element: "ttFont", Reason: "missing GlyphOrder"}
	}
	for _, g := range glyphOrder.children("GlyphID") {
		name, _ := g.attr("name")
		f.GlyphOrder = append(f.GlyphOrder, name)
	}

	err = f.readCFF(doc.child("CFF"))
	if err != nil {
		return nil, err
	}
	for _, name := range f.GlyphOrder {
		if _, ok := f.CharStrings[name]; !ok {
			return nil, &FormatError{Element: "CharStrings", Reason: "no outline for glyph " + name}
		}
	}

	f.readCMap(doc.child("cmap"))

	os2 := doc.child("OS_2")
	if os2 == nil {
		return nil, &FormatError{Element: "ttFont", Reason: "missing OS_2"}
	}
	asc, _, err := os2.intValue("sTypoAscender")
	if err != nil {
		return nil, err
	}
	desc, _, err := os2.intValue("sTypoDescender")
	if err != nil {
		return nil, err
	}
	f.TypoAscender = funit.Int16(asc)
	f.TypoDescender = funit.Int16(desc)

	f.HMetrics, err = readMetrics(doc.child("hmtx"), "width", "lsb")
	if err != nil {
		return nil, err
	}
	if vmtx := doc.child("vmtx"); vmtx != nil {
		f.VMetrics, err = readMetrics(vmtx, "height", "tsb")
		if err != nil {
			return nil, err
		}
	}

	if gsub := doc.child("GSUB"); gsub != nil {
		f.GSUB, err = readGSUB(gsub, f.GlyphIDs())
		if err != nil {
			return nil, err
		}
	}

	hangul.Logger().Info("font loaded",
		"name", f.FontName, "glyphs", len(f.GlyphOrder), "cid", f.IsCIDKeyed())
	return f, nil
}

func (f *Font) readCFF(cff *node) error {
	if cff == nil {
		return &FormatError{Element: "ttFont", Reason: "missing CFF table (only CFF-based fonts are supported)"}
	}
	cffFont := cff.child("CFFFont")
	if cffFont == nil {
		return &FormatError{Element: "CFF", Reason: "missing CFFFont"}
	}
	f.FontName, _ = cffFont.attr("name")

	if ros := cffFont.child("ROS"); ros != nil {
		f.ROS = &ROS{}
		f.ROS.Registry, _ = ros.attr("Registry")
		f.ROS.Ordering, _ = ros.attr("Order")
		if s, ok := ros.attr("Supplement"); ok {
			supplement, err := parseInt(s)
			if err != nil {
				return &FormatError{Element: "ROS", Reason: err.Error()}
			}
			f.ROS.Supplement = supplement
		}
		cidCount, ok, err := cffFont.intValue("CIDCount")
		if err != nil {
			return err
		}
		if !ok {
			cidCount = 8720 // default value from the CFF specification
		}
		f.CIDCount = cidCount

		for _, fd := range cffFont.child("FDArray").children("FontDict") {
			dict, err := readPrivate(fd.child("Private"))
			if err != nil {
				return err
			}
			f.FontDicts = append(f.FontDicts, dict)
		}
		if len(f.FontDicts) == 0 {
			return &FormatError{Element: "CFFFont", Reason: "CID-keyed font without FDArray"}
		}
	} else {
		dict, err := readPrivate(cffFont.child("Private"))
		if err != nil {
			return err
		}
		f.FontDicts = []*FontDict{dict}
	}

	f.GlobalSubrs = readSubrs(cff.child("GlobalSubrs"))

	charStrings := cffFont.child("CharStrings")
	if charStrings == nil {
		return &FormatError{Element: "CFFFont", Reason: "missing CharStrings"}
	}
	f.CharStrings = make(map[string]*CharString)
	for _, cs := range charStrings.children("CharString") {
		name, _ := cs.attr("name")
		fdIndex := 0
		if s, ok := cs.attr("fdSelectIndex"); ok {
			idx, err := parseInt(s)
			if err != nil {
				return &FormatError{Element: "CharString", Reason: err.Error()}
			}
			fdIndex = idx
		}
		if fdIndex < 0 || fdIndex >= len(f.FontDicts) {
			return &FormatError{
				Element: "CharString",
				Reason:  fmt.Sprintf("glyph %s: invalid fdSelectIndex %d", name, fdIndex),
			}
		}
		f.CharStrings[name] = &CharString{Code: cs.Text, FDIndex: fdIndex}
	}
	return nil
}

func readPrivate(private *node) (*FontDict, error) {
	dict := &FontDict{}
	if private == nil {
		return dict, nil
	}
	var err error
	dict.DefaultWidthX, _, err = private.floatValue("defaultWidthX")
	if err != nil {
		return nil, err
	}
	dict.NominalWidthX, _, err = private.floatValue("nominalWidthX")
	if err != nil {
		return nil, err
	}
	dict.Subrs = readSubrs(private.child("Subrs"))
	return dict, nil
}

func readSubrs(subrs *node) []string {
	var res []string
	for _, cs := range subrs.children("CharString") {
		res = append(res, cs.Text)
	}
	return res
}

// readCMap collects the mappings of all Unicode subtables.  Earlier
// subtables take precedence.
func (f *Font) readCMap(cmap *node) {
	f.CMap = make(map[rune]string)
	if cmap == nil {
		return
	}
	for _, sub := range cmap.Nodes {
		platformID, _ := sub.attr("platformID")
		platEncID, _ := sub.attr("platEncID")
		isUnicode := platformID == "0" ||
			platformID == "3" && (platEncID == "1" || platEncID == "10")
		if !isUnicode {
			continue
		}
		for _, m := range sub.children("map") {
			code, _ := m.attr("code")
			name, _ := m.attr("name")
			r, err := parseInt(code)
			if err != nil {
				hangul.Logger().Warn("ignoring cmap entry", "code", code, "error", err)
				continue
			}
			if _, seen := f.CMap[rune(r)]; !seen {
				f.CMap[rune(r)] = name
			}
		}
	}
}

func readMetrics(table *node, advanceAttr, bearingAttr string) (map[string]Metric, error) {
	res := make(map[string]Metric)
	for _, m := range table.children("mtx") {
		name, _ := m.attr("name")
		adv, _ := m.attr(advanceAttr)
		bearing, _ := m.attr(bearingAttr)
		a, err := parseInt(adv)
		if err != nil {
			return nil, &FormatError{Element: table.name(), Reason: err.Error()}
		}
		b, err := parseInt(bearing)
		if err != nil {
			return nil, &FormatError{Element: table.name(), Reason: err.Error()}
		}
		res[name] = Metric{Advance: funit.Uint16(a), Bearing: funit.Int16(b)}
	}
	return res, nil
}

// WriteTTX writes the font as a TTX file.
func (f *Font) WriteTTX(w io.Writer) error {
	if f.doc == nil {
		return errors.New("fonttable: font was not read from a TTX file")
	}

	doc := f.doc.shallow()

	glyphOrder := newNode("GlyphOrder")
	for i, name := range f.GlyphOrder {
		glyphOrder.add(newNode("GlyphID", "id", strconv.Itoa(i), "name", name))
	}
	doc.replace(glyphOrder)

	doc.replace(f.metricsNode("hmtx", f.HMetrics, "width", "lsb"))
	if f.VMetrics != nil {
		doc.replace(f.metricsNode("vmtx", f.VMetrics, "height", "tsb"))
	}

	cff := doc.child("CFF").shallow()
	cffFont := cff.child("CFFFont").shallow()
	if f.IsCIDKeyed() {
		cffFont.replace(valueNode("CIDCount", strconv.Itoa(f.CIDCount)))
	}
	charStrings := newNode("CharStrings")
	for _, name := range f.GlyphOrder {
		cs := f.CharStrings[name]
		n := newNode("CharString", "name", name)
		if f.IsCIDKeyed() {
			n.setAttr("fdSelectIndex", strconv.Itoa(cs.FDIndex))
		}
		n.Text = cs.Code
		charStrings.add(n)
	}
	cffFont.replace(charStrings)
	cff.replace(cffFont)
	doc.replace(cff)

	if f.GSUB != nil {
		gsub, err := writeGSUB(f.GSUB, f.GlyphOrder)
		if err != nil {
			return err
		}
		doc.replace(gsub)
	}

	_, err := io.WriteString(w, xml.Header)
	if err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	err = doc.encode(enc)
	if err != nil {
		return err
	}
	err = enc.Flush()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func (f *Font) metricsNode(tag string, metrics map[string]Metric, advanceAttr, bearingAttr string) *node {
	table := newNode(tag)
	for _, name := range f.GlyphOrder {
		m, ok := metrics[name]
		if !ok {
			continue
		}
		table.add(newNode("mtx",
			"name", name,
			advanceAttr, strconv.Itoa(int(m.Advance)),
			bearingAttr, strconv.Itoa(int(m.Bearing))))
	}
	return table
}
