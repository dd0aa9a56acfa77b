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
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/text/language"

	"seehuhn.de/go/hangul"
	"seehuhn.de/go/hangul/opentype/parser"
)

// ScriptListInfo contains the information of a ScriptList table.
// It maps BCP 47 tags to OpenType font features.  The default language
// system of a script is stored under the tag without a language, for
// example "und-Hang".  The "DFLT" script is stored under [language.Und].
type ScriptListInfo map[language.Tag]*Features

// Features describes the mandatory and optional features for a script/language.
type Features struct {
	Required FeatureIndex // NoRequiredFeature, if no required feature
	Optional []FeatureIndex
}

type otfScript string
type otfLang string

const otfDefaultScript otfScript = "DFLT"

// otfLanguage lists the OpenType language tags which differ from the
// ISO 639-3 code of the corresponding language.
// https://learn.microsoft.com/en-us/typography/opentype/spec/languagetags
var otfLanguage = map[otfLang]string{
	"BGR ": "bg",
	"CSY ": "cs",
	"ESP ": "es",
	"EUQ ": "eu",
	"JAN ": "ja",
	"PLK ": "pl",
	"PTG ": "pt",
	"ROM ": "ro",
	"SKY ": "sk",
	"SVE ": "sv",
	"TRK ": "tr",
	"ZHS ": "zh",
}

func otfToBCP47(script otfScript, lang otfLang) (language.Tag, error) {
	var parts []any
	if lang != "" {
		name, ok := otfLanguage[otfLang(fmt.Sprintf("%-4s", lang))]
		if !ok {
			name = strings.ToLower(strings.TrimSpace(string(lang)))
		}
		base, err := language.ParseBase(name)
		if err != nil {
			return language.Und, err
		}
		parts = append(parts, base)
	}
	if script != otfDefaultScript {
		s := strings.TrimSpace(string(script))
		if s == "" {
			return language.Und, fmt.Errorf("empty script tag")
		}
		sc, err := language.ParseScript(strings.ToUpper(s[:1]) + strings.ToLower(s[1:]))
		if err != nil {
			return language.Und, err
		}
		parts = append(parts, sc)
	}
	if len(parts) == 0 {
		return language.Und, nil
	}
	return language.Compose(parts...)
}

func bcp47ToOtf(tag language.Tag) (otfScript, otfLang, error) {
	base, script, _ := tag.Raw()

	s := otfDefaultScript
	if script.String() != "Zzzz" {
		s = otfScript(strings.ToLower(script.String()))
	}

	var lang otfLang
	if base.String() != "und" {
		for otf, name := range otfLanguage {
			if name == base.String() {
				lang = otf
			}
		}
		if lang == "" {
			iso3 := base.ISO3()
			if len(iso3) != 3 {
				return "", "", fmt.Errorf("no OpenType language tag for %q", tag)
			}
			lang = otfLang(strings.ToUpper(iso3) + " ")
		}
	}
	if s == otfDefaultScript && lang != "" {
		return "", "", fmt.Errorf("language %q without script", tag)
	}
	return s, lang, nil
}

// https://learn.microsoft.com/en-us/typography/opentype/spec/chapter2#script-list-table-and-script-record
func readScriptList(p *parser.Parser, pos int64) (ScriptListInfo, error) {
	err := p.SeekPos(pos)
	if err != nil {
		return nil, err
	}

	scriptCount, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	type scriptRecord struct {
		script otfScript
		offset uint16
	}
	records := make([]scriptRecord, scriptCount)
	for i := range records {
		buf, err := p.ReadBytes(6)
		if err != nil {
			return nil, err
		}
		records[i] = scriptRecord{
			script: otfScript(buf[:4]),
			offset: uint16(buf[4])<<8 | uint16(buf[5]),
		}
		if int(records[i].offset) < 2+6*int(scriptCount) {
			return nil, p.Error("invalid script table offset")
		}
	}

	info := ScriptListInfo{}
	for _, rec := range records {
		err = info.readScriptTable(rec.script, p, pos+int64(rec.offset))
		if err != nil {
			return nil, err
		}
	}

	return info, nil
}

// https://learn.microsoft.com/en-us/typography/opentype/spec/chapter2#script-table-and-language-system-record
func (info ScriptListInfo) readScriptTable(script otfScript, p *parser.Parser, pos int64) error {
	err := p.SeekPos(pos)
	if err != nil {
		return err
	}

	data, err := p.ReadBytes(4)
	if err != nil {
		return err
	}
	defaultLangSysOffset := uint16(data[0])<<8 | uint16(data[1])
	langSysCount := uint16(data[2])<<8 | uint16(data[3])

	if defaultLangSysOffset > 0 && int(defaultLangSysOffset) < 4+6*int(langSysCount) {
		return p.Error("invalid defaultLangSysOffset")
	}

	type langSysRecord struct {
		lang   otfLang
		offset uint16
	}

	var records []langSysRecord
	if defaultLangSysOffset != 0 {
		records = append(records, langSysRecord{
			offset: defaultLangSysOffset,
		})
	}
	for range int(langSysCount) {
		buf, err := p.ReadBytes(6)
		if err != nil {
			return err
		}
		records = append(records, langSysRecord{
			lang:   otfLang(buf[:4]),
			offset: uint16(buf[4])<<8 | uint16(buf[5]),
		})
	}

	for _, record := range records {
		ff, err := readLangSysTable(p, pos+int64(record.offset))
		if err != nil {
			return err
		}
		tag, err := otfToBCP47(script, record.lang)
		if err != nil {
			hangul.Logger().Debug("skipping language system",
				"script", string(script), "lang", string(record.lang), "error", err)
			continue
		}
		info[tag] = ff
	}

	return nil
}

// https://learn.microsoft.com/en-us/typography/opentype/spec/chapter2#language-system-table
func readLangSysTable(p *parser.Parser, pos int64) (*Features, error) {
	err := p.SeekPos(pos)
	if err != nil {
		return nil, err
	}

	data, err := p.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	lookupOrderOffset := uint16(data[0])<<8 | uint16(data[1])
	requiredFeatureIndex := FeatureIndex(data[2])<<8 | FeatureIndex(data[3])
	if lookupOrderOffset != 0 {
		return nil, &NotSupportedError{
			Feature: "use of reordering tables",
		}
	}

	indices, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}
	featureIndices := make([]FeatureIndex, 0, len(indices))
	for _, idx := range indices {
		if idx == 0xFFFF {
			continue
		}
		featureIndices = append(featureIndices, FeatureIndex(idx))
	}

	return &Features{
		Required: requiredFeatureIndex,
		Optional: featureIndices,
	}, nil
}

func (info ScriptListInfo) encode() []byte {
	if info == nil {
		return nil
	}

	type langSysRecord struct {
		lang    otfLang
		langSys *Features
		offs    int
	}
	type scriptRecord struct {
		script      otfScript
		defaultLang *langSysRecord
		langs       []*langSysRecord
		offs        int
	}

	byScript := map[otfScript]*scriptRecord{}
	for tag, langSys := range info {
		script, lang, err := bcp47ToOtf(tag)
		if err != nil {
			hangul.Logger().Debug("skipping language system", "tag", tag, "error", err)
			continue
		}
		rec := byScript[script]
		if rec == nil {
			rec = &scriptRecord{script: script}
			byScript[script] = rec
		}
		lRec := &langSysRecord{lang: lang, langSys: langSys}
		if lang == "" {
			rec.defaultLang = lRec
		} else {
			rec.langs = append(rec.langs, lRec)
		}
	}

	scripts := make([]*scriptRecord, 0, len(byScript))
	for _, rec := range byScript {
		slices.SortFunc(rec.langs, func(a, b *langSysRecord) int {
			return strings.Compare(string(a.lang), string(b.lang))
		})
		scripts = append(scripts, rec)
	}
	slices.SortFunc(scripts, func(a, b *scriptRecord) int {
		return strings.Compare(string(a.script), string(b.script))
	})

	total := 2 + 6*len(scripts)
	for _, sRec := range scripts {
		sRec.offs = total
		pos := 4 + 6*len(sRec.langs)
		if sRec.defaultLang != nil {
			sRec.defaultLang.offs = pos
			pos += 6 + 2*len(sRec.defaultLang.langSys.Optional)
		}
		for _, lRec := range sRec.langs {
			lRec.offs = pos
			pos += 6 + 2*len(lRec.langSys.Optional)
		}
		total += pos
	}

	buf := make([]byte, 0, total)
	buf = append(buf, byte(len(scripts)>>8), byte(len(scripts)))
	for _, sRec := range scripts {
		buf = append(buf, string(sRec.script)...)
		buf = append(buf, byte(sRec.offs>>8), byte(sRec.offs))
	}
	for _, sRec := range scripts {
		var defaultOffs int
		if sRec.defaultLang != nil {
			defaultOffs = sRec.defaultLang.offs
		}
		buf = append(buf,
			byte(defaultOffs>>8), byte(defaultOffs),
			byte(len(sRec.langs)>>8), byte(len(sRec.langs)),
		)
		for _, lRec := range sRec.langs {
			buf = append(buf, string(lRec.lang)...)
			buf = append(buf, byte(lRec.offs>>8), byte(lRec.offs))
		}
		if sRec.defaultLang != nil {
			buf = sRec.defaultLang.langSys.appendLangSys(buf)
		}
		for _, lRec := range sRec.langs {
			buf = lRec.langSys.appendLangSys(buf)
		}
	}
	return buf
}

func (ff *Features) appendLangSys(buf []byte) []byte {
	buf = append(buf,
		0, 0, // lookupOrderOffset
		byte(ff.Required>>8), byte(ff.Required),
		byte(len(ff.Optional)>>8), byte(len(ff.Optional)),
	)
	for _, idx := range ff.Optional {
		buf = append(buf, byte(idx>>8), byte(idx))
	}
	return buf
}

// ParseOpenTypeTags converts an OpenType script tag and language system
// tag into a BCP 47 language tag.  An empty language system tag denotes
// the default language system of the script.
func ParseOpenTypeTags(script, lang string) (language.Tag, error) {
	return otfToBCP47(otfScript(script), otfLang(lang))
}

// OpenTypeTags converts a BCP 47 language tag into an OpenType script tag
// and language system tag.  The language system tag is empty for the
// default language system.
func OpenTypeTags(tag language.Tag) (script, lang string, err error) {
	s, l, err := bcp47ToOtf(tag)
	return string(s), string(l), err
}
