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

// Package gtab reads, writes and applies OpenType "GSUB" tables.
//
// Only the lookup types needed for positional jamo variants are
// interpreted: single substitution, multiple substitution, ligature
// substitution and chained contexts in coverage form.  Lookup flags other
// than zero are preserved but ignored when lookups are applied.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/gsub
package gtab

import (
	"fmt"

	"seehuhn.de/go/hangul/opentype/parser"
)

// Info contains the information from a "GSUB" table.
type Info struct {
	ScriptList  ScriptListInfo
	FeatureList FeatureListInfo
	LookupList  LookupList
}

// Clone returns a copy of info.  The lookup subtables are shared between
// the original and the copy, all lists are freshly allocated.
func (info *Info) Clone() *Info {
	if info == nil {
		return nil
	}
	res := &Info{
		ScriptList:  make(ScriptListInfo, len(info.ScriptList)),
		FeatureList: make(FeatureListInfo, len(info.FeatureList)),
		LookupList:  make(LookupList, len(info.LookupList)),
	}
	for tag, ff := range info.ScriptList {
		res.ScriptList[tag] = &Features{
			Required: ff.Required,
			Optional: append([]FeatureIndex(nil), ff.Optional...),
		}
	}
	for i, f := range info.FeatureList {
		res.FeatureList[i] = &Feature{
			Tag:     f.Tag,
			Lookups: append([]LookupIndex(nil), f.Lookups...),
		}
	}
	for i, l := range info.LookupList {
		meta := *l.Meta
		res.LookupList[i] = &LookupTable{
			Meta:      &meta,
			Subtables: append(Subtables(nil), l.Subtables...),
		}
	}
	return res
}

// Encode returns the binary representation of a "GSUB" table.
func (info *Info) Encode() ([]byte, error) {
	for i, l := range info.LookupList {
		for _, st := range l.Subtables {
			if _, isOpaque := st.(*Opaque); isOpaque {
				return nil, &NotSupportedError{
					Feature: fmt.Sprintf("encoding opaque lookup %d (type %d)",
						i, l.Meta.LookupType),
				}
			}
		}
	}

	scriptList := info.ScriptList.encode()
	featureList := info.FeatureList.encode()
	lookupList := info.LookupList.encode()

	const headerLen = 10
	scriptListOffset := headerLen
	featureListOffset := scriptListOffset + len(scriptList)
	lookupListOffset := featureListOffset + len(featureList)
	if lookupListOffset > 0xFFFF {
		return nil, &NotSupportedError{
			Feature: "GSUB script and feature lists larger than 64kB",
		}
	}

	buf := make([]byte, 0, lookupListOffset+len(lookupList))
	buf = append(buf,
		0, 1, // major version
		0, 0, // minor version
		byte(scriptListOffset>>8), byte(scriptListOffset),
		byte(featureListOffset>>8), byte(featureListOffset),
		byte(lookupListOffset>>8), byte(lookupListOffset),
	)
	buf = append(buf, scriptList...)
	buf = append(buf, featureList...)
	buf = append(buf, lookupList...)
	return buf, nil
}

// Read decodes a binary "GSUB" table.
func Read(tableName string, data []byte) (*Info, error) {
	p := parser.New(tableName, data)

	buf, err := p.ReadBytes(10)
	if err != nil {
		return nil, err
	}
	majorVersion := uint16(buf[0])<<8 | uint16(buf[1])
	minorVersion := uint16(buf[2])<<8 | uint16(buf[3])
	scriptListOffset := int64(buf[4])<<8 | int64(buf[5])
	featureListOffset := int64(buf[6])<<8 | int64(buf[7])
	lookupListOffset := int64(buf[8])<<8 | int64(buf[9])
	if majorVersion != 1 || minorVersion > 1 {
		return nil, &NotSupportedError{
			Feature: fmt.Sprintf("%s table version %d.%d",
				tableName, majorVersion, minorVersion),
		}
	}
	endOfHeader := int64(10)
	if minorVersion == 1 {
		// The feature variations table is ignored.
		endOfHeader += 4
	}
	for _, offset := range []int64{scriptListOffset, featureListOffset, lookupListOffset} {
		if offset != 0 && offset < endOfHeader || offset > p.Size() {
			return nil, p.Error("invalid offset %d in header", offset)
		}
	}

	info := &Info{}
	if scriptListOffset != 0 {
		info.ScriptList, err = readScriptList(p, scriptListOffset)
		if err != nil {
			return nil, err
		}
	}
	if featureListOffset != 0 {
		info.FeatureList, err = readFeatureList(p, featureListOffset)
		if err != nil {
			return nil, err
		}
	}
	if lookupListOffset != 0 {
		info.LookupList, err = readLookupList(p, lookupListOffset, readGsubSubtable)
		if err != nil {
			return nil, err
		}
	}

	for _, ff := range info.ScriptList {
		if ff.Required != NoRequiredFeature && int(ff.Required) >= len(info.FeatureList) {
			return nil, p.Error("required feature index %d out of range", ff.Required)
		}
		for _, idx := range ff.Optional {
			if int(idx) >= len(info.FeatureList) {
				return nil, p.Error("feature index %d out of range", idx)
			}
		}
	}
	for _, f := range info.FeatureList {
		for _, idx := range f.Lookups {
			if int(idx) >= len(info.LookupList) {
				return nil, p.Error("lookup index %d out of range", idx)
			}
		}
	}

	return info, nil
}

// NotSupportedError is returned when a table uses a feature which is
// not implemented by this package.
type NotSupportedError struct {
	Feature string
}

func (err *NotSupportedError) Error() string {
	return "gtab: " + err.Feature + " not supported"
}
