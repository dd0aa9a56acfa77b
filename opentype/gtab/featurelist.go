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

	"seehuhn.de/go/hangul/opentype/parser"
)

// FeatureIndex enumerates features.
// It is used as an index into the FeatureListInfo.
// Valid values are in the range from 0 to 0xFFFE.
type FeatureIndex uint16

// NoRequiredFeature is used in [Features] to indicate the absence of a
// required feature.
const NoRequiredFeature FeatureIndex = 0xFFFF

// FeatureListInfo contains the contents of an OpenType "Feature List" table.
type FeatureListInfo []*Feature

// Feature describes an OpenType feature.
type Feature struct {
	// Tag describes the function of this feature.
	// https://learn.microsoft.com/en-us/typography/opentype/spec/featuretags
	Tag string

	// Lookups is a list of lookup indices that are used by this feature.
	Lookups []LookupIndex
}

func (f Feature) String() string {
	return fmt.Sprintf("%s:%v", f.Tag, f.Lookups)
}

// https://learn.microsoft.com/en-us/typography/opentype/spec/chapter2#feature-list-table
func readFeatureList(p *parser.Parser, pos int64) (FeatureListInfo, error) {
	err := p.SeekPos(pos)
	if err != nil {
		return nil, err
	}

	featureCount, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	type featureRecord struct {
		tag  string
		offs uint16
	}
	records := make([]featureRecord, featureCount)
	for i := range records {
		buf, err := p.ReadBytes(6)
		if err != nil {
			return nil, err
		}
		records[i] = featureRecord{
			tag:  string(buf[:4]),
			offs: uint16(buf[4])<<8 | uint16(buf[5]),
		}
	}

	info := make(FeatureListInfo, len(records))
	for i, rec := range records {
		err = p.SeekPos(pos + int64(rec.offs))
		if err != nil {
			return nil, err
		}
		// The featureParamsOffset is ignored.
		_, err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
		lookupIndices, err := p.ReadUint16Slice()
		if err != nil {
			return nil, err
		}
		lookups := make([]LookupIndex, len(lookupIndices))
		for j, idx := range lookupIndices {
			lookups[j] = LookupIndex(idx)
		}
		info[i] = &Feature{
			Tag:     rec.tag,
			Lookups: lookups,
		}
	}

	return info, nil
}

func (info FeatureListInfo) encode() []byte {
	if info == nil {
		return nil
	}

	offs := make([]int, len(info))
	totalSize := 2 + 6*len(info)
	for i, f := range info {
		offs[i] = totalSize
		totalSize += 4 + 2*len(f.Lookups)
	}
	if len(info) > 0 && offs[len(info)-1] > 0xFFFF {
		panic("feature list too large")
	}

	buf := make([]byte, totalSize)
	buf[0] = byte(len(info) >> 8)
	buf[1] = byte(len(info))
	for i, f := range info {
		copy(buf[2+6*i:6+6*i], fmt.Sprintf("%-4.4s", f.Tag))
		buf[6+6*i] = byte(offs[i] >> 8)
		buf[7+6*i] = byte(offs[i])
	}
	for i, f := range info {
		p := offs[i]
		// featureParamsOffset stays zero
		buf[p+2] = byte(len(f.Lookups) >> 8)
		buf[p+3] = byte(len(f.Lookups))
		for j, l := range f.Lookups {
			buf[p+4+2*j] = byte(l >> 8)
			buf[p+5+2*j] = byte(l)
		}
	}
	return buf
}
