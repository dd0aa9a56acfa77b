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
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/hangul/opentype/parser"
)

// LookupMetaInfo contains information associated with a lookup but not
// specific to a subtable.
type LookupMetaInfo struct {
	LookupType       uint16
	LookupFlag       LookupFlags
	MarkFilteringSet uint16
}

// LookupFlags contains bits which modify application of a lookup to a glyph string.
// https://learn.microsoft.com/en-us/typography/opentype/spec/chapter2#lookupFlags
type LookupFlags uint16

// Bit values for LookupFlag.
const (
	LookupRightToLeft         LookupFlags = 0x0001
	LookupIgnoreBaseGlyphs    LookupFlags = 0x0002
	LookupIgnoreLigatures     LookupFlags = 0x0004
	LookupIgnoreMarks         LookupFlags = 0x0008
	LookupUseMarkFilteringSet LookupFlags = 0x0010
	LookupMarkAttachTypeMask  LookupFlags = 0xFF00
)

// GSUB lookup types.
const (
	TypeSingle       uint16 = 1
	TypeMultiple     uint16 = 2
	TypeAlternate    uint16 = 3
	TypeLigature     uint16 = 4
	TypeContext      uint16 = 5
	TypeChainContext uint16 = 6
	TypeExtension    uint16 = 7
	TypeReverseChain uint16 = 8
)

// LookupIndex enumerates lookups.
// It is used as an index into a LookupList.
type LookupIndex uint16

// LookupList contains the information from a Lookup List Table.
// https://learn.microsoft.com/en-us/typography/opentype/spec/chapter2#lookup-list-table
type LookupList []*LookupTable

// LookupTable represents a lookup table inside a "GSUB" table.
// https://learn.microsoft.com/en-us/typography/opentype/spec/chapter2#lookup-table
type LookupTable struct {
	Meta      *LookupMetaInfo
	Subtables Subtables
}

// Subtable represents a subtable of a "GSUB" lookup table.
type Subtable interface {
	// Apply attempts to apply the subtable at position a of the glyph
	// sequence.  Only glyphs at positions before b may be matched as input;
	// backtrack and lookahead context may extend beyond this range.
	// If the subtable does not apply, nil is returned.
	Apply(seq []glyph.ID, a, b int) *Match

	// EncodeLen returns the number of bytes in the binary representation.
	EncodeLen() int

	// Encode returns the binary representation of the subtable.
	Encode() []byte
}

// Match describes the effect of applying a subtable at a position.
type Match struct {
	InputPos []int      // positions of the matched input glyphs
	Replace  []glyph.ID // if non-nil, the replacement for the input glyphs
	Actions  SeqLookups // nested lookups, used for contextual subtables
	Next     int        // the position after the matched input
}

// Subtables is a slice of Subtable.
type Subtables []Subtable

// Apply tries the subtables one by one and returns the match of the first
// subtable which applies.  If no subtable matches, nil is returned.
func (ss Subtables) Apply(seq []glyph.ID, a, b int) *Match {
	for _, subtable := range ss {
		if m := subtable.Apply(seq, a, b); m != nil {
			return m
		}
	}
	return nil
}

// encodeLen returns the number of bytes required to encode the lookup
// table, including all subtables.
func (li *LookupTable) encodeLen() int {
	total := li.headerLen()
	for _, subtable := range li.Subtables {
		total += subtable.EncodeLen()
	}
	return total
}

func (li *LookupTable) headerLen() int {
	total := 6 + 2*len(li.Subtables)
	if li.Meta.LookupFlag&LookupUseMarkFilteringSet != 0 {
		total += 2
	}
	return total
}

// subtableReader is a function that can decode a subtable.
type subtableReader func(*parser.Parser, int64, *LookupMetaInfo) (Subtable, error)

func readLookupList(p *parser.Parser, pos int64, sr subtableReader) (LookupList, error) {
	err := p.SeekPos(pos)
	if err != nil {
		return nil, err
	}

	lookupOffsets, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}

	res := make(LookupList, len(lookupOffsets))

	for i, offs := range lookupOffsets {
		lookupTablePos := pos + int64(offs)
		err := p.SeekPos(lookupTablePos)
		if err != nil {
			return nil, err
		}
		buf, err := p.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		lookupType := uint16(buf[0])<<8 | uint16(buf[1])
		lookupFlag := LookupFlags(buf[2])<<8 | LookupFlags(buf[3])
		subtableOffsets, err := p.ReadUint16Slice()
		if err != nil {
			return nil, err
		}
		var markFilteringSet uint16
		if lookupFlag&LookupUseMarkFilteringSet != 0 {
			markFilteringSet, err = p.ReadUint16()
			if err != nil {
				return nil, err
			}
		}

		meta := &LookupMetaInfo{
			LookupType:       lookupType,
			LookupFlag:       lookupFlag,
			MarkFilteringSet: markFilteringSet,
		}

		subtables := make(Subtables, len(subtableOffsets))
		for j, subtableOffset := range subtableOffsets {
			subtablePos := lookupTablePos + int64(subtableOffset)
			if lookupType == TypeExtension {
				subtablePos, err = readExtension(p, subtablePos, meta, j == 0)
				if err != nil {
					return nil, err
				}
			}
			subtable, err := sr(p, subtablePos, meta)
			if err != nil {
				return nil, err
			}
			subtables[j] = subtable
		}
		if meta.LookupType == TypeExtension {
			return nil, p.Error("empty extension lookup")
		}

		res[i] = &LookupTable{
			Meta:      meta,
			Subtables: subtables,
		}
	}
	return res, nil
}

// readExtension reads an extension subtable and returns the position of the
// wrapped subtable.  The lookup type in meta is replaced by the type of the
// wrapped subtables.
// https://learn.microsoft.com/en-us/typography/opentype/spec/gsub#lookuptype-7-extension-substitution
func readExtension(p *parser.Parser, pos int64, meta *LookupMetaInfo, first bool) (int64, error) {
	err := p.SeekPos(pos)
	if err != nil {
		return 0, err
	}
	buf, err := p.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	format := uint16(buf[0])<<8 | uint16(buf[1])
	extensionLookupType := uint16(buf[2])<<8 | uint16(buf[3])
	extensionOffset := int64(buf[4])<<24 | int64(buf[5])<<16 | int64(buf[6])<<8 | int64(buf[7])
	if format != 1 || extensionLookupType == TypeExtension {
		return 0, p.Error("invalid extension subtable")
	}
	if first {
		meta.LookupType = extensionLookupType
	} else if meta.LookupType != extensionLookupType {
		return 0, p.Error("inconsistent extension lookup types")
	}
	return pos + extensionOffset, nil
}

func (list LookupList) encode() []byte {
	if list == nil {
		return nil
	}

	lookupCount := len(list)

	lookupOffsets := make([]int, lookupCount)
	pos := 2 + 2*lookupCount
	for i, li := range list {
		lookupOffsets[i] = pos
		pos += li.encodeLen()
	}
	if pos > 0xFFFF {
		return list.encodeExtension()
	}

	res := make([]byte, 0, pos)
	res = append(res, byte(lookupCount>>8), byte(lookupCount))
	for i := range list {
		res = append(res, byte(lookupOffsets[i]>>8), byte(lookupOffsets[i]))
	}

	for _, li := range list {
		subtableCount := len(li.Subtables)
		res = append(res,
			byte(li.Meta.LookupType>>8), byte(li.Meta.LookupType),
			byte(li.Meta.LookupFlag>>8), byte(li.Meta.LookupFlag),
			byte(subtableCount>>8), byte(subtableCount))

		stPos := li.headerLen()
		for _, st := range li.Subtables {
			res = append(res, byte(stPos>>8), byte(stPos))
			stPos += st.EncodeLen()
		}
		if li.Meta.LookupFlag&LookupUseMarkFilteringSet != 0 {
			res = append(res,
				byte(li.Meta.MarkFilteringSet>>8), byte(li.Meta.MarkFilteringSet))
		}
		for _, st := range li.Subtables {
			res = append(res, st.Encode()...)
		}
	}
	return res
}

// encodeExtension encodes the lookup list using extension lookups.  The
// lookup tables only contain extension subtables, the wrapped subtables
// are stored after the last lookup table and are addressed using 32-bit
// offsets.
func (list LookupList) encodeExtension() []byte {
	lookupCount := len(list)

	lookupOffsets := make([]int, lookupCount)
	pos := 2 + 2*lookupCount
	for i, li := range list {
		lookupOffsets[i] = pos
		pos += li.headerLen() + 8*len(li.Subtables)
	}
	dataStart := pos

	res := make([]byte, 0, dataStart)
	res = append(res, byte(lookupCount>>8), byte(lookupCount))
	for i := range list {
		res = append(res, byte(lookupOffsets[i]>>8), byte(lookupOffsets[i]))
	}

	dataPos := dataStart
	for i, li := range list {
		subtableCount := len(li.Subtables)
		lookupType := TypeExtension
		res = append(res,
			byte(lookupType>>8), byte(lookupType),
			byte(li.Meta.LookupFlag>>8), byte(li.Meta.LookupFlag),
			byte(subtableCount>>8), byte(subtableCount))
		headerLen := li.headerLen()
		for j := range li.Subtables {
			stPos := headerLen + 8*j
			res = append(res, byte(stPos>>8), byte(stPos))
		}
		if li.Meta.LookupFlag&LookupUseMarkFilteringSet != 0 {
			res = append(res,
				byte(li.Meta.MarkFilteringSet>>8), byte(li.Meta.MarkFilteringSet))
		}
		for j, st := range li.Subtables {
			extPos := lookupOffsets[i] + headerLen + 8*j
			offs := dataPos - extPos
			res = append(res,
				0, 1, // format
				byte(li.Meta.LookupType>>8), byte(li.Meta.LookupType),
				byte(offs>>24), byte(offs>>16), byte(offs>>8), byte(offs))
			dataPos += st.EncodeLen()
		}
	}
	for _, li := range list {
		for _, st := range li.Subtables {
			res = append(res, st.Encode()...)
		}
	}
	return res
}
