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

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/hangul/opentype/coverage"
	"seehuhn.de/go/hangul/opentype/parser"
)

// readGsubSubtable reads a GSUB subtable.
// This function can be used as the subtableReader argument to readLookupList.
func readGsubSubtable(p *parser.Parser, pos int64, meta *LookupMetaInfo) (Subtable, error) {
	err := p.SeekPos(pos)
	if err != nil {
		return nil, err
	}

	format, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	switch 10*meta.LookupType + format {
	case 1_1:
		return readGsub1_1(p, pos)
	case 1_2:
		return readGsub1_2(p, pos)
	case 2_1:
		return readGsub2_1(p, pos)
	case 4_1:
		return readGsub4_1(p, pos)
	case 6_3:
		return readChainedSeqContext3(p, pos)
	default:
		return nil, &NotSupportedError{
			Feature: fmt.Sprintf("GSUB lookup type %d, format %d",
				meta.LookupType, format),
		}
	}
}

// Gsub1_1 is a Single Substitution GSUB subtable (type 1, format 1).
// Input glyphs covered by Cov are replaced by the glyph with ID
// increased by Delta.
// https://learn.microsoft.com/en-us/typography/opentype/spec/gsub#11-single-substitution-format-1
type Gsub1_1 struct {
	Cov   coverage.Table
	Delta glyph.ID
}

func readGsub1_1(p *parser.Parser, subtablePos int64) (*Gsub1_1, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	coverageOffset := int64(buf[0])<<8 | int64(buf[1])
	deltaGlyphID := glyph.ID(buf[2])<<8 | glyph.ID(buf[3])
	cov, err := coverage.Read(p, subtablePos+coverageOffset)
	if err != nil {
		return nil, err
	}
	res := &Gsub1_1{
		Cov:   cov,
		Delta: deltaGlyphID,
	}
	return res, nil
}

// Apply implements the Subtable interface.
func (l *Gsub1_1) Apply(seq []glyph.ID, a, b int) *Match {
	gid := seq[a]
	if !l.Cov.Contains(gid) {
		return nil
	}
	return &Match{
		InputPos: []int{a},
		Replace:  []glyph.ID{gid + l.Delta},
		Next:     a + 1,
	}
}

// EncodeLen implements the Subtable interface.
func (l *Gsub1_1) EncodeLen() int {
	return 6 + l.Cov.EncodeLen()
}

// Encode implements the Subtable interface.
func (l *Gsub1_1) Encode() []byte {
	buf := make([]byte, 6, 6+l.Cov.EncodeLen())
	buf[1] = 1 // format
	buf[3] = 6 // coverageOffset
	buf[4] = byte(l.Delta >> 8)
	buf[5] = byte(l.Delta)
	return append(buf, l.Cov.Encode()...)
}

// Gsub1_2 is a Single Substitution GSUB subtable (type 1, format 2).
// Input glyphs covered by Cov are replaced by the corresponding glyph in
// SubstituteGlyphIDs.
// https://learn.microsoft.com/en-us/typography/opentype/spec/gsub#12-single-substitution-format-2
type Gsub1_2 struct {
	Cov                coverage.Table
	SubstituteGlyphIDs []glyph.ID // indexed by coverage index
}

// NewGsub1_2 returns a single substitution subtable which implements the
// given mapping.
func NewGsub1_2(subst map[glyph.ID]glyph.ID) *Gsub1_2 {
	in := maps.Keys(subst)
	slices.Sort(in)
	out := make([]glyph.ID, len(in))
	for i, gid := range in {
		out[i] = subst[gid]
	}
	return &Gsub1_2{
		Cov:                coverage.New(in...),
		SubstituteGlyphIDs: out,
	}
}

func readGsub1_2(p *parser.Parser, subtablePos int64) (*Gsub1_2, error) {
	coverageOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	substituteGlyphIDs, err := p.ReadGIDSlice()
	if err != nil {
		return nil, err
	}

	cov, err := coverage.Read(p, subtablePos+int64(coverageOffset))
	if err != nil {
		return nil, err
	}

	if len(cov) != len(substituteGlyphIDs) {
		return nil, p.Error("malformed format 1.2 GSUB subtable")
	}

	res := &Gsub1_2{
		Cov:                cov,
		SubstituteGlyphIDs: substituteGlyphIDs,
	}
	return res, nil
}

// Apply implements the Subtable interface.
func (l *Gsub1_2) Apply(seq []glyph.ID, a, b int) *Match {
	idx, ok := l.Cov[seq[a]]
	if !ok {
		return nil
	}
	return &Match{
		InputPos: []int{a},
		Replace:  []glyph.ID{l.SubstituteGlyphIDs[idx]},
		Next:     a + 1,
	}
}

// EncodeLen implements the Subtable interface.
func (l *Gsub1_2) EncodeLen() int {
	return 6 + 2*len(l.SubstituteGlyphIDs) + l.Cov.EncodeLen()
}

// Encode implements the Subtable interface.
func (l *Gsub1_2) Encode() []byte {
	n := len(l.SubstituteGlyphIDs)
	covOffs := 6 + 2*n

	buf := make([]byte, covOffs, covOffs+l.Cov.EncodeLen())
	buf[1] = 2 // format
	buf[2] = byte(covOffs >> 8)
	buf[3] = byte(covOffs)
	buf[4] = byte(n >> 8)
	buf[5] = byte(n)
	for i, gid := range l.SubstituteGlyphIDs {
		buf[6+2*i] = byte(gid >> 8)
		buf[6+2*i+1] = byte(gid)
	}
	return append(buf, l.Cov.Encode()...)
}

// Gsub2_1 is a Multiple Substitution GSUB subtable (type 2, format 1).
// Each input glyph covered by Cov is replaced by a sequence of glyphs.
// https://learn.microsoft.com/en-us/typography/opentype/spec/gsub#21-multiple-substitution-format-1
type Gsub2_1 struct {
	Cov  coverage.Table
	Repl [][]glyph.ID // indexed by coverage index
}

// NewGsub2_1 returns a multiple substitution subtable which implements the
// given mapping.
func NewGsub2_1(subst map[glyph.ID][]glyph.ID) *Gsub2_1 {
	in := maps.Keys(subst)
	slices.Sort(in)
	repl := make([][]glyph.ID, len(in))
	for i, gid := range in {
		repl[i] = slices.Clone(subst[gid])
	}
	return &Gsub2_1{
		Cov:  coverage.New(in...),
		Repl: repl,
	}
}

func readGsub2_1(p *parser.Parser, subtablePos int64) (*Gsub2_1, error) {
	coverageOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	sequenceOffsets, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}

	cov, err := coverage.Read(p, subtablePos+int64(coverageOffset))
	if err != nil {
		return nil, err
	}
	if len(cov) != len(sequenceOffsets) {
		return nil, p.Error("malformed format 2.1 GSUB subtable")
	}

	repl := make([][]glyph.ID, len(sequenceOffsets))
	for i, offs := range sequenceOffsets {
		err = p.SeekPos(subtablePos + int64(offs))
		if err != nil {
			return nil, err
		}
		repl[i], err = p.ReadGIDSlice()
		if err != nil {
			return nil, err
		}
		if len(repl[i]) == 0 {
			return nil, p.Error("empty sequence in format 2.1 GSUB subtable")
		}
	}

	res := &Gsub2_1{
		Cov:  cov,
		Repl: repl,
	}
	return res, nil
}

// Apply implements the Subtable interface.
func (l *Gsub2_1) Apply(seq []glyph.ID, a, b int) *Match {
	idx, ok := l.Cov[seq[a]]
	if !ok {
		return nil
	}
	return &Match{
		InputPos: []int{a},
		Replace:  slices.Clone(l.Repl[idx]),
		Next:     a + 1,
	}
}

// EncodeLen implements the Subtable interface.
func (l *Gsub2_1) EncodeLen() int {
	total := 6 + 2*len(l.Repl)
	for _, repl := range l.Repl {
		total += 2 + 2*len(repl)
	}
	return total + l.Cov.EncodeLen()
}

// Encode implements the Subtable interface.
func (l *Gsub2_1) Encode() []byte {
	sequenceCount := len(l.Repl)
	pos := 6 + 2*sequenceCount
	sequenceOffsets := make([]int, sequenceCount)
	for i, repl := range l.Repl {
		sequenceOffsets[i] = pos
		pos += 2 + 2*len(repl)
	}
	covOffs := pos

	buf := make([]byte, 0, pos+l.Cov.EncodeLen())
	buf = append(buf,
		0, 1, // format
		byte(covOffs>>8), byte(covOffs),
		byte(sequenceCount>>8), byte(sequenceCount),
	)
	for _, offs := range sequenceOffsets {
		buf = append(buf, byte(offs>>8), byte(offs))
	}
	for _, repl := range l.Repl {
		buf = append(buf, byte(len(repl)>>8), byte(len(repl)))
		for _, gid := range repl {
			buf = append(buf, byte(gid>>8), byte(gid))
		}
	}
	return append(buf, l.Cov.Encode()...)
}

// Gsub4_1 is a Ligature Substitution GSUB subtable (type 4, format 1).
// https://learn.microsoft.com/en-us/typography/opentype/spec/gsub#41-ligature-substitution-format-1
type Gsub4_1 struct {
	Cov  coverage.Table // maps first glyphs to repl indices
	Repl [][]Ligature   // indexed by coverage index
}

// Ligature represents a substitution of a sequence of glyphs by a single glyph.
type Ligature struct {
	// In is the sequence of input glyphs that is replaced by Out, excluding
	// the first glyph in the sequence (since this is in Cov).
	In []glyph.ID

	// Out is the glyph that replaces the input sequence.
	Out glyph.ID
}

// NewGsub4_1 returns a ligature substitution subtable.  The map is keyed
// by the first glyph of each ligature.  Within every set, longer
// ligatures are placed before shorter ones, so that they take precedence.
func NewGsub4_1(ligs map[glyph.ID][]Ligature) *Gsub4_1 {
	in := maps.Keys(ligs)
	slices.Sort(in)
	repl := make([][]Ligature, len(in))
	for i, gid := range in {
		set := slices.Clone(ligs[gid])
		slices.SortStableFunc(set, func(a, b Ligature) int {
			return len(b.In) - len(a.In)
		})
		repl[i] = set
	}
	return &Gsub4_1{
		Cov:  coverage.New(in...),
		Repl: repl,
	}
}

func readGsub4_1(p *parser.Parser, subtablePos int64) (*Gsub4_1, error) {
	coverageOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	ligatureSetOffsets, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}

	cov, err := coverage.Read(p, subtablePos+int64(coverageOffset))
	if err != nil {
		return nil, err
	}
	if len(cov) != len(ligatureSetOffsets) {
		return nil, p.Error("malformed format 4.1 GSUB subtable")
	}

	repl := make([][]Ligature, len(ligatureSetOffsets))
	for i, setOffs := range ligatureSetOffsets {
		ligSetTablePos := subtablePos + int64(setOffs)
		err = p.SeekPos(ligSetTablePos)
		if err != nil {
			return nil, err
		}
		ligatureOffsets, err := p.ReadUint16Slice()
		if err != nil {
			return nil, err
		}
		repl[i] = make([]Ligature, len(ligatureOffsets))
		for j, offs := range ligatureOffsets {
			err = p.SeekPos(ligSetTablePos + int64(offs))
			if err != nil {
				return nil, err
			}
			buf, err := p.ReadBytes(4)
			if err != nil {
				return nil, err
			}
			ligatureGlyph := glyph.ID(buf[0])<<8 | glyph.ID(buf[1])
			componentCount := int(buf[2])<<8 | int(buf[3])
			if componentCount == 0 {
				return nil, p.Error("invalid component count in format 4.1 GSUB subtable")
			}
			in := make([]glyph.ID, componentCount-1)
			for k := range in {
				gid, err := p.ReadUint16()
				if err != nil {
					return nil, err
				}
				in[k] = glyph.ID(gid)
			}
			repl[i][j] = Ligature{
				In:  in,
				Out: ligatureGlyph,
			}
		}
	}

	res := &Gsub4_1{
		Cov:  cov,
		Repl: repl,
	}
	return res, nil
}

// Apply implements the Subtable interface.
func (l *Gsub4_1) Apply(seq []glyph.ID, a, b int) *Match {
	ligSetIdx, ok := l.Cov[seq[a]]
	if !ok {
		return nil
	}

ligLoop:
	for _, lig := range l.Repl[ligSetIdx] {
		if a+1+len(lig.In) > b {
			continue
		}
		for k, gid := range lig.In {
			if seq[a+1+k] != gid {
				continue ligLoop
			}
		}

		matchPos := make([]int, len(lig.In)+1)
		for k := range matchPos {
			matchPos[k] = a + k
		}
		return &Match{
			InputPos: matchPos,
			Replace:  []glyph.ID{lig.Out},
			Next:     a + len(matchPos),
		}
	}
	return nil
}

// EncodeLen implements the Subtable interface.
func (l *Gsub4_1) EncodeLen() int {
	total := 6 + 2*len(l.Repl)
	for _, ligSet := range l.Repl {
		total += 2 + 2*len(ligSet)
		for _, lig := range ligSet {
			total += 4 + 2*len(lig.In)
		}
	}
	return total + l.Cov.EncodeLen()
}

// Encode implements the Subtable interface.
func (l *Gsub4_1) Encode() []byte {
	ligatureSetCount := len(l.Repl)
	pos := 6 + 2*ligatureSetCount
	ligatureSetOffsets := make([]int, ligatureSetCount)
	for i, ligSet := range l.Repl {
		ligatureSetOffsets[i] = pos
		pos += 2 + 2*len(ligSet)
		for _, lig := range ligSet {
			pos += 4 + 2*len(lig.In)
		}
	}
	covOffs := pos

	buf := make([]byte, 0, pos+l.Cov.EncodeLen())
	buf = append(buf,
		0, 1, // format
		byte(covOffs>>8), byte(covOffs),
		byte(ligatureSetCount>>8), byte(ligatureSetCount),
	)
	for _, offs := range ligatureSetOffsets {
		buf = append(buf, byte(offs>>8), byte(offs))
	}
	for _, ligSet := range l.Repl {
		ligatureCount := len(ligSet)
		buf = append(buf, byte(ligatureCount>>8), byte(ligatureCount))
		ligPos := 2 + 2*ligatureCount
		for _, lig := range ligSet {
			buf = append(buf, byte(ligPos>>8), byte(ligPos))
			ligPos += 4 + 2*len(lig.In)
		}
		for _, lig := range ligSet {
			componentCount := len(lig.In) + 1
			buf = append(buf,
				byte(lig.Out>>8), byte(lig.Out),
				byte(componentCount>>8), byte(componentCount),
			)
			for _, gid := range lig.In {
				buf = append(buf, byte(gid>>8), byte(gid))
			}
		}
	}
	return append(buf, l.Cov.Encode()...)
}

// Opaque is a subtable which is carried along without being interpreted,
// for example a lookup read from a textual font dump in a form this
// package does not model.  Opaque subtables never match and cannot be
// encoded.
type Opaque struct {
	Data any
}

// Apply implements the Subtable interface.
func (*Opaque) Apply([]glyph.ID, int, int) *Match {
	return nil
}

// EncodeLen implements the Subtable interface.
func (*Opaque) EncodeLen() int {
	return 0
}

// Encode implements the Subtable interface.
func (*Opaque) Encode() []byte {
	return nil
}
