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

	"seehuhn.de/go/hangul/opentype/coverage"
	"seehuhn.de/go/hangul/opentype/parser"
)

// SeqLookup describes the actions for contextual and chained contextual
// lookups.
type SeqLookup struct {
	SequenceIndex   uint16
	LookupListIndex LookupIndex
}

// SeqLookups describes the actions of nested lookups.
type SeqLookups []SeqLookup

func readNested(p *parser.Parser, seqLookupCount int) (SeqLookups, error) {
	res := make(SeqLookups, seqLookupCount)
	for i := range res {
		buf, err := p.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		res[i].SequenceIndex = uint16(buf[0])<<8 | uint16(buf[1])
		res[i].LookupListIndex = LookupIndex(buf[2])<<8 | LookupIndex(buf[3])
	}
	return res, nil
}

// ChainedSeqContext3 is a Chained Contexts Substitution GSUB subtable
// (type 6, format 3).  The input sequence, together with the glyphs before
// and after, is described by coverage sets.  Backtrack coverage sets are
// given in reverse order, starting with the glyph before the input.
// A subtable without actions matches but leaves the input unchanged; this
// can be used to exclude a context from later subtables of the same lookup.
// https://learn.microsoft.com/en-us/typography/opentype/spec/chapter2#chained-sequence-context-format-3-coverage-based-glyph-contexts
type ChainedSeqContext3 struct {
	Backtrack []coverage.Set
	Input     []coverage.Set
	Lookahead []coverage.Set
	Actions   SeqLookups
}

func readChainedSeqContext3(p *parser.Parser, subtablePos int64) (Subtable, error) {
	backtrackCoverageOffsets, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}
	inputCoverageOffsets, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}
	lookaheadCoverageOffsets, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}
	if len(inputCoverageOffsets) < 1 {
		return nil, p.Error("invalid glyph count in ChainedSeqContext3")
	}

	seqLookupCount, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	actions, err := readNested(p, int(seqLookupCount))
	if err != nil {
		return nil, err
	}
	for _, action := range actions {
		if int(action.SequenceIndex) >= len(inputCoverageOffsets) {
			return nil, p.Error("invalid sequence index %d in ChainedSeqContext3",
				action.SequenceIndex)
		}
	}

	readSets := func(offsets []uint16) ([]coverage.Set, error) {
		res := make([]coverage.Set, len(offsets))
		for i, offset := range offsets {
			res[i], err = coverage.ReadSet(p, subtablePos+int64(offset))
			if err != nil {
				return nil, err
			}
		}
		return res, nil
	}

	backtrackCov, err := readSets(backtrackCoverageOffsets)
	if err != nil {
		return nil, err
	}
	inputCov, err := readSets(inputCoverageOffsets)
	if err != nil {
		return nil, err
	}
	lookaheadCov, err := readSets(lookaheadCoverageOffsets)
	if err != nil {
		return nil, err
	}

	res := &ChainedSeqContext3{
		Backtrack: backtrackCov,
		Input:     inputCov,
		Lookahead: lookaheadCov,
		Actions:   actions,
	}
	return res, nil
}

// Apply implements the Subtable interface.
func (l *ChainedSeqContext3) Apply(seq []glyph.ID, a, b int) *Match {
	if a-len(l.Backtrack) < 0 || a+len(l.Input) > b ||
		a+len(l.Input)+len(l.Lookahead) > len(seq) {
		return nil
	}

	for i, cov := range l.Backtrack {
		if !cov[seq[a-1-i]] {
			return nil
		}
	}

	matchPos := make([]int, len(l.Input))
	for i, cov := range l.Input {
		if !cov[seq[a+i]] {
			return nil
		}
		matchPos[i] = a + i
	}
	next := a + len(l.Input)

	for i, cov := range l.Lookahead {
		if !cov[seq[next+i]] {
			return nil
		}
	}

	return &Match{
		InputPos: matchPos,
		Actions:  l.Actions,
		Next:     next,
	}
}

// EncodeLen implements the Subtable interface.
func (l *ChainedSeqContext3) EncodeLen() int {
	total := 10
	total += 2 * len(l.Backtrack)
	total += 2 * len(l.Input)
	total += 2 * len(l.Lookahead)
	total += 4 * len(l.Actions)
	for _, sets := range [][]coverage.Set{l.Backtrack, l.Input, l.Lookahead} {
		for _, set := range sets {
			total += set.ToTable().EncodeLen()
		}
	}
	return total
}

// Encode implements the Subtable interface.
func (l *ChainedSeqContext3) Encode() []byte {
	backtrackGlyphCount := len(l.Backtrack)
	inputGlyphCount := len(l.Input)
	lookaheadGlyphCount := len(l.Lookahead)
	seqLookupCount := len(l.Actions)

	total := 10
	total += 2 * backtrackGlyphCount
	total += 2 * inputGlyphCount
	total += 2 * lookaheadGlyphCount
	total += 4 * seqLookupCount

	var covData []byte
	offsets := func(sets []coverage.Set) []uint16 {
		res := make([]uint16, len(sets))
		for i, set := range sets {
			res[i] = uint16(total + len(covData))
			covData = append(covData, set.ToTable().Encode()...)
		}
		return res
	}
	backtrackCoverageOffsets := offsets(l.Backtrack)
	inputCoverageOffsets := offsets(l.Input)
	lookaheadCoverageOffsets := offsets(l.Lookahead)

	buf := make([]byte, 0, total+len(covData))
	buf = append(buf,
		0, 3, // format
		byte(backtrackGlyphCount>>8), byte(backtrackGlyphCount),
	)
	for _, offset := range backtrackCoverageOffsets {
		buf = append(buf, byte(offset>>8), byte(offset))
	}
	buf = append(buf,
		byte(inputGlyphCount>>8), byte(inputGlyphCount),
	)
	for _, offset := range inputCoverageOffsets {
		buf = append(buf, byte(offset>>8), byte(offset))
	}
	buf = append(buf,
		byte(lookaheadGlyphCount>>8), byte(lookaheadGlyphCount),
	)
	for _, offset := range lookaheadCoverageOffsets {
		buf = append(buf, byte(offset>>8), byte(offset))
	}

	buf = append(buf,
		byte(seqLookupCount>>8), byte(seqLookupCount),
	)
	for _, action := range l.Actions {
		buf = append(buf,
			byte(action.SequenceIndex>>8), byte(action.SequenceIndex),
			byte(action.LookupListIndex>>8), byte(action.LookupListIndex),
		)
	}

	return append(buf, covData...)
}
