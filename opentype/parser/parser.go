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

// Package parser reads big-endian binary data from OpenType tables.
package parser

import (
	"fmt"

	"seehuhn.de/go/sfnt/glyph"
)

// Parser reads data from the binary representation of a table.
type Parser struct {
	tableName string
	data      []byte
	pos       int
	lastRead  int
}

// New allocates a new Parser for the given table data.
func New(tableName string, data []byte) *Parser {
	return &Parser{
		tableName: tableName,
		data:      data,
	}
}

// Size returns the total size of the table.
func (p *Parser) Size() int64 {
	return int64(len(p.data))
}

// Pos returns the current reading position.
func (p *Parser) Pos() int64 {
	return int64(p.pos)
}

// SeekPos changes the reading position.
func (p *Parser) SeekPos(pos int64) error {
	if pos < 0 || pos > int64(len(p.data)) {
		return p.Error("seek to %d out of range", pos)
	}
	p.pos = int(pos)
	return nil
}

// ReadBytes reads n bytes, starting at the current position.  The returned
// slice points into the table data and must not be modified.
func (p *Parser) ReadBytes(n int) ([]byte, error) {
	p.lastRead = p.pos
	if n < 0 || p.pos+n > len(p.data) {
		return nil, p.Error("unexpected end of table")
	}
	res := p.data[p.pos : p.pos+n]
	p.pos += n
	return res, nil
}

// ReadUint16 reads a single uint16 value from the current position.
func (p *Parser) ReadUint16() (uint16, error) {
	buf, err := p.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// ReadUint32 reads a single uint32 value from the current position.
func (p *Parser) ReadUint32() (uint32, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), nil
}

// ReadUint16Slice reads a length followed by a sequence of uint16 values.
func (p *Parser) ReadUint16Slice() ([]uint16, error) {
	n, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	buf, err := p.ReadBytes(2 * int(n))
	if err != nil {
		return nil, err
	}
	res := make([]uint16, n)
	for i := range res {
		res[i] = uint16(buf[2*i])<<8 | uint16(buf[2*i+1])
	}
	return res, nil
}

// ReadGIDSlice reads a length followed by a sequence of glyph IDs.
func (p *Parser) ReadGIDSlice() ([]glyph.ID, error) {
	vals, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}
	res := make([]glyph.ID, len(vals))
	for i, v := range vals {
		res[i] = glyph.ID(v)
	}
	return res, nil
}

// Error returns an error which includes the table name and the position of
// the last read.
func (p *Parser) Error(format string, a ...any) error {
	return &InvalidFontError{
		SubSystem: p.tableName,
		Reason:    fmt.Sprintf("%+d: ", p.lastRead) + fmt.Sprintf(format, a...),
	}
}

// InvalidFontError is returned when table data is malformed.
type InvalidFontError struct {
	SubSystem string
	Reason    string
}

func (err *InvalidFontError) Error() string {
	return err.SubSystem + ": " + err.Reason
}
