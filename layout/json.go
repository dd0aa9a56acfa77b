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

package layout

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"seehuhn.de/go/hangul/jamo"
)

// jsonDivider is the serialized form of a layout tree node.
type jsonDivider struct {
	Type    string       `json:"type"`
	Kind    jamo.Kind    `json:"kind,omitempty"`
	X       float64      `json:"x,omitempty"`
	Y       float64      `json:"y,omitempty"`
	Left    *jsonDivider `json:"left,omitempty"`
	Right   *jsonDivider `json:"right,omitempty"`
	Top     *jsonDivider `json:"top,omitempty"`
	Bottom  *jsonDivider `json:"bottom,omitempty"`
	TopLeft *jsonDivider `json:"topLeft,omitempty"`
	Rest    *jsonDivider `json:"rest,omitempty"`
}

func toJSON(d Divider) *jsonDivider {
	switch d := d.(type) {
	case *Jamo:
		return &jsonDivider{Type: "jamo", Kind: d.Kind}
	case *Vertical:
		return &jsonDivider{Type: "vertical", X: d.X, Left: toJSON(d.Left), Right: toJSON(d.Right)}
	case *Horizontal:
		return &jsonDivider{Type: "horizontal", Y: d.Y, Top: toJSON(d.Top), Bottom: toJSON(d.Bottom)}
	case *Mixed:
		return &jsonDivider{Type: "mixed", X: d.X, Y: d.Y, TopLeft: toJSON(d.TopLeft), Rest: toJSON(d.Rest)}
	default:
		return nil
	}
}

func fromJSON(j *jsonDivider) (Divider, error) {
	if j == nil {
		return nil, &InvalidLayoutError{Reason: "missing child node"}
	}
	children := func(a, b *jsonDivider) (Divider, Divider, error) {
		da, err := fromJSON(a)
		if err != nil {
			return nil, nil, err
		}
		db, err := fromJSON(b)
		if err != nil {
			return nil, nil, err
		}
		return da, db, nil
	}

	switch j.Type {
	case "jamo":
		return &Jamo{Kind: j.Kind}, nil
	case "vertical":
		left, right, err := children(j.Left, j.Right)
		if err != nil {
			return nil, err
		}
		return &Vertical{X: j.X, Left: left, Right: right}, nil
	case "horizontal":
		top, bottom, err := children(j.Top, j.Bottom)
		if err != nil {
			return nil, err
		}
		return &Horizontal{Y: j.Y, Top: top, Bottom: bottom}, nil
	case "mixed":
		topLeft, rest, err := children(j.TopLeft, j.Rest)
		if err != nil {
			return nil, err
		}
		return &Mixed{X: j.X, Y: j.Y, TopLeft: topLeft, Rest: rest}, nil
	default:
		return nil, &InvalidLayoutError{Reason: fmt.Sprintf("unknown node type %q", j.Type)}
	}
}

type jsonLayout struct {
	Name     string                   `json:"name"`
	Tag      Tag                      `json:"tag"`
	Focus    jamo.Kind                `json:"focus"`
	Subkind  jamo.Subkind             `json:"subkind"`
	Elems    []jamo.Kind              `json:"elems"`
	Dividers *jsonDivider             `json:"dividers"`
	Glyphs   map[string]*ResizedGlyph `json:"glyphs,omitempty"`
}

// MarshalJSON implements the [json.Marshaler] interface.
// Glyphs are keyed by the jamo itself.
func (l *Layout) MarshalJSON() ([]byte, error) {
	j := &jsonLayout{
		Name:     l.Name,
		Tag:      l.Tag,
		Focus:    l.Focus,
		Subkind:  l.Subkind,
		Elems:    l.Elems,
		Dividers: toJSON(l.Dividers),
	}
	if len(l.Glyphs) > 0 {
		j.Glyphs = make(map[string]*ResizedGlyph, len(l.Glyphs))
		for r, g := range l.Glyphs {
			j.Glyphs[string(r)] = g
		}
	}
	return json.Marshal(j)
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (l *Layout) UnmarshalJSON(data []byte) error {
	j := &jsonLayout{}
	if err := json.Unmarshal(data, j); err != nil {
		return err
	}
	d, err := fromJSON(j.Dividers)
	if err != nil {
		return withName(err, j.Name)
	}

	*l = Layout{
		Name:     j.Name,
		Tag:      j.Tag,
		Focus:    j.Focus,
		Subkind:  j.Subkind,
		Elems:    j.Elems,
		Dividers: d,
	}
	if len(j.Glyphs) > 0 {
		l.Glyphs = make(map[rune]*ResizedGlyph, len(j.Glyphs))
		for key, g := range j.Glyphs {
			r, size := utf8.DecodeRuneInString(key)
			if r == utf8.RuneError || size != len(key) {
				return &InvalidLayoutError{Layout: j.Name, Reason: fmt.Sprintf("invalid glyph key %q", key)}
			}
			l.Glyphs[r] = g
		}
	}
	return nil
}
