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

import "fmt"

// InvalidLayoutError indicates a malformed layout tree.
type InvalidLayoutError struct {
	Layout string // name of the layout, if known
	Reason string
}

func (err *InvalidLayoutError) Error() string {
	if err.Layout == "" {
		return "layout: " + err.Reason
	}
	return fmt.Sprintf("layout %q: %s", err.Layout, err.Reason)
}

func withName(err error, name string) error {
	if e, ok := err.(*InvalidLayoutError); ok && e.Layout == "" {
		return &InvalidLayoutError{Layout: name, Reason: e.Reason}
	}
	return err
}
