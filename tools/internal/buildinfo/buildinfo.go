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

// Package buildinfo describes the version of the command line tools.
package buildinfo

import (
	"fmt"
	"io"
	"runtime/debug"
)

// Short returns a short version string for a command line tool, e.g.
// "jamo-synth (seehuhn.de/go/hangul v0.1.0)".
func Short(toolName string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return toolName
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return toolName + " (" + info.Main.Path + " " + v + ")"
	}
	if rev := revision(info); rev != "" {
		return toolName + " (" + info.Main.Path + " " + rev + ")"
	}
	return toolName
}

// revision returns the abbreviated VCS revision of the build, if known.
func revision(info *debug.BuildInfo) string {
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) > 8 {
		rev = rev[:8]
	}
	if rev != "" && dirty {
		rev += "+dirty"
	}
	return rev
}

// Header writes the first lines of a usage message: the tool name with
// a one-line description, followed by the version.
func Header(w io.Writer, toolName, purpose string) {
	fmt.Fprintf(w, "%s \u2014 %s\n", toolName, purpose)
	fmt.Fprintf(w, "%s\n\n", Short(toolName))
}
