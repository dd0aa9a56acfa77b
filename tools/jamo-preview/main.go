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

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"seehuhn.de/go/hangul/tools/internal/buildinfo"
	"seehuhn.de/go/hangul/tools/internal/fontfile"
)

var (
	direct  = flag.Bool("direct", false, "show the precomposed syllable glyphs instead of the composed jamo")
	width   = flag.Int("w", 0, "output width in `columns` (default: terminal width)")
	verbose = flag.Bool("v", false, "show progress messages")
)

func main() {
	flag.Usage = func() {
		buildinfo.Header(os.Stderr, "jamo-preview", "show Hangul text as rendered by a font")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  jamo-preview [options] <font.ttx> <text>...\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  font.ttx   a CFF-based font, in TTX format\n")
		fmt.Fprintf(os.Stderr, "  text       the characters to show\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  jamo-preview out.ttx 한글\n")
		fmt.Fprintf(os.Stderr, "  jamo-preview -direct font.ttx 한글\n")
	}
	flag.Parse()

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), strings.Join(flag.Args()[1:], "")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(fname, text string) error {
	fontfile.SetupLogging(*verbose)

	font, err := fontfile.ReadFont(fname)
	if err != nil {
		return err
	}

	cols := *width
	if cols <= 0 {
		cols = 80
		if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				cols = w
			}
		}
	}

	r := &renderer{font: font, direct: *direct}
	for _, c := range text {
		line, err := r.Shape(c)
		if err != nil {
			return err
		}
		fmt.Println(strings.Join(line.Names, " "))
		for _, row := range line.Render(cols) {
			fmt.Println(row)
		}
	}
	return nil
}
