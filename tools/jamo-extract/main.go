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

	"seehuhn.de/go/hangul/extract"
	"seehuhn.de/go/hangul/jamo"
	"seehuhn.de/go/hangul/tools/internal/buildinfo"
	"seehuhn.de/go/hangul/tools/internal/fontfile"
	"seehuhn.de/go/hangul/tools/internal/profile"
)

var (
	layoutsArg = flag.String("layouts", "", "start from the layouts in `file` instead of the built-in templates")
	outArg     = flag.String("o", "-", "write the layouts to `file`")
	workers    = flag.Int("workers", 0, "number of layouts processed in parallel (default: number of CPUs)")
	verbose    = flag.Bool("v", false, "show progress messages")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		buildinfo.Header(os.Stderr, "jamo-extract", "extract jamo outlines from the syllables of a font")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  jamo-extract [options] <font.ttx>\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  font.ttx   a CFF-based font, in TTX format\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  jamo-extract font.ttx > layouts.json\n")
		fmt.Fprintf(os.Stderr, "  jamo-extract -layouts edited.json -o layouts.json font.ttx\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(fname string) error {
	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer stop()

	fontfile.SetupLogging(*verbose)

	font, err := fontfile.ReadFont(fname)
	if err != nil {
		return err
	}
	layouts, err := fontfile.ReadLayouts(*layoutsArg)
	if err != nil {
		return err
	}

	res, report, err := extract.Extract(font, layouts, &extract.Options{Workers: *workers})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%d glyphs extracted, %d from standalone jamo\n",
		report.Extracted, report.Fallback)
	for _, err := range report.Malformed {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if !report.Complete() {
		missing := make(map[rune]bool)
		for _, m := range report.Missing {
			missing[m.Jamo] = true
		}
		fmt.Fprintf(os.Stderr, "warning: no glyph for %d jamo positions:\n", len(report.Missing))
		for _, r := range jamo.OfRole(jamo.RoleLeading) {
			printMissing(missing, r)
		}
		for _, r := range jamo.OfRole(jamo.RoleVowel) {
			printMissing(missing, r)
		}
		for _, r := range jamo.OfRole(jamo.RoleTrailing) {
			printMissing(missing, r)
		}
	}

	return fontfile.WriteLayouts(*outArg, res)
}

func printMissing(missing map[rune]bool, r rune) {
	if missing[r] {
		fmt.Fprintf(os.Stderr, "  %s\n", jamo.Name(r))
	}
}
