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

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/hangul/outline/bold"
	"seehuhn.de/go/hangul/synth"
	"seehuhn.de/go/hangul/tools/internal/buildinfo"
	"seehuhn.de/go/hangul/tools/internal/fontfile"
	"seehuhn.de/go/hangul/tools/internal/profile"
)

var (
	layoutsArg   = flag.String("layouts", "", "read the layouts from `file`")
	outArg       = flag.String("o", "-", "write the new font to `file`")
	verticalOnly = flag.Bool("vertical-only", false, "give trailing consonant variants a full advance width")
	stroke       = flag.Float64("stroke", 0, "stem `width` of the font, enables stroke compensation")
	alpha        = flag.Float64("alpha", 0.6, "amount of stroke compensation, between 0 and 1")
	verbose      = flag.Bool("v", false, "show progress messages")
	cpuprofile   = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile   = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		buildinfo.Header(os.Stderr, "jamo-synth", "add positional jamo variants to a font")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  jamo-synth [options] -layouts <layouts.json> <font.ttx>\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  font.ttx   a CFF-based font, in TTX format\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  jamo-synth -layouts layouts.json -o out.ttx font.ttx\n")
		fmt.Fprintf(os.Stderr, "  jamo-synth -layouts layouts.json -stroke 80 -o out.ttx font.ttx\n")
	}
	flag.Parse()

	if flag.NArg() != 1 || *layoutsArg == "" {
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

	opts := &synth.Options{VerticalOnly: *verticalOnly}
	if *stroke > 0 {
		if *alpha <= 0 || *alpha > 1 {
			return fmt.Errorf("invalid -alpha %g", *alpha)
		}
		opts.Compensation = &bold.Compensation{
			Alpha:  *alpha,
			Stroke: *stroke,
		}
	}

	res, report, err := synth.Synthesize(font, layouts, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%d glyphs and %d lookups added\n", report.NewGlyphs, report.Lookups)
	for _, m := range report.Missing {
		fmt.Fprintf(os.Stderr, "warning: %v\n", m)
	}
	names := maps.Keys(report.Unresolved)
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "warning: %s: %d corners not repaired\n",
			name, len(report.Unresolved[name]))
	}
	names = maps.Keys(report.Uncompensated)
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "warning: %s: no stroke compensation: %v\n",
			name, report.Uncompensated[name])
	}

	return fontfile.WriteFont(*outArg, res)
}
