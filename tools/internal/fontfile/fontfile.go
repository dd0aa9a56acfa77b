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

// Package fontfile contains the file handling shared by the command line
// tools.
package fontfile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"seehuhn.de/go/hangul"
	"seehuhn.de/go/hangul/fonttable"
	"seehuhn.de/go/hangul/layout"
)

// SetupLogging directs the library log messages to stderr.
// Without verbose, only warnings and errors are shown.
func SetupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	hangul.SetLogger(slog.New(h))
}

// ReadFont reads a font in TTX format.
func ReadFont(fname string) (*fonttable.Font, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	font, err := fonttable.ReadTTX(bufio.NewReader(fd))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return font, nil
}

// WriteFont writes a font in TTX format.  If fname is empty or "-", the
// font is written to stdout.
func WriteFont(fname string, font *fonttable.Font) error {
	return withOutput(fname, font.WriteTTX)
}

// ReadLayouts reads layouts stored as JSON.  If fname is empty, a copy of
// the built-in templates is returned.
func ReadLayouts(fname string) (layout.Layouts, error) {
	if fname == "" {
		return layout.Templates(), nil
	}

	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	var res layout.Layouts
	err = json.NewDecoder(bufio.NewReader(fd)).Decode(&res)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	if err := res.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return res, nil
}

// WriteLayouts writes layouts as indented JSON.  If fname is empty or
// "-", the layouts are written to stdout.
func WriteLayouts(fname string, layouts layout.Layouts) error {
	return withOutput(fname, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(layouts)
	})
}

func withOutput(fname string, write func(io.Writer) error) error {
	if fname == "" || fname == "-" {
		w := bufio.NewWriter(os.Stdout)
		if err := write(w); err != nil {
			return err
		}
		return w.Flush()
	}

	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(fd)
	err = write(w)
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}
