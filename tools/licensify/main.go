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
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/hangul/tools/internal/buildinfo"
)

const header = `// seehuhn.de/go/hangul - compose Hangul syllable glyphs from jamo outlines
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

`

var check = flag.Bool("check", false, "only list the files without license header")

// errUnexpected is returned for files which neither start with the header
// nor with a package clause.
var errUnexpected = errors.New("unexpected file start")

func main() {
	flag.Usage = func() {
		buildinfo.Header(os.Stderr, "licensify", "add the license header to all Go source files")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  licensify [options] [dir]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}

	missing, err := run(root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *check && missing > 0 {
		os.Exit(1)
	}
}

func run(root string) (int, error) {
	missing := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "testdata") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		body, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		updated, err := addHeader(body)
		if errors.Is(err, errUnexpected) {
			fmt.Println("ATTENTION " + path)
			return nil
		} else if err != nil {
			return err
		}
		if updated == nil {
			return nil
		}

		missing++
		if *check {
			fmt.Println("header missing or malformed: " + path)
			return nil
		}
		fmt.Println("updating " + path)
		return os.WriteFile(path, updated, 0o644)
	})
	return missing, err
}

// addHeader returns body with the license header prepended, or nil if the
// header is already present.  Blank lines between the header and the rest
// of the file are collapsed to the single one the header ends with.
func addHeader(body []byte) ([]byte, error) {
	if bytes.HasPrefix(body, []byte(header)) {
		rest := body[len(header):]
		if !bytes.HasPrefix(rest, []byte("\n")) {
			return nil, nil
		}
		body = rest
	}
	body = bytes.TrimLeft(body, "\n")
	if !bytes.HasPrefix(body, []byte("package ")) && !bytes.HasPrefix(body, []byte("//go:build")) {
		return nil, errUnexpected
	}
	res := make([]byte, 0, len(header)+len(body))
	res = append(res, header...)
	return append(res, body...), nil
}
