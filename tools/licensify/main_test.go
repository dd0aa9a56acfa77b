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
	"os"
	"testing"
)

func TestAddHeader(t *testing.T) {
	body := []byte("package foo\n")
	res, err := addHeader(body)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(res, []byte(header)) || !bytes.HasSuffix(res, body) {
		t.Errorf("unexpected result %q", res)
	}

	res, err = addHeader(res)
	if err != nil || res != nil {
		t.Errorf("header added twice: %v", err)
	}

	_, err = addHeader([]byte("// Package foo\npackage foo\n"))
	if !errors.Is(err, errUnexpected) {
		t.Errorf("got %v, want errUnexpected", err)
	}
}

func TestAddHeaderBlankLines(t *testing.T) {
	want := []byte(header + "package foo\n")
	for _, body := range []string{
		"\npackage foo\n",
		header + "\npackage foo\n",
		header + "\n\n\npackage foo\n",
	} {
		res, err := addHeader([]byte(body))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(res, want) {
			t.Errorf("addHeader(%q) = %q", body, res)
		}
	}
}

// TestOwnHeader checks that this file carries the header itself.
func TestOwnHeader(t *testing.T) {
	body, err := os.ReadFile("main_test.go")
	if err != nil {
		t.Fatal(err)
	}
	res, err := addHeader(body)
	if err != nil || res != nil {
		t.Error("main_test.go lacks the license header")
	}
}
