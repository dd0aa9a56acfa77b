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

package hangul

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	defer SetLogger(nil)

	// the default logger discards everything
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger is enabled")
	}

	buf := &bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	Logger().Debug("hidden")
	Logger().Info("glyphs extracted", "count", 3)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "count=3") {
		t.Errorf("unexpected log output %q", out)
	}

	SetLogger(nil)
	Logger().Warn("discarded")
	if strings.Contains(buf.String(), "discarded") {
		t.Error("logging not disabled")
	}
}

func TestMissingGlyphError(t *testing.T) {
	cases := []struct {
		err  *MissingGlyphError
		want string
	}{
		{&MissingGlyphError{Jamo: 0x1100}, "no glyph found for U+1100 HANGUL CHOSEONG KIYEOK"},
		{&MissingGlyphError{Jamo: 0x1161, Layout: "vr"}, "no glyph found for U+1161 HANGUL JUNGSEONG A in layout vr"},
		{&MissingGlyphError{Jamo: 0x11A8, Glyph: "uni11A8"}, "missing glyph uni11A8 for U+11A8 HANGUL JONGSEONG KIYEOK"},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}
