package canvas

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/olivier-w/wavview/internal/render"
)

func plainBraille(cols, rows int) *Braille {
	b := NewBraille(cols, rows)
	b.profile = colorNone
	return b
}

func TestBrailleSizeIsDotGrid(t *testing.T) {
	b := plainBraille(10, 5)
	if w, h := b.Size(); w != 20 || h != 20 {
		t.Fatalf("expected 20x20 dots, got %dx%d", w, h)
	}
	if f := b.Font(); f.Width != 2 || f.Height != 4 {
		t.Fatalf("expected 2x4 font, got %+v", f)
	}
}

func TestBrailleVLineFillsColumn(t *testing.T) {
	b := plainBraille(1, 1)
	b.VLine(0, 0, 3, render.LinPeak)
	if err := b.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	// Dots 1, 2, 3 and 7 of the left column.
	if got := b.String(); got != "⡇" {
		t.Fatalf("expected ⡇, got %q", got)
	}
}

func TestBrailleFullCell(t *testing.T) {
	b := plainBraille(1, 1)
	b.FillRect(0, 0, 1, 3, render.ChannelBG)
	b.VLine(0, 0, 3, render.LinPeak)
	b.VLine(1, 0, 3, render.LinPeak)
	b.Present()
	if got := b.String(); got != "⣿" {
		t.Fatalf("expected ⣿, got %q", got)
	}

	b.FillRect(0, 0, 1, 3, render.ChannelBG)
	b.Present()
	if got := b.String(); got != " " {
		t.Fatalf("expected cleared cell, got %q", got)
	}
}

func TestBrailleClipDropsOutsidePixels(t *testing.T) {
	b := plainBraille(2, 1)
	b.SetClip(0, 0, 1, 3)
	b.HLine(0, 0, 3, render.DCLine)
	b.ResetClip()
	b.Present()
	if got := b.String(); got != "⠉ " {
		t.Fatalf("expected only the first cell lit, got %q", got)
	}
}

func TestBrailleClipIsBoundedBySurface(t *testing.T) {
	b := plainBraille(2, 2)
	b.SetClip(-10, -10, 100, 100)
	b.VLine(3, -5, 50, render.LinPeak)
	b.Present()
	if lines := strings.Split(b.String(), "\n"); len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
}

func TestBrailleTextReplacesCells(t *testing.T) {
	b := plainBraille(6, 1)
	b.HLine(0, 1, 11, render.DCLine)
	b.Text(2, 0, "1.5", render.MarkerText)
	b.Present()
	got := []rune(b.String())
	if string(got[1:4]) != "1.5" {
		t.Fatalf("expected label in cells 1-3, got %q", string(got))
	}
	if got[0] != '⠒' {
		t.Fatalf("expected braille dot in cell 0, got %q", got[0])
	}
}

func TestBraillePresentIsAtomic(t *testing.T) {
	b := plainBraille(1, 1)
	b.VLine(0, 0, 0, render.LinPeak)
	b.Present()
	first := b.String()

	b.VLine(1, 0, 0, render.LinPeak)
	if b.String() != first {
		t.Fatal("expected drawing to stay off-screen until Present")
	}
	b.Present()
	if b.String() == first {
		t.Fatal("expected Present to publish the new frame")
	}
}

func TestBrailleColorSequences(t *testing.T) {
	b := NewBraille(1, 1)
	b.profile = colorTrueColor
	b.VLine(0, 0, 0, render.LinPeak)
	b.Present()
	got := b.String()
	if !strings.HasPrefix(got, "\x1b[38;2;85;255;85m") || !strings.HasSuffix(got, "\x1b[0m") {
		t.Fatalf("unexpected colour output %q", got)
	}
}

func TestDetectColorProfile(t *testing.T) {
	tests := []struct {
		env  map[string]string
		want colorProfile
	}{
		{map[string]string{"NO_COLOR": "", "COLORTERM": "truecolor"}, colorNone},
		{map[string]string{"COLORTERM": "24bit", "TERM": "xterm"}, colorTrueColor},
		{map[string]string{"TERM": "xterm-256color"}, colorANSI256},
		{map[string]string{"TERM": "dumb"}, colorNone},
		{map[string]string{}, colorNone},
		{map[string]string{"TERM": "xterm"}, colorANSI16},
	}
	for _, tt := range tests {
		lookup := func(k string) (string, bool) {
			v, ok := tt.env[k]
			return v, ok
		}
		if got := detectColorProfile(lookup); got != tt.want {
			t.Fatalf("env %v: expected profile %d, got %d", tt.env, tt.want, got)
		}
	}
}

func TestImageLinesAndClip(t *testing.T) {
	s := NewImage(20, 10)
	s.FillRect(0, 0, 19, 9, render.ChannelBG)
	s.SetClip(0, 0, 9, 9)
	s.HLine(0, 5, 19, render.DCLine)
	s.ResetClip()

	want := rgba(render.DCLine)
	if got := s.RGBA().RGBAAt(3, 5); got != want {
		t.Fatalf("expected DC line colour inside clip, got %v", got)
	}
	if got := s.RGBA().RGBAAt(15, 5); got != (color.RGBA{A: 255}) {
		t.Fatalf("expected background outside clip, got %v", got)
	}
}

func TestImageTextDrawsGlyphs(t *testing.T) {
	s := NewImage(40, 20)
	s.FillRect(0, 0, 39, 19, render.ChannelBG)
	s.Text(2, 2, "8", render.MarkerText)

	lit := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if s.RGBA().RGBAAt(x, y) == rgba(render.MarkerText) {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("expected glyph pixels")
	}
	if f := s.Font(); f.Width != 7 || f.Height != 13 {
		t.Fatalf("expected 7x13 font, got %+v", f)
	}
}

func TestImageWritePNG(t *testing.T) {
	s := NewImage(8, 8)
	var buf bytes.Buffer
	if err := s.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Fatalf("expected width 8, got %d", img.Bounds().Dx())
	}
}
