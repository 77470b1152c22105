package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/olivier-w/wavview/internal/loader"
	"github.com/olivier-w/wavview/internal/samples"
)

func snapshotAudio() *loader.Audio {
	data := make([]int16, 2*20000)
	for i := range data {
		data[i] = int16((i % 200) * 100)
	}
	return &loader.Audio{Store: samples.New(data), SampleRate: 8000, Title: "ramp", Format: "raw"}
}

func TestRenderSnapshotWritesPNG(t *testing.T) {
	var buf bytes.Buffer
	s := testSettings()
	s.view.RMS = true
	if err := renderSnapshot(&buf, snapshotAudio(), s, 320, 200); err != nil {
		t.Fatalf("renderSnapshot: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
		t.Fatalf("expected 320x200, got %v", b)
	}
}

func TestRenderSnapshotRejectsTinySize(t *testing.T) {
	var buf bytes.Buffer
	if err := renderSnapshot(&buf, snapshotAudio(), testSettings(), 4, 100); err == nil {
		t.Fatal("expected error for width below minimum")
	}
	if buf.Len() != 0 {
		t.Fatal("expected nothing written on error")
	}
}

func TestRunWritesSnapshotFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "take.raw")
	if err := os.WriteFile(in, bytes.Repeat([]byte{0x00, 0x40}, 8192), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := filepath.Join(dir, "take.png")

	if err := run([]string{in}, out, 64, 48, testSettings()); err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
}

func TestRunArgumentErrors(t *testing.T) {
	if err := run([]string{"a", "b"}, "", 10, 10, testSettings()); err == nil {
		t.Fatal("expected error for two inputs")
	}
	if err := run(nil, "out.png", 10, 10, testSettings()); err == nil {
		t.Fatal("expected error for -png without input")
	}
}

func TestSetupLoggingDiscardsWithoutDebug(t *testing.T) {
	closeLog, err := setupLogging(func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	closeLog()
}
