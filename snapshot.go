package main

import (
	"fmt"
	"io"
	"os"

	"github.com/olivier-w/wavview/internal/blockcache"
	"github.com/olivier-w/wavview/internal/canvas"
	"github.com/olivier-w/wavview/internal/loader"
	"github.com/olivier-w/wavview/internal/render"
	"github.com/olivier-w/wavview/internal/view"
)

// minSnapshotSize is the smallest accepted image edge in pixels.
const minSnapshotSize = 5

// renderSnapshot draws the whole source into one width x height frame.
func renderSnapshot(w io.Writer, a *loader.Audio, opts settings, width, height int) error {
	if width < minSnapshotSize || height < minSnapshotSize {
		return fmt.Errorf("snapshot size %dx%d: both edges must be at least %d", width, height, minSnapshotSize)
	}
	cfg := opts.view.Config
	if a.SampleRate > 0 {
		cfg.SampleRate = a.SampleRate
	}

	img := canvas.NewImage(width, height)
	r := render.New(img, blockcache.New(a.Store), cfg)

	st := view.New(a.Store.NumSamples(), width)
	st.Zoom = st.MaxZoom()
	st.Log = opts.view.Log
	st.RMS = opts.view.RMS
	st.Clamp()

	if err := r.Frame(st); err != nil {
		return err
	}
	return img.WritePNG(w)
}

func writeSnapshot(path string, a *loader.Audio, opts settings, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := renderSnapshot(f, a, opts, width, height); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
