// Package render draws a sample store onto a Surface: per-column peak and
// RMS bars in linear or dB scale, and a time axis.
package render

// Color names an entry of the viewer palette. Surfaces decide how each
// entry looks.
type Color uint8

const (
	ScreenBG Color = iota
	ChannelBG
	LinPeak
	LogPeak
	LinRMS
	LogRMS
	DCLine
	LogGuideMajor
	LogGuideMinor
	MarkerFG
	MarkerText
)

// RGB is the reference palette, indexed by Color.
var RGB = [...][3]uint8{
	ScreenBG:      {85, 85, 85},
	ChannelBG:     {0, 0, 0},
	LinPeak:       {85, 255, 85},
	LogPeak:       {85, 255, 85},
	LinRMS:        {0, 170, 170},
	LogRMS:        {85, 255, 255},
	DCLine:        {170, 170, 170},
	LogGuideMajor: {120, 120, 120},
	LogGuideMinor: {92, 92, 92},
	MarkerFG:      {255, 255, 255},
	MarkerText:    {255, 255, 255},
}

// FontMetrics is the size of one text glyph in surface pixels.
type FontMetrics struct {
	Width  int
	Height int
}

// Surface is an off-screen drawing buffer. Coordinates are inclusive
// pixel positions; primitives outside the clip rectangle are dropped.
type Surface interface {
	Size() (w, h int)
	Font() FontMetrics
	FillRect(x1, y1, x2, y2 int, c Color)
	HLine(x1, y, x2 int, c Color)
	VLine(x, y1, y2 int, c Color)
	Text(x, y int, s string, c Color)
	SetClip(x1, y1, x2, y2 int)
	ResetClip()
	// Present publishes the finished frame in one step.
	Present() error
}
