// Package view holds the viewport state and the navigation rules that move it.
package view

const (
	VZoomMin = 0
	VZoomMax = 15

	// panSteps is how many small pans make up one full viewport.
	panSteps = 10
)

// State is the viewport over a sample store.
type State struct {
	Pos        int // leftmost visible sample
	Zoom       int // samples per pixel column
	VZoom      int // linear amplitude shown at 2^VZoom
	Width      int // pixel columns
	NumSamples int

	Log   bool
	Peaks bool
	RMS   bool
}

// New returns the initial viewport: fully zoomed in at the start, peaks on.
func New(numSamples, width int) State {
	s := State{
		Zoom:       1,
		Width:      max(width, 1),
		NumSamples: numSamples,
		Peaks:      true,
	}
	s.Clamp()
	return s
}

// VisibleSamples returns the number of samples spanned by the viewport.
func (s State) VisibleSamples() int {
	return s.Width * s.Zoom
}

// MaxZoom returns the widest zoom that still fills the viewport, never below 1.
func (s State) MaxZoom() int {
	return max(s.NumSamples/s.Width, 1)
}

// Clamp brings zoom and pos back into range.
func (s *State) Clamp() {
	if s.Width < 1 {
		s.Width = 1
	}
	s.Zoom = min(max(s.Zoom, 1), s.MaxZoom())
	s.VZoom = min(max(s.VZoom, VZoomMin), VZoomMax)

	if last := s.NumSamples - s.VisibleSamples(); s.Pos > last {
		s.Pos = last
	}
	if s.Pos < 0 {
		s.Pos = 0
	}
}

// Resize changes the number of pixel columns and re-clamps.
func (s *State) Resize(width int) {
	s.Width = width
	s.Clamp()
}
