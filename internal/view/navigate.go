package view

// Event is a logical navigation input.
type Event int

const (
	None Event = iota
	PageUp
	PageDown
	Left
	Right
	Home
	End
	ZoomIn
	ZoomOut
	VZoomOut
	VZoomIn
	ToggleLog
	TogglePeaks
	ToggleRMS
	Quit
)

var eventNames = [...]string{
	None:        "none",
	PageUp:      "page up",
	PageDown:    "page down",
	Left:        "left",
	Right:       "right",
	Home:        "home",
	End:         "end",
	ZoomIn:      "zoom in",
	ZoomOut:     "zoom out",
	VZoomOut:    "vertical zoom out",
	VZoomIn:     "vertical zoom in",
	ToggleLog:   "toggle log",
	TogglePeaks: "toggle peaks",
	ToggleRMS:   "toggle rms",
	Quit:        "quit",
}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[e]
}

// Apply performs ev on the state and re-clamps. It reports whether ev asks
// to end the session.
func (s *State) Apply(ev Event) (quit bool) {
	visible := s.VisibleSamples()

	switch ev {
	case PageUp:
		s.Pos -= visible
	case PageDown:
		s.Pos += visible
	case Left:
		s.Pos -= visible / panSteps
	case Right:
		s.Pos += visible / panSteps
	case Home:
		s.Pos = 0
	case End:
		s.Pos = s.NumSamples - visible
	case ZoomIn:
		s.rezoom(max(s.Zoom/2, 1))
	case ZoomOut:
		s.rezoom(min(s.Zoom*2, s.MaxZoom()))
	case VZoomOut:
		if s.VZoom > VZoomMin {
			s.VZoom--
		}
	case VZoomIn:
		if s.VZoom < VZoomMax {
			s.VZoom++
		}
	case ToggleLog:
		s.Log = !s.Log
	case TogglePeaks:
		s.Peaks = !s.Peaks
	case ToggleRMS:
		s.RMS = !s.RMS
	case Quit:
		quit = true
	}

	s.Clamp()
	return quit
}

// rezoom changes zoom while keeping the sample at the viewport centre fixed.
func (s *State) rezoom(zoom int) {
	s.Pos += s.Width * s.Zoom / 2
	s.Zoom = zoom
	s.Pos -= s.Width * s.Zoom / 2
}
