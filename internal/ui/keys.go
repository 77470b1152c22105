package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/wavview/internal/view"
)

type keyMap struct {
	PageUp      key.Binding
	PageDown    key.Binding
	Left        key.Binding
	Right       key.Binding
	Home        key.Binding
	End         key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	VZoomOut    key.Binding
	VZoomIn     key.Binding
	ToggleLog   key.Binding
	TogglePeaks key.Binding
	ToggleRMS   key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page back")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page fwd")),
		Left:        key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "scroll back")),
		Right:       key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "scroll fwd")),
		Home:        key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "start")),
		End:         key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "end")),
		ZoomIn:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "zoom in")),
		ZoomOut:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "zoom out")),
		VZoomOut:    key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "v-zoom out")),
		VZoomIn:     key.NewBinding(key.WithKeys("f4"), key.WithHelp("f4", "v-zoom in")),
		ToggleLog:   key.NewBinding(key.WithKeys("l", "L"), key.WithHelp("l", "log")),
		TogglePeaks: key.NewBinding(key.WithKeys("p", "P"), key.WithHelp("p", "peaks")),
		ToggleRMS:   key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "rms")),
		Quit:        key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.ZoomIn, k.ZoomOut, k.ToggleLog, k.TogglePeaks, k.ToggleRMS, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PageUp, k.PageDown, k.Left, k.Right, k.Home, k.End},
		{k.ZoomIn, k.ZoomOut, k.VZoomOut, k.VZoomIn},
		{k.ToggleLog, k.TogglePeaks, k.ToggleRMS, k.Quit},
	}
}

// event maps a key press to a navigation event.
func (k keyMap) event(msg tea.KeyMsg) view.Event {
	bindings := []struct {
		b  key.Binding
		ev view.Event
	}{
		{k.PageUp, view.PageUp},
		{k.PageDown, view.PageDown},
		{k.Left, view.Left},
		{k.Right, view.Right},
		{k.Home, view.Home},
		{k.End, view.End},
		{k.ZoomIn, view.ZoomIn},
		{k.ZoomOut, view.ZoomOut},
		{k.VZoomOut, view.VZoomOut},
		{k.VZoomIn, view.VZoomIn},
		{k.ToggleLog, view.ToggleLog},
		{k.TogglePeaks, view.TogglePeaks},
		{k.ToggleRMS, view.ToggleRMS},
		{k.Quit, view.Quit},
	}
	for _, kb := range bindings {
		if key.Matches(msg, kb.b) {
			return kb.ev
		}
	}
	return view.None
}
