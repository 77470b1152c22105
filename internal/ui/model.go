package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/wavview/internal/blockcache"
	"github.com/olivier-w/wavview/internal/canvas"
	"github.com/olivier-w/wavview/internal/loader"
	"github.com/olivier-w/wavview/internal/render"
	"github.com/olivier-w/wavview/internal/util"
	"github.com/olivier-w/wavview/internal/view"
)

// chromeLines is the number of terminal rows below the waveform.
const chromeLines = 2

const (
	minCols = 10
	minRows = 2
)

// Options sets the renderer tuning and initial display modes.
type Options struct {
	Config render.Config
	Log    bool
	RMS    bool
}

// Model is the Bubbletea model for the waveform viewer.
type Model struct {
	audio    *loader.Audio
	cache    *blockcache.Cache
	canvas   *canvas.Braille
	renderer *render.Renderer
	state    view.State
	keys     keyMap
	help     help.Model

	width    int
	height   int
	quitting bool
}

// New creates a viewer over a loaded source. The canvas is sized on the
// first tea.WindowSizeMsg.
func New(a *loader.Audio, opts Options) Model {
	cfg := opts.Config
	if a.SampleRate > 0 {
		cfg.SampleRate = a.SampleRate
	}
	cache := blockcache.New(a.Store)
	c := canvas.NewBraille(minCols, minRows)

	state := view.New(a.Store.NumSamples(), minCols*2)
	state.Log = opts.Log
	state.RMS = opts.RMS

	h := help.New()
	h.Styles.ShortKey = statusStyle
	h.Styles.ShortDesc = helpStyle
	h.Styles.ShortSeparator = helpStyle

	return Model{
		audio:    a,
		cache:    cache,
		canvas:   c,
		renderer: render.New(c, cache, cfg),
		state:    state,
		keys:     defaultKeyMap(),
		help:     h,
	}
}

// State returns the current viewport.
func (m Model) State() view.State { return m.state }

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(windowTitle(m.audio.Label()))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state.Apply(m.keys.event(msg)) {
			m.quitting = true
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.canvas.Resize(max(msg.Width, minCols), max(msg.Height-chromeLines, minRows))
		w, _ := m.canvas.Size()
		m.state.Resize(w)
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width < minCols || m.height < minRows+chromeLines {
		return "\n  " + headerStyle.Render("wavview") + "\n\n  " + helpStyle.Render("window too small") + "\n"
	}

	began := time.Now()
	if err := m.renderer.Frame(m.state); err != nil {
		return "\n  " + errorStyle.Render(err.Error()) + "\n"
	}
	log.Printf("frame pos=%d zoom=%d in %v", m.state.Pos, m.state.Zoom, time.Since(began))

	var b strings.Builder
	b.WriteString(m.canvas.String())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(" " + m.help.View(m.keys))
	return b.String()
}

func (m Model) statusLine() string {
	rate := m.renderer.Config().SampleRate
	parts := []string{
		titleStyle.Render(m.audio.Label()),
		timeStyle.Render(util.FormatPosition(sampleTime(m.state.Pos, rate)) + " / " + util.FormatDuration(m.audio.Duration())),
		statusStyle.Render(fmt.Sprintf("zoom %d  vzoom %d", m.state.Zoom, m.state.VZoom)),
		modeLabel("log", m.state.Log) + " " + modeLabel("peaks", m.state.Peaks) + " " + modeLabel("rms", m.state.RMS),
		artistStyle.Render(fmt.Sprintf("%s %s  cache %d%%", m.audio.Format, util.FormatRate(rate), int(m.cache.Warmth()*100))),
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(" " + strings.Join(parts, "  "))
}

func modeLabel(name string, on bool) string {
	if on {
		return modeOnStyle.Render(name)
	}
	return modeOffStyle.Render(name)
}

// sampleTime converts a sample index to elapsed time at rate.
func sampleTime(index, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(index) / float64(rate) * float64(time.Second))
}

func windowTitle(label string) string {
	return label + " · wavview"
}
