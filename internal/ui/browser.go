package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/wavview/internal/media"
)

// BrowserResult holds the outcome of the file browser.
type BrowserResult struct {
	Path      string
	Cancelled bool
}

type fileItem struct {
	name string
	ext  string
}

func (i fileItem) Title() string       { return i.name }
func (i fileItem) Description() string { return i.ext }
func (i fileItem) FilterValue() string { return i.name }

type pathItem struct{}

func (i pathItem) Title() string       { return "Open path..." }
func (i pathItem) Description() string { return "type a file path" }
func (i pathItem) FilterValue() string { return "path" }

// BrowserModel is the Bubbletea model for the file browser screen.
type BrowserModel struct {
	list     list.Model
	input    textinput.Model
	pathMode bool
	embedded bool
	result   *BrowserResult
	err      error
}

// NewBrowser creates a standalone browser that quits with a Result.
func NewBrowser() BrowserModel {
	return newBrowser(false)
}

// NewEmbeddedBrowser creates a browser that reports its outcome as
// BrowserSelectedMsg or BrowserCancelledMsg instead of quitting.
func NewEmbeddedBrowser() BrowserModel {
	return newBrowser(true)
}

func newBrowser(embedded bool) BrowserModel {
	entries, err := os.ReadDir(".")
	if err != nil {
		return BrowserModel{embedded: embedded, err: fmt.Errorf("cannot read directory: %w", err)}
	}

	items := []list.Item{pathItem{}}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !media.IsViewableExt(ext) {
			continue
		}
		items = append(items, fileItem{name: strings.TrimSuffix(e.Name(), ext), ext: ext})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	l := list.New(items, delegate, 80, 20)
	l.Title = "wavview"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	ti := textinput.New()
	ti.Placeholder = "path/to/audio.wav"
	ti.CharLimit = 4096
	ti.Width = 60

	return BrowserModel{list: l, input: ti, embedded: embedded}
}

// HasError returns true if the browser could not be initialized.
func (m BrowserModel) HasError() bool {
	return m.err != nil
}

// Error returns the initialization error, if any.
func (m BrowserModel) Error() error {
	return m.err
}

// Result returns the browser result after the program finishes.
func (m BrowserModel) Result() BrowserResult {
	if m.result != nil {
		return *m.result
	}
	return BrowserResult{Cancelled: true}
}

func (m BrowserModel) Init() tea.Cmd {
	return tea.SetWindowTitle("wavview")
}

func (m BrowserModel) selected(path string) (BrowserModel, tea.Cmd) {
	m.result = &BrowserResult{Path: path}
	if m.embedded {
		return m, func() tea.Msg { return BrowserSelectedMsg{Path: path} }
	}
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

func (m BrowserModel) cancelled() (BrowserModel, tea.Cmd) {
	m.result = &BrowserResult{Cancelled: true}
	if m.embedded {
		return m, func() tea.Msg { return BrowserCancelledMsg{} }
	}
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.pathMode {
		return m.updatePathInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't intercept keys when filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			switch item := m.list.SelectedItem().(type) {
			case pathItem:
				m.pathMode = true
				m.input.Focus()
				return m, tea.Batch(textinput.Blink, tea.SetWindowTitle("wavview: open path"))
			case fileItem:
				return m.selected(item.name + item.ext)
			}
		case "q", "esc", "ctrl+c":
			return m.cancelled()
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BrowserModel) updatePathInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			if path := strings.TrimSpace(m.input.Value()); path != "" {
				return m.selected(path)
			}
		case "esc":
			m.pathMode = false
			m.input.Reset()
			m.input.Blur()
			return m, tea.SetWindowTitle("wavview")
		case "ctrl+c":
			return m.cancelled()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m BrowserModel) View() string {
	if m.pathMode {
		s := "\n"
		s += "  " + headerStyle.Render("wavview") + "\n"
		s += "\n"
		s += "  " + statusStyle.Render("Open path:") + "\n"
		s += "  " + m.input.View() + "\n"
		s += "\n"
		s += "  " + helpStyle.Render("enter confirm  esc back  ctrl+c quit") + "\n"
		return s
	}
	return m.list.View()
}
