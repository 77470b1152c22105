package ui

// BrowserSelectedMsg is sent by an embedded browser when a file is chosen.
type BrowserSelectedMsg struct {
	Path string
}

// BrowserCancelledMsg is sent by an embedded browser when the user quits.
type BrowserCancelledMsg struct{}
