package main

import (
	"fmt"
	"os"

	"github.com/olivier-w/wavview/internal/loader"
	"github.com/olivier-w/wavview/internal/ui"
)

// settings carries the command-line choices into the startup path.
type settings struct {
	load loader.Options
	view ui.Options
}

// openSource validates path, loads it and builds the viewer.
func openSource(path string, s settings) (ui.Model, error) {
	a, err := loadSource(path, s.load)
	if err != nil {
		return ui.Model{}, err
	}
	return ui.New(a, s.view), nil
}

func loadSource(path string, opts loader.Options) (*loader.Audio, error) {
	if path != loader.StdinPath {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", path)
		}
	}
	a, err := loader.Load(path, opts)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	return a, nil
}
