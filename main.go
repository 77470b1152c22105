package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/wavview/internal/loader"
	"github.com/olivier-w/wavview/internal/media"
	"github.com/olivier-w/wavview/internal/render"
	"github.com/olivier-w/wavview/internal/ui"
)

func main() {
	var (
		width    = flag.Int("width", 1024, "snapshot width in pixels")
		height   = flag.Int("height", 512, "snapshot height in pixels")
		forceRaw = flag.Bool("forceraw", false, "treat input as headerless stereo 16-bit little-endian PCM")
		pngPath  = flag.String("png", "", "render the whole file to a PNG `file` and exit")
		logScale = flag.Bool("log", false, "start in logarithmic (dB) scale")
		rms      = flag.Bool("rms", false, "start with the RMS overlay on")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: wavview [flags] [file | -]\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Formats: %s (anything else is read as raw PCM)\n", media.SupportedExtsList())
		fmt.Fprintf(flag.CommandLine.Output(), "Env: RATE or SR sets the raw sample rate, WAVVIEW_DEBUG logs to wavview-debug.log\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	closeLog, err := setupLogging(os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	s := settings{
		load: loader.Options{ForceRaw: *forceRaw},
		view: ui.Options{Config: render.DefaultConfig(), Log: *logScale, RMS: *rms},
	}

	if err := run(flag.Args(), *pngPath, *width, *height, s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

func run(args []string, pngPath string, width, height int, s settings) error {
	if len(args) > 1 {
		return fmt.Errorf("expected at most one file, got %d", len(args))
	}

	if pngPath != "" {
		if len(args) == 0 {
			return fmt.Errorf("-png needs an input file")
		}
		a, err := loadSource(args[0], s.load)
		if err != nil {
			return err
		}
		return writeSnapshot(pngPath, a, s, width, height)
	}

	if len(args) == 0 {
		_, err := tea.NewProgram(newStartupModel(s), tea.WithAltScreen()).Run()
		return err
	}

	model, err := openSource(args[0], s)
	if err != nil {
		return err
	}
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if args[0] == loader.StdinPath {
		// stdin carried the samples; keys come from the terminal
		opts = append(opts, tea.WithInputTTY())
	}
	_, err = tea.NewProgram(model, opts...).Run()
	return err
}

// setupLogging sends the log package to a debug file when WAVVIEW_DEBUG is
// set and discards it otherwise.
func setupLogging(lookup func(string) (string, bool)) (func(), error) {
	if _, ok := lookup("WAVVIEW_DEBUG"); !ok {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile("wavview-debug.log", "wavview")
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	return func() { f.Close() }, nil
}
