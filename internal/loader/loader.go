// Package loader turns audio files into a samples.Store: container parsing,
// decoding to 16-bit stereo, and sample-rate discovery.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bogem/id3v2/v2"

	"github.com/olivier-w/wavview/internal/media"
	"github.com/olivier-w/wavview/internal/samples"
)

// DefaultSampleRate is used when neither the file nor the environment
// gives one.
const DefaultSampleRate = 44100

// StdinPath selects standard input as the source.
const StdinPath = "-"

// sniffMinLen is the shortest stdin input that is checked for a WAV header.
const sniffMinLen = 1000

// Options controls how a source is interpreted.
type Options struct {
	// ForceRaw treats the input as headerless stereo 16-bit PCM.
	ForceRaw bool
	// Rate is the sample rate for sources without one; 0 means
	// RateFromEnv.
	Rate int
	// Stdin replaces os.Stdin when the path is StdinPath.
	Stdin io.Reader
}

// Audio is a loaded source.
type Audio struct {
	Store      *samples.Store
	SampleRate int
	Title      string
	Artist     string
	Format     string
}

// Label is the display name of the source.
func (a *Audio) Label() string {
	if a.Artist != "" {
		return a.Artist + " - " + a.Title
	}
	return a.Title
}

// Duration returns the playing time of the source.
func (a *Audio) Duration() time.Duration {
	return a.Store.Duration(a.SampleRate)
}

// RateFromEnv reads the default sample rate from RATE, then SR.
func RateFromEnv(lookup func(string) (string, bool)) int {
	for _, key := range []string{"RATE", "SR"} {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
		break
	}
	return DefaultSampleRate
}

// Load reads path (or stdin for "-") into memory.
func Load(path string, opts Options) (*Audio, error) {
	if opts.Rate <= 0 {
		opts.Rate = RateFromEnv(os.LookupEnv)
	}
	began := time.Now()

	var (
		a   *Audio
		err error
	)
	if path == StdinPath {
		a, err = loadStdin(opts)
	} else {
		a, err = loadFile(path, opts)
	}
	if err != nil {
		return nil, err
	}
	if a.Store.NumSamples() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	log.Printf("loaded %s: %s, %d samples at %d Hz in %v",
		path, a.Format, a.Store.NumSamples(), a.SampleRate, time.Since(began))
	return a, nil
}

func loadStdin(opts Options) (*Audio, error) {
	in := opts.Stdin
	if in == nil {
		in = os.Stdin
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}

	a := &Audio{Title: "stdin"}
	if !opts.ForceRaw && len(data) > sniffMinLen && isRIFFWave(data) {
		if err := a.decode(newWAVDecoderFunc(bytes.NewReader(data))); err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		a.Format = "wav"
		return a, nil
	}
	a.raw(data, opts.Rate)
	return a, nil
}

func isRIFFWave(data []byte) bool {
	return len(data) >= 16 && string(data[:4]) == "RIFF" && string(data[8:16]) == "WAVEfmt "
}

func loadFile(path string, opts Options) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	base := filepath.Base(path)
	a := &Audio{Title: strings.TrimSuffix(base, filepath.Ext(base))}

	if opts.ForceRaw || !media.IsSupportedExt(ext) {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		a.raw(data, opts.Rate)
		return a, nil
	}

	var open func() (audioDecoder, error)
	switch ext {
	case ".wav":
		open = newWAVDecoderFunc(f)
	case ".mp3":
		open = func() (audioDecoder, error) { return newMP3Decoder(f) }
		a.readTags(path)
	case ".flac":
		open = func() (audioDecoder, error) { return newFLACDecoder(f) }
	case ".ogg":
		open = func() (audioDecoder, error) { return newOGGDecoder(f) }
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err := a.decode(open); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.Format = strings.TrimPrefix(ext, ".")
	return a, nil
}

func newWAVDecoderFunc(rs io.ReadSeeker) func() (audioDecoder, error) {
	return func() (audioDecoder, error) { return newWAVDecoder(rs) }
}

// decode drains a decoder into the store.
func (a *Audio) decode(open func() (audioDecoder, error)) error {
	dec, err := open()
	if err != nil {
		return err
	}
	if ch := dec.ChannelCount(); ch != samples.Channels {
		return fmt.Errorf("%w: %d channels", ErrNotStereo, ch)
	}
	pcm, err := drain(dec)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	a.Store = samples.FromBytesLE(pcm)
	a.SampleRate = dec.SampleRate()
	return nil
}

// drain reads a decoder to the end in fixed-size chunks.
func drain(r io.Reader) ([]byte, error) {
	var out bytes.Buffer
	chunk := make([]byte, 64*1024)
	for {
		n, err := r.Read(chunk)
		out.Write(chunk[:n])
		if err == io.EOF {
			return out.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (a *Audio) raw(data []byte, rate int) {
	a.Store = samples.FromBytesLE(data)
	a.SampleRate = rate
	a.Format = "raw"
}

// readTags fills title and artist from ID3v2 tags when present.
func (a *Audio) readTags(path string) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return
	}
	defer tag.Close()
	if title := strings.TrimSpace(tag.Title()); title != "" {
		a.Title = title
		a.Artist = strings.TrimSpace(tag.Artist())
	}
}
