package loader

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// maxSampleRate is the highest rate accepted from file headers.
const maxSampleRate = 384000

// wavFormatPCM and wavFormatExtensible are the accepted WAV format tags.
const (
	wavFormatPCM        = 0x0001
	wavFormatExtensible = 0xFFFE
)

// audioDecoder yields 16-bit little-endian interleaved PCM.
type audioDecoder interface {
	io.Reader
	SampleRate() int
	ChannelCount() int
}

// --- MP3 decoder ---

type mp3Decoder struct {
	dec *mp3.Decoder
}

func newMP3Decoder(r io.Reader) (*mp3Decoder, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decoding MP3: %w", err)
	}
	return &mp3Decoder{dec: dec}, nil
}

func (d *mp3Decoder) Read(p []byte) (int, error) { return d.dec.Read(p) }
func (d *mp3Decoder) SampleRate() int            { return d.dec.SampleRate() }
func (d *mp3Decoder) ChannelCount() int          { return 2 }

// --- WAV decoder ---

type wavDecoder struct {
	r           io.Reader
	sampleRate  int
	channels    int
	srcBitDepth int
	remaining   int64 // source PCM bytes left
}

func newWAVDecoder(rs io.ReadSeeker) (*wavDecoder, error) {
	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	// FwdToPCM positions the reader at the start of PCM data
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	if tag := dec.WavAudioFormat; tag != wavFormatPCM && tag != wavFormatExtensible {
		return nil, fmt.Errorf("%w: non-PCM wav data: format tag %d", ErrUnsupportedFormat, tag)
	}
	if dec.WavAudioFormat == wavFormatExtensible {
		sub, err := extensibleSubFormat(rs)
		if err != nil {
			return nil, err
		}
		if sub != wavFormatPCM {
			return nil, fmt.Errorf("%w: non-PCM wav data: sub-format %d", ErrUnsupportedFormat, sub)
		}
	}
	if dec.SampleRate > maxSampleRate {
		return nil, fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, dec.SampleRate)
	}
	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: bit depth %d", ErrUnsupportedFormat, dec.BitDepth)
	}

	return &wavDecoder{
		r:           rs,
		sampleRate:  int(dec.SampleRate),
		channels:    int(dec.NumChans),
		srcBitDepth: int(dec.BitDepth),
		remaining:   dec.PCMLen(),
	}, nil
}

// extensibleSubFormat returns the format code that opens the sub-format
// GUID of a WAVE_FORMAT_EXTENSIBLE fmt chunk. The reader position is kept.
func extensibleSubFormat(rs io.ReadSeeker) (uint16, error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	hdr := make([]byte, 46)
	_, err = io.ReadFull(rs, hdr)
	if _, serr := rs.Seek(pos, io.SeekStart); serr != nil {
		return 0, serr
	}
	if err != nil {
		return 0, fmt.Errorf("%w: short extensible header", ErrInvalidWAV)
	}
	// the sub-format sits 24 bytes into the fmt chunk data
	if string(hdr[12:16]) != "fmt " || binary.LittleEndian.Uint32(hdr[16:20]) < 40 {
		return 0, fmt.Errorf("%w: extensible fmt chunk not found", ErrInvalidWAV)
	}
	return binary.LittleEndian.Uint16(hdr[44:46]), nil
}

func (d *wavDecoder) Read(p []byte) (int, error) {
	if d.remaining <= 0 {
		return 0, io.EOF
	}
	if len(p) < 2 {
		return 0, io.ErrShortBuffer
	}
	srcBytesPerSample := d.srcBitDepth / 8
	numOutputSamples := len(p) / 2
	want := min(int64(numOutputSamples*srcBytesPerSample), d.remaining)

	srcBytes := make([]byte, want)
	n, err := io.ReadFull(d.r, srcBytes)
	d.remaining -= int64(n)
	samplesRead := n / srcBytesPerSample
	if samplesRead == 0 {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}

	// Convert to 16-bit LE PCM
	for i := 0; i < samplesRead; i++ {
		off := i * srcBytesPerSample
		binary.LittleEndian.PutUint16(p[i*2:], uint16(to16(srcBytes[off:], d.srcBitDepth)))
	}
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return samplesRead * 2, err
}

// to16 reduces one little-endian source sample to 16 bits.
func to16(b []byte, bitDepth int) int16 {
	switch bitDepth {
	case 8:
		// 8-bit WAV is unsigned
		return int16((int(b[0]) - 128) << 8)
	case 24:
		return int16(uint16(b[1]) | uint16(b[2])<<8)
	case 32:
		return int16(int32(binary.LittleEndian.Uint32(b)) >> 16)
	default:
		return int16(binary.LittleEndian.Uint16(b))
	}
}

func (d *wavDecoder) SampleRate() int   { return d.sampleRate }
func (d *wavDecoder) ChannelCount() int { return d.channels }

// --- FLAC decoder ---

type flacDecoder struct {
	stream     *flac.Stream
	buf        []byte
	sampleRate int
	channels   int
	bps        int
}

func newFLACDecoder(r io.Reader) (*flacDecoder, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}

	info := stream.Info
	return &flacDecoder{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bps:        int(info.BitsPerSample),
	}, nil
}

func (d *flacDecoder) Read(p []byte) (int, error) {
	// Drain buffered data first
	if len(d.buf) > 0 {
		n := copy(p, d.buf)
		d.buf = d.buf[n:]
		return n, nil
	}

	frame, err := d.stream.ParseNext()
	if err != nil {
		return 0, err
	}

	nSamples := int(frame.Subframes[0].NSamples)
	raw := make([]byte, nSamples*d.channels*2)

	for i := 0; i < nSamples; i++ {
		for ch := 0; ch < d.channels; ch++ {
			sample := int(frame.Subframes[ch].Samples[i])
			switch {
			case d.bps > 16:
				sample >>= (d.bps - 16)
			case d.bps < 16:
				sample <<= (16 - d.bps)
			}
			sample = min(max(sample, -32768), 32767)
			offset := (i*d.channels + ch) * 2
			binary.LittleEndian.PutUint16(raw[offset:], uint16(int16(sample)))
		}
	}

	written := copy(p, raw)
	if written < len(raw) {
		d.buf = raw[written:]
	}
	return written, nil
}

func (d *flacDecoder) SampleRate() int   { return d.sampleRate }
func (d *flacDecoder) ChannelCount() int { return d.channels }

// --- OGG Vorbis decoder ---

type oggDecoder struct {
	reader *oggvorbis.Reader
	tmp    []float32
}

func newOGGDecoder(r io.Reader) (*oggDecoder, error) {
	reader, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	return &oggDecoder{reader: reader}, nil
}

func (d *oggDecoder) Read(p []byte) (int, error) {
	want := len(p) / 2
	if want == 0 {
		return 0, nil
	}
	if cap(d.tmp) < want {
		d.tmp = make([]float32, want)
	}
	samples := d.tmp[:want]
	n, err := d.reader.Read(samples)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}

	for i := 0; i < n; i++ {
		s := min(max(samples[i], -1.0), 1.0)
		binary.LittleEndian.PutUint16(p[i*2:], uint16(int16(s*32767)))
	}
	return n * 2, err
}

func (d *oggDecoder) SampleRate() int   { return d.reader.SampleRate() }
func (d *oggDecoder) ChannelCount() int { return d.reader.Channels() }
