package samples

import (
	"encoding/binary"
	"time"
)

// Channel selects one side of an interleaved stereo frame.
type Channel int

const (
	Left Channel = iota
	Right
)

// Channels is the only channel count the viewer supports.
const Channels = 2

// Store is a read-only sequence of interleaved stereo 16-bit frames.
type Store struct {
	data []int16 // L R L R ...
	n    int     // frames
}

// New wraps interleaved stereo samples. The slice is owned by the Store from
// here on; a trailing half frame is ignored.
func New(interleaved []int16) *Store {
	n := len(interleaved) / Channels
	return &Store{data: interleaved[:n*Channels], n: n}
}

// FromBytesLE builds a Store from raw little-endian interleaved stereo PCM.
func FromBytesLE(b []byte) *Store {
	vals := make([]int16, len(b)/2)
	for i := range vals {
		vals[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}
	return New(vals)
}

// NumSamples returns the number of samples per channel.
func (s *Store) NumSamples() int {
	if s == nil {
		return 0
	}
	return s.n
}

// At returns the sample at index on channel ch. Indices past the end read
// as silence.
func (s *Store) At(ch Channel, index int) int16 {
	if index >= s.n || index < 0 {
		return 0
	}
	return s.data[index*Channels+int(ch)]
}

// Duration returns the playing time of the store at the given rate.
func (s *Store) Duration(rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(s.NumSamples()) / float64(rate) * float64(time.Second))
}
