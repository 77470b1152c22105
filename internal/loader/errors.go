package loader

import "errors"

var (
	ErrNotStereo         = errors.New("non-stereo audio not supported")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrEmpty             = errors.New("no samples")
	ErrInvalidWAV        = errors.New("invalid .wav file")
)
