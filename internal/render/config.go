package render

// Config holds the constants the renderer is tuned by.
type Config struct {
	// SampleRate converts sample counts to seconds.
	SampleRate int
	// MaxDBRange is the depth of the log scale; 96 dB is the dynamic range
	// of 16-bit audio.
	MaxDBRange float64
	// SymmetricLogPeaks draws both edges of a log peak bar from the louder
	// edge.
	SymmetricLogPeaks bool
	// LogGuideSpacing is the distance in dB between log guide lines.
	LogGuideSpacing int
}

const DefaultSampleRate = 44100

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		SampleRate:        DefaultSampleRate,
		MaxDBRange:        96,
		SymmetricLogPeaks: true,
		LogGuideSpacing:   6,
	}
}

// rmsMinSamples is one millisecond of audio. Narrower columns skip RMS.
func (c Config) rmsMinSamples() int {
	return int(float64(c.SampleRate) * 0.001)
}
