package render

import (
	"math"
	"strconv"
)

// startInterval is the coarsest marker spacing tried, in seconds.
const startInterval = 1000.0

// epsilon is the float64 machine epsilon.
const epsilon = 2.2204460492503131e-16

// MarkerDecimals returns how many decimals a label needs at the given
// interval: 1 or more needs none, 0.1 needs one, 0.01 two, and so on.
func MarkerDecimals(interval float64) int {
	if interval <= 0 {
		return 0
	}
	decimals := 0
	for n := interval; n < 1.0; n *= 10 {
		decimals++
	}
	return decimals
}

// FormatMarker renders the label for time t on a grid of the given interval.
func FormatMarker(t, interval float64) string {
	return strconv.FormatFloat(t, 'f', MarkerDecimals(interval), 64)
}

// MarkerInterval picks the finest power-of-ten submultiple of 1000 seconds
// whose labels still fit between neighbouring markers.
func MarkerInterval(endSecs, secsPerPixel float64, fontWidth int) float64 {
	interval := startInterval
	if secsPerPixel <= 0 {
		return interval
	}
	for {
		next := interval / 10
		if next <= 0 {
			break
		}
		labelWidth := float64((1 + len(FormatMarker(endSecs, next))) * fontWidth)
		if labelWidth >= next/secsPerPixel {
			break
		}
		interval = next
	}
	return interval
}

// FirstMarker returns the first multiple of interval at or after t. A
// remainder within epsilon counts as on the boundary.
func FirstMarker(t, interval float64) float64 {
	if rem := math.Mod(t, interval); rem > epsilon {
		t += interval - rem
	}
	return t
}

// DrawTimeMarkers draws ticks and labels along a row for sampleCount
// samples starting at startSample, spread over width pixels.
func (r *Renderer) DrawTimeMarkers(top, left, width, startSample, sampleCount int) {
	rate := float64(r.cfg.SampleRate)
	if rate <= 0 || width <= 0 || sampleCount <= 0 {
		return
	}
	font := r.surface.Font()

	totalTime := float64(sampleCount) / rate
	secsPerPixel := totalTime / float64(width)
	startSecs := float64(startSample) / rate
	endSecs := float64(startSample+sampleCount) / rate

	interval := MarkerInterval(endSecs, secsPerPixel, font.Width)
	for t := FirstMarker(startSecs, interval); t < endSecs; t += interval {
		x := int((t-startSecs)/secsPerPixel) + left
		r.surface.VLine(x, top-font.Height/4, top+3*font.Height/4, MarkerFG)
		r.surface.Text(x+2, top, FormatMarker(t, interval), MarkerText)
	}
}
