package render

import (
	"github.com/olivier-w/wavview/internal/blockcache"
	"github.com/olivier-w/wavview/internal/samples"
	"github.com/olivier-w/wavview/internal/view"
)

// span is the vertical extent of one drawn column, y1 on top.
type span struct {
	y1, y2 int
}

// Renderer draws frames of a cached sample store onto a surface.
type Renderer struct {
	surface Surface
	cache   *blockcache.Cache
	cfg     Config
	view    view.State

	// continuity state for the strip being drawn
	col      int
	lastPeak span
	lastRMS  span
}

// New returns a renderer for cache on surface.
func New(surface Surface, cache *blockcache.Cache, cfg Config) *Renderer {
	return &Renderer{surface: surface, cache: cache, cfg: cfg}
}

// SetView sets the viewport and display modes used by the draw calls.
func (r *Renderer) SetView(v view.State) { r.view = v }

// Config returns the renderer tuning.
func (r *Renderer) Config() Config { return r.cfg }

// Frame draws both channels with their time axes and presents the result.
func (r *Renderer) Frame(v view.State) error {
	r.SetView(v)
	w, h := r.surface.Size()
	font := r.surface.Font()

	r.surface.FillRect(0, 0, w-1, h-1, ScreenBG)
	for ch := 0; ch < samples.Channels; ch++ {
		r.DrawChannel(ch*h/2, h/2-font.Height, 0, v.Zoom, w, samples.Channel(ch), v.Pos)
		r.DrawTimeMarkers((ch+1)*h/2-font.Height, 0, w, v.Pos, v.Zoom*w)
	}
	return r.surface.Present()
}

// DrawChannel draws one channel strip. columnWidth is the number of samples
// per pixel column and startSample the sample under the leftmost column.
func (r *Renderer) DrawChannel(top, height, left, columnWidth, columnCount int, ch samples.Channel, startSample int) {
	if height < 1 || columnCount < 1 {
		return
	}
	r.surface.SetClip(left, top, left+columnCount-1, top+height-1)
	defer r.surface.ResetClip()

	// An odd height gives a true centre row.
	if height&1 == 0 {
		height--
	}
	centre := top + height/2
	r.lastPeak = span{centre, centre}
	r.lastRMS = span{centre, centre}

	skipRMS := !r.view.RMS || columnWidth < r.cfg.rmsMinSamples() || columnWidth < 1

	r.surface.FillRect(left, top, left+columnCount-1, top+height-1, ChannelBG)
	if r.view.Log {
		r.drawLogGuides(top, height, left, columnCount)
	} else {
		r.surface.HLine(left, centre, left+columnCount-1, DCLine)
	}

	for r.col = 0; r.col < columnCount; r.col++ {
		start := startSample + r.col*columnWidth
		if r.view.Peaks {
			lo, hi := r.cache.MinMax(ch, start, columnWidth)
			r.DrawColumn(left+r.col, top, height, lo, hi, false)
		}
		if !skipRMS {
			rms := int(fullScale * r.cache.RMS(ch, start, columnWidth))
			r.DrawColumn(left+r.col, top, height, -rms, rms, true)
		}
	}
}

func (r *Renderer) drawLogGuides(top, height, left, columnCount int) {
	spacing := r.cfg.LogGuideSpacing
	if spacing <= 0 {
		return
	}
	for db := spacing; float64(db) < r.cfg.MaxDBRange; db += spacing {
		y := top + int(float64(db*height)/r.cfg.MaxDBRange)
		c := LogGuideMinor
		if db%(2*spacing) == 0 {
			c = LogGuideMajor
		}
		r.surface.HLine(left, y, left+columnCount-1, c)
	}
}

// ColumnSpan maps a min/max pair to the pixel rows of its bar, before any
// linking to the previous column. y1 is the upper row.
func (r *Renderer) ColumnSpan(top, height, lo, hi int, isRMS bool) (y1, y2 int) {
	if !r.view.Log {
		for i := 0; i < r.view.VZoom; i++ {
			lo *= 2
			hi *= 2
		}
		centre := top + height/2
		y1 = centre - int(float64(hi*height/2)/fullScale)
		y2 = centre - int(float64(lo*height/2)/fullScale)
	} else {
		hiDB := ToDB(hi)
		loDB := ToDB(lo)
		if !isRMS && r.cfg.SymmetricLogPeaks {
			// Take the louder edge for both so an asymmetric peak does not
			// tilt the silhouette.
			loDB = max(loDB, hiDB)
			hiDB = loDB
		}
		hiDB = ClampDB(hiDB, r.cfg.MaxDBRange)
		loDB = ClampDB(loDB, r.cfg.MaxDBRange)

		y1 = int(float64(top) - loDB*float64(height)/r.cfg.MaxDBRange)
		y2 = int(float64(top) - hiDB*float64(height)/r.cfg.MaxDBRange)
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return y1, y2
}

// DrawColumn draws one bar at column x. Unless x is the first column of the
// strip, the bar is stretched to touch the previous bar of the same series.
func (r *Renderer) DrawColumn(x, top, height, lo, hi int, isRMS bool) {
	y1, y2 := r.ColumnSpan(top, height, lo, hi, isRMS)

	last := &r.lastPeak
	c := LinPeak
	switch {
	case isRMS && r.view.Log:
		last, c = &r.lastRMS, LogRMS
	case isRMS:
		last, c = &r.lastRMS, LinRMS
	case r.view.Log:
		c = LogPeak
	}

	if r.col > 0 {
		if y2 < last.y1-1 {
			y2 = last.y1 - 1
		} else if y1 > last.y2+1 {
			y1 = last.y2 + 1
		}
	}

	r.surface.VLine(x, y1, y2, c)
	*last = span{y1, y2}
}
