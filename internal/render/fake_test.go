package render

type op struct {
	kind           string
	x1, y1, x2, y2 int
	text           string
	c              Color
}

// recorder is a Surface that remembers every primitive it is asked to draw.
type recorder struct {
	w, h     int
	font     FontMetrics
	ops      []op
	clipped  bool
	presents int
}

func newRecorder(w, h int) *recorder {
	return &recorder{w: w, h: h, font: FontMetrics{Width: 8, Height: 8}}
}

func (r *recorder) Size() (int, int)  { return r.w, r.h }
func (r *recorder) Font() FontMetrics { return r.font }

func (r *recorder) FillRect(x1, y1, x2, y2 int, c Color) {
	r.ops = append(r.ops, op{kind: "rect", x1: x1, y1: y1, x2: x2, y2: y2, c: c})
}

func (r *recorder) HLine(x1, y, x2 int, c Color) {
	r.ops = append(r.ops, op{kind: "hline", x1: x1, y1: y, x2: x2, y2: y, c: c})
}

func (r *recorder) VLine(x, y1, y2 int, c Color) {
	r.ops = append(r.ops, op{kind: "vline", x1: x, y1: y1, x2: x, y2: y2, c: c})
}

func (r *recorder) Text(x, y int, s string, c Color) {
	r.ops = append(r.ops, op{kind: "text", x1: x, y1: y, text: s, c: c})
}

func (r *recorder) SetClip(x1, y1, x2, y2 int) { r.clipped = true }
func (r *recorder) ResetClip()                 { r.clipped = false }

func (r *recorder) Present() error {
	r.presents++
	return nil
}

func (r *recorder) filter(kind string, colors ...Color) []op {
	var out []op
	for _, o := range r.ops {
		if o.kind != kind {
			continue
		}
		if len(colors) == 0 {
			out = append(out, o)
			continue
		}
		for _, c := range colors {
			if o.c == c {
				out = append(out, o)
				break
			}
		}
	}
	return out
}
