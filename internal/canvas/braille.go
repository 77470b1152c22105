// Package canvas provides render.Surface implementations: a Unicode
// Braille grid for the terminal and an RGBA image for snapshots.
package canvas

import (
	"strings"

	"github.com/olivier-w/wavview/internal/render"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint8{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

const (
	dotsX = 2
	dotsY = 4
)

type rect struct {
	x1, y1, x2, y2 int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x1 && x <= r.x2 && y >= r.y1 && y <= r.y2
}

type cell struct {
	dots  uint8
	color render.Color
	text  rune
}

// Braille is a terminal surface where each character cell holds a 2x4 dot
// grid. Lines light dots; text replaces whole cells.
type Braille struct {
	cols, rows int
	cells      []cell
	clip       rect
	profile    colorProfile
	front      string
}

// NewBraille returns a surface of cols x rows character cells.
func NewBraille(cols, rows int) *Braille {
	b := &Braille{profile: currentColorProfile()}
	b.Resize(cols, rows)
	return b
}

// Resize changes the cell grid and clears it.
func (b *Braille) Resize(cols, rows int) {
	b.cols = max(cols, 1)
	b.rows = max(rows, 1)
	b.cells = make([]cell, b.cols*b.rows)
	b.ResetClip()
}

// Cells returns the grid size in character cells.
func (b *Braille) Cells() (cols, rows int) { return b.cols, b.rows }

func (b *Braille) Size() (int, int) { return b.cols * dotsX, b.rows * dotsY }

// Font reports one character cell as a glyph.
func (b *Braille) Font() render.FontMetrics {
	return render.FontMetrics{Width: dotsX, Height: dotsY}
}

func (b *Braille) SetClip(x1, y1, x2, y2 int) {
	w, h := b.Size()
	b.clip = clipTo(rect{x1, y1, x2, y2}, w, h)
}

func (b *Braille) ResetClip() {
	w, h := b.Size()
	b.clip = rect{0, 0, w - 1, h - 1}
}

func (b *Braille) at(x, y int) *cell {
	return &b.cells[(y/dotsY)*b.cols+x/dotsX]
}

func (b *Braille) set(x, y int, c render.Color) {
	if !b.clip.contains(x, y) {
		return
	}
	cl := b.at(x, y)
	cl.dots |= 1 << brailleBits[x%dotsX][y%dotsY]
	cl.color = c
	cl.text = 0
}

// FillRect clears the dots inside the rectangle. Backgrounds are left to
// the terminal.
func (b *Braille) FillRect(x1, y1, x2, y2 int, c render.Color) {
	x1, x2 = order(x1, x2)
	y1, y2 = order(y1, y2)
	for y := max(y1, b.clip.y1); y <= min(y2, b.clip.y2); y++ {
		for x := max(x1, b.clip.x1); x <= min(x2, b.clip.x2); x++ {
			cl := b.at(x, y)
			cl.dots &^= 1 << brailleBits[x%dotsX][y%dotsY]
			cl.text = 0
		}
	}
}

func (b *Braille) HLine(x1, y, x2 int, c render.Color) {
	x1, x2 = order(x1, x2)
	for x := max(x1, b.clip.x1); x <= min(x2, b.clip.x2); x++ {
		b.set(x, y, c)
	}
}

func (b *Braille) VLine(x, y1, y2 int, c render.Color) {
	y1, y2 = order(y1, y2)
	for y := max(y1, b.clip.y1); y <= min(y2, b.clip.y2); y++ {
		b.set(x, y, c)
	}
}

// Text writes s into the cells starting at the cell holding pixel (x, y).
func (b *Braille) Text(x, y int, s string, c render.Color) {
	col, row := x/dotsX, y/dotsY
	if y < b.clip.y1 || y > b.clip.y2 {
		return
	}
	for _, r := range s {
		px := col * dotsX
		if col >= 0 && col < b.cols && px >= b.clip.x1 && px <= b.clip.x2 {
			cl := &b.cells[row*b.cols+col]
			cl.text = r
			cl.color = c
		}
		col++
	}
}

// Present serializes the back buffer and publishes it as the current frame.
func (b *Braille) Present() error {
	var sb strings.Builder
	sb.Grow(b.cols * b.rows * 4)
	color := newANSIState(b.profile)

	for row := 0; row < b.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < b.cols; col++ {
			cl := b.cells[row*b.cols+col]
			switch {
			case cl.text != 0:
				color.set(&sb, paletteRGB(cl.color))
				sb.WriteRune(cl.text)
			case cl.dots != 0:
				color.set(&sb, paletteRGB(cl.color))
				sb.WriteRune(rune(0x2800 + int(cl.dots)))
			default:
				sb.WriteByte(' ')
			}
		}
		color.reset(&sb)
	}

	b.front = sb.String()
	return nil
}

// String returns the last presented frame.
func (b *Braille) String() string { return b.front }

// clipTo orders r and intersects it with a w x h surface.
func clipTo(r rect, w, h int) rect {
	r.x1, r.x2 = order(r.x1, r.x2)
	r.y1, r.y2 = order(r.y1, r.y2)
	return rect{
		x1: max(r.x1, 0),
		y1: max(r.y1, 0),
		x2: min(r.x2, w-1),
		y2: min(r.y2, h-1),
	}
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
