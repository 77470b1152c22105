package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/olivier-w/wavview/internal/render"
)

// Image is a pixel surface backed by an RGBA image, used for PNG snapshots.
type Image struct {
	img  *image.RGBA
	clip image.Rectangle
	face *basicfont.Face
}

// NewImage returns a w x h image surface.
func NewImage(w, h int) *Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &Image{img: img, clip: img.Bounds(), face: basicfont.Face7x13}
}

// RGBA exposes the drawn image.
func (s *Image) RGBA() *image.RGBA { return s.img }

func (s *Image) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Image) Font() render.FontMetrics {
	return render.FontMetrics{Width: s.face.Advance, Height: s.face.Height}
}

func rgba(c render.Color) color.RGBA {
	p := paletteRGB(c)
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 255}
}

func (s *Image) SetClip(x1, y1, x2, y2 int) {
	x1, x2 = order(x1, x2)
	y1, y2 = order(y1, y2)
	s.clip = image.Rect(x1, y1, x2+1, y2+1).Intersect(s.img.Bounds())
}

func (s *Image) ResetClip() { s.clip = s.img.Bounds() }

func (s *Image) FillRect(x1, y1, x2, y2 int, c render.Color) {
	x1, x2 = order(x1, x2)
	y1, y2 = order(y1, y2)
	r := image.Rect(x1, y1, x2+1, y2+1).Intersect(s.clip)
	draw.Draw(s.img, r, &image.Uniform{C: rgba(c)}, image.Point{}, draw.Src)
}

func (s *Image) HLine(x1, y, x2 int, c render.Color) {
	s.FillRect(x1, y, x2, y, c)
}

func (s *Image) VLine(x, y1, y2 int, c render.Color) {
	s.FillRect(x, y1, x, y2, c)
}

// Text draws s with its top-left corner at (x, y).
func (s *Image) Text(x, y int, str string, c render.Color) {
	dst, ok := s.img.SubImage(s.clip).(*image.RGBA)
	if !ok {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(rgba(c)),
		Face: s.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y + s.face.Ascent)},
	}
	d.DrawString(str)
}

// Present is a no-op: the image is only read after a frame completes.
func (s *Image) Present() error { return nil }

// WritePNG encodes the current image.
func (s *Image) WritePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}
