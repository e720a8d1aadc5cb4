package sketch

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Point is a position in surface-local or screen coordinates.
type Point struct {
	X, Y float32
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// capSteps is the number of chords used for each half-circle cap.
const capSteps = 16

// segmentMask rasterizes a round-capped segment from a to b of the given
// width, clipped to bounds. It returns the coverage mask and the rectangle
// of bounds it covers; ok is false when nothing lands inside bounds.
func segmentMask(z *vector.Rasterizer, a, b Point, width float32, bounds image.Rectangle) (mask *image.Alpha, r image.Rectangle, ok bool) {
	radius := width / 2
	if radius < 0.5 {
		radius = 0.5
	}
	r = image.Rect(
		int(math.Floor(float64(min(a.X, b.X)-radius)))-1,
		int(math.Floor(float64(min(a.Y, b.Y)-radius)))-1,
		int(math.Ceil(float64(max(a.X, b.X)+radius)))+1,
		int(math.Ceil(float64(max(a.Y, b.Y)+radius)))+1,
	).Intersect(bounds)
	if r.Empty() {
		return nil, r, false
	}

	off := Point{X: float32(r.Min.X), Y: float32(r.Min.Y)}
	a, b = a.Sub(off), b.Sub(off)

	z.Reset(r.Dx(), r.Dy())
	theta := math.Atan2(float64(b.Y-a.Y), float64(b.X-a.X))
	arc(z, b, radius, theta-math.Pi/2, true)
	arc(z, a, radius, theta+math.Pi/2, false)
	z.ClosePath()

	mask = image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, r, true
}

// arc appends a half circle around c starting at angle from.
func arc(z *vector.Rasterizer, c Point, radius float32, from float64, first bool) {
	for i := 0; i <= capSteps; i++ {
		ang := from + math.Pi*float64(i)/capSteps
		x := c.X + radius*float32(math.Cos(ang))
		y := c.Y + radius*float32(math.Sin(ang))
		if first && i == 0 {
			z.MoveTo(x, y)
			continue
		}
		z.LineTo(x, y)
	}
}

// paint composites c through mask onto dst at r using source-over.
func paint(dst *image.NRGBA, r image.Rectangle, mask *image.Alpha, c color.NRGBA) {
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

// erase applies destination-out: every destination pixel keeps
// (1 - coverage) of its alpha. Color channels of pixels that become fully
// transparent are zeroed so the result compares equal to a cleared pixel.
func erase(dst *image.NRGBA, r image.Rectangle, mask *image.Alpha) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cov := uint32(mask.AlphaAt(x-r.Min.X, y-r.Min.Y).A)
			if cov == 0 {
				continue
			}
			i := dst.PixOffset(x, y)
			a := uint32(dst.Pix[i+3]) * (255 - cov) / 255
			if a == 0 {
				dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = 0, 0, 0, 0
				continue
			}
			dst.Pix[i+3] = uint8(a)
		}
	}
}
