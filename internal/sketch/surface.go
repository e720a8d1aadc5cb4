// Package sketch implements the handwriting surface of a journal entry: a
// bitmap that turns pointer gestures into strokes and reports PNG
// snapshots of itself to its host.
package sketch

import (
	"image"
	"image/draw"

	"go.uber.org/zap"
	"golang.org/x/image/vector"
)

// Surface owns the bitmap. It is driven from a single UI goroutine and is
// not safe for concurrent use; the host only ever sees snapshot strings.
//
// Every precondition failure (not mounted, no active stroke) is silently
// ignored: pointer handlers cannot do anything useful with an error in the
// middle of a gesture.
type Surface struct {
	tools  *ToolState
	logger *zap.Logger

	// OnSave receives a PNG data URL after each completed stroke, or ""
	// after Clear.
	OnSave func(snapshot string)

	bitmap   *image.NRGBA
	origin   Point
	z        *vector.Rasterizer
	drawing  bool
	captured bool
	last     Point
}

// NewSurface returns an unmounted surface reading its tool configuration
// from tools.
func NewSurface(tools *ToolState, logger *zap.Logger) *Surface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Surface{
		tools:  tools,
		logger: logger,
		z:      vector.NewRasterizer(1, 1),
	}
}

// Mount sizes the bitmap to the container and places its top-left corner at
// origin in screen space. A non-empty initial snapshot is drawn at the
// origin before any input is accepted; an undecodable one is logged and
// the surface starts blank. Zero or negative sizes leave it unmounted.
func (s *Surface) Mount(origin Point, width, height int, initial string) {
	if width <= 0 || height <= 0 {
		return
	}
	s.origin = origin
	s.bitmap = image.NewNRGBA(image.Rect(0, 0, width, height))
	s.drawing, s.captured = false, false
	if initial == "" {
		return
	}
	img, err := DecodeSnapshot(initial)
	if err != nil {
		s.logger.Warn("Ignoring initial snapshot", zap.Error(err))
		return
	}
	copyPixels(s.bitmap, img)
}

// Mounted reports whether the surface has a bitmap to draw on.
func (s *Surface) Mounted() bool { return s.bitmap != nil }

// SetOrigin records a new on-screen offset for the surface.
func (s *Surface) SetOrigin(origin Point) { s.origin = origin }

// Size returns the bitmap dimensions, zero when unmounted.
func (s *Surface) Size() (width, height int) {
	if s.bitmap == nil {
		return 0, 0
	}
	b := s.bitmap.Bounds()
	return b.Dx(), b.Dy()
}

// Drawing reports whether a stroke is active.
func (s *Surface) Drawing() bool { return s.drawing }

// Captured reports whether the surface holds pointer capture. While it
// does, move events outside its bounds still belong to the active stroke.
func (s *Surface) Captured() bool { return s.captured }

// BeginStroke starts a path at p, given in screen coordinates.
func (s *Surface) BeginStroke(p Point) {
	if s.bitmap == nil {
		return
	}
	s.last = p.Sub(s.origin)
	s.drawing = true
	s.captured = true
}

// ExtendStroke draws a segment from the previous point to p with the
// current tool.
func (s *Surface) ExtendStroke(p Point) {
	if !s.drawing || s.bitmap == nil {
		return
	}
	next := p.Sub(s.origin)
	tools := s.tools
	if tools == nil {
		def := DefaultToolState()
		tools = &def
	}
	mask, r, ok := segmentMask(s.z, s.last, next, tools.Width, s.bitmap.Bounds())
	s.last = next
	if !ok {
		return
	}
	if tools.Tool == ToolEraser {
		erase(s.bitmap, r, mask)
		return
	}
	paint(s.bitmap, r, mask, tools.Color)
}

// EndStroke finishes the active stroke, releases capture and emits the
// snapshot.
func (s *Surface) EndStroke() {
	if !s.drawing || s.bitmap == nil {
		return
	}
	s.drawing = false
	s.captured = false
	snapshot, err := EncodeSnapshot(s.bitmap)
	if err != nil {
		s.logger.Error("Failed to encode snapshot", zap.Error(err))
		return
	}
	s.emit(snapshot)
}

// Leave handles the pointer leaving the surface, which ends the stroke
// exactly like pointer up.
func (s *Surface) Leave() { s.EndStroke() }

// Clear empties the bitmap and emits "" meaning the attachment is removed.
func (s *Surface) Clear() {
	if s.bitmap == nil {
		return
	}
	clear(s.bitmap.Pix)
	s.emit("")
}

// Resize reallocates the bitmap at the new size, copying the old pixels
// top-left aligned without scaling. An active stroke continues from its
// last point. An unmounted surface ignores it.
func (s *Surface) Resize(width, height int) {
	if s.bitmap == nil || width <= 0 || height <= 0 {
		return
	}
	if w, h := s.Size(); w == width && h == height {
		return
	}
	next := image.NewNRGBA(image.Rect(0, 0, width, height))
	copyPixels(next, s.bitmap)
	s.bitmap = next
}

// Image returns a copy of the bitmap, nil when unmounted.
func (s *Surface) Image() *image.NRGBA {
	if s.bitmap == nil {
		return nil
	}
	img := image.NewNRGBA(s.bitmap.Bounds())
	copy(img.Pix, s.bitmap.Pix)
	return img
}

// copyPixels writes src into dst top-left aligned. NRGBA sources are copied
// byte for byte so partially transparent colors keep their exact values.
func copyPixels(dst *image.NRGBA, src image.Image) {
	n, ok := src.(*image.NRGBA)
	if !ok {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return
	}
	r := dst.Bounds().Intersect(n.Bounds().Sub(n.Bounds().Min))
	if r.Empty() {
		return
	}
	rowLen := r.Dx() * 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		si := n.PixOffset(n.Bounds().Min.X+r.Min.X, n.Bounds().Min.Y+y)
		copy(dst.Pix[di:di+rowLen], n.Pix[si:si+rowLen])
	}
}

func (s *Surface) emit(snapshot string) {
	if s.OnSave != nil {
		s.OnSave(snapshot)
	}
}
