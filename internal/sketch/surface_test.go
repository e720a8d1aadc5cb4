package sketch

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	got []string
}

func (r *recorder) save(s string) { r.got = append(r.got, s) }

func newTestSurface(t *testing.T, w, h int) (*Surface, *ToolState, *recorder) {
	t.Helper()
	tools := DefaultToolState()
	s := NewSurface(&tools, nil)
	rec := &recorder{}
	s.OnSave = rec.save
	s.Mount(Point{}, w, h, "")
	require.True(t, s.Mounted())
	return s, &tools, rec
}

func stroke(s *Surface, pts ...Point) {
	s.BeginStroke(pts[0])
	for _, p := range pts[1:] {
		s.ExtendStroke(p)
	}
	s.EndStroke()
}

func alphaAt(img *image.NRGBA, x, y int) uint8 {
	return img.NRGBAAt(x, y).A
}

func assertTransparent(t *testing.T, img *image.NRGBA, r image.Rectangle) {
	t.Helper()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if px := img.NRGBAAt(x, y); px != (color.NRGBA{}) {
				t.Fatalf("pixel (%d,%d) = %v, want transparent", x, y, px)
			}
		}
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s, _, rec := newTestSurface(t, 64, 64)
	stroke(s, Point{5, 5}, Point{40, 40})
	require.Len(t, rec.got, 1)

	s.Clear()
	assertTransparent(t, s.Image(), s.Image().Bounds())
	s.Clear()
	assertTransparent(t, s.Image(), s.Image().Bounds())

	assert.Equal(t, []string{"", ""}, rec.got[1:])
}

func TestNoActiveStrokeIsNoop(t *testing.T) {
	s, _, rec := newTestSurface(t, 64, 64)

	s.ExtendStroke(Point{10, 10})
	s.ExtendStroke(Point{50, 50})
	s.EndStroke()
	s.Leave()

	assert.Empty(t, rec.got)
	assertTransparent(t, s.Image(), s.Image().Bounds())
	assert.False(t, s.Drawing())
}

func TestUnmountedSurfaceIgnoresInput(t *testing.T) {
	tools := DefaultToolState()
	s := NewSurface(&tools, nil)
	rec := &recorder{}
	s.OnSave = rec.save

	s.BeginStroke(Point{1, 1})
	s.ExtendStroke(Point{5, 5})
	s.EndStroke()
	s.Clear()

	assert.False(t, s.Mounted())
	assert.False(t, s.Drawing())
	assert.Nil(t, s.Image())
	assert.Empty(t, rec.got)

	s.Mount(Point{}, 0, 10, "")
	assert.False(t, s.Mounted())

	s.Resize(40, 40)
	assert.False(t, s.Mounted())
	assert.Nil(t, s.Image())
}

func TestEraseIgnoresColor(t *testing.T) {
	s, tools, _ := newTestSurface(t, 80, 40)
	tools.Width = 10
	stroke(s, Point{10, 20}, Point{60, 20})
	require.Equal(t, uint8(255), alphaAt(s.Image(), 35, 20))

	tools.Tool = ToolEraser
	tools.Width = 14
	tools.Color = color.NRGBA{R: 255, A: 255}
	stroke(s, Point{10, 20}, Point{60, 20})

	assertTransparent(t, s.Image(), s.Image().Bounds())
}

func TestEraserOnBlankSurfaceStaysBlank(t *testing.T) {
	s, tools, rec := newTestSurface(t, 40, 40)
	tools.Tool = ToolEraser
	tools.Width = 8
	stroke(s, Point{0, 0}, Point{39, 39})

	assertTransparent(t, s.Image(), s.Image().Bounds())
	require.Len(t, rec.got, 1)
	assert.True(t, strings.HasPrefix(rec.got[0], SnapshotPrefix))
}

func TestResizePreservesContent(t *testing.T) {
	s, tools, _ := newTestSurface(t, 100, 100)
	tools.Width = 6
	stroke(s, Point{10, 10}, Point{90, 90})
	before := s.Image()

	s.Resize(200, 150)
	after := s.Image()
	w, h := s.Size()
	require.Equal(t, 200, w)
	require.Equal(t, 150, h)

	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			require.Equal(t, before.NRGBAAt(x, y), after.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
	assertTransparent(t, after, image.Rect(100, 0, 200, 150))
	assertTransparent(t, after, image.Rect(0, 100, 100, 150))
}

func TestResizeSmallerCrops(t *testing.T) {
	s, tools, _ := newTestSurface(t, 100, 100)
	tools.Width = 4
	stroke(s, Point{10, 10}, Point{90, 10})
	before := s.Image()

	s.Resize(50, 50)
	after := s.Image()
	assert.Equal(t, image.Rect(0, 0, 50, 50), after.Bounds())
	for x := 0; x < 50; x++ {
		assert.Equal(t, before.NRGBAAt(x, 10), after.NRGBAAt(x, 10))
	}
}

func TestResizeDuringStrokeContinuesPath(t *testing.T) {
	s, tools, rec := newTestSurface(t, 100, 100)
	tools.Width = 4

	s.BeginStroke(Point{10, 10})
	s.ExtendStroke(Point{50, 10})
	s.Resize(200, 100)
	require.True(t, s.Drawing())
	s.ExtendStroke(Point{150, 10})
	s.EndStroke()

	img := s.Image()
	assert.Equal(t, uint8(255), alphaAt(img, 30, 10))
	assert.Equal(t, uint8(255), alphaAt(img, 120, 10))
	assert.Len(t, rec.got, 1)
}

func TestSnapshotOnStrokeEndRoundTrips(t *testing.T) {
	s, _, rec := newTestSurface(t, 100, 100)
	stroke(s, Point{5, 5}, Point{50, 50})

	require.Len(t, rec.got, 1)
	first := rec.got[0]
	require.True(t, strings.HasPrefix(first, SnapshotPrefix))
	require.Greater(t, len(first), len(SnapshotPrefix))

	tools := DefaultToolState()
	restored := NewSurface(&tools, nil)
	var got []string
	restored.OnSave = func(s string) { got = append(got, s) }
	restored.Mount(Point{}, 100, 100, first)
	assert.Equal(t, s.Image().Pix, restored.Image().Pix)

	stroke(restored, Point{5, 50}, Point{50, 5})
	require.Len(t, got, 1)

	img, err := DecodeSnapshot(got[0])
	require.NoError(t, err)
	_, _, _, a := img.At(10, 10).RGBA()
	assert.NotZero(t, a, "first stroke survives the restore")
	_, _, _, a = img.At(45, 10).RGBA()
	assert.NotZero(t, a, "second stroke is drawn")
}

func TestMountIgnoresBadInitialSnapshot(t *testing.T) {
	tools := DefaultToolState()
	s := NewSurface(&tools, nil)
	s.Mount(Point{}, 20, 20, "not-a-data-url")

	require.True(t, s.Mounted())
	assertTransparent(t, s.Image(), s.Image().Bounds())
}

func TestToolSwitchOnlyAffectsLaterStrokes(t *testing.T) {
	s, tools, _ := newTestSurface(t, 100, 100)
	tools.Width = 6
	stroke(s, Point{10, 20}, Point{90, 20})
	drawn := s.Image().NRGBAAt(50, 20)
	require.Equal(t, color.NRGBA{A: 255}, drawn)

	tools.Tool = ToolEraser
	stroke(s, Point{10, 70}, Point{90, 70})
	assert.Equal(t, drawn, s.Image().NRGBAAt(50, 20))

	tools.Tool = ToolPen
	tools.Color = color.NRGBA{R: 255, A: 255}
	stroke(s, Point{10, 50}, Point{90, 50})
	img := s.Image()
	assert.Equal(t, drawn, img.NRGBAAt(50, 20))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(50, 50))
}

func TestStrokeUsesSurfaceLocalCoordinates(t *testing.T) {
	tools := DefaultToolState()
	tools.Width = 4
	s := NewSurface(&tools, nil)
	s.Mount(Point{X: 100, Y: 200}, 50, 50, "")

	stroke(s, Point{110, 220}, Point{140, 220})

	img := s.Image()
	assert.Equal(t, uint8(255), alphaAt(img, 25, 20))
	assert.Zero(t, alphaAt(img, 25, 45))
}

func TestCapturedStrokeKeepsOutOfBoundsMoves(t *testing.T) {
	s, tools, rec := newTestSurface(t, 100, 100)
	tools.Width = 4

	s.BeginStroke(Point{80, 50})
	assert.True(t, s.Captured())
	s.ExtendStroke(Point{180, 50})
	s.ExtendStroke(Point{180, 90})
	s.ExtendStroke(Point{80, 90})
	assert.True(t, s.Drawing())
	s.Leave()

	assert.False(t, s.Captured())
	assert.False(t, s.Drawing())
	require.Len(t, rec.got, 1)
	img := s.Image()
	assert.Equal(t, uint8(255), alphaAt(img, 98, 50))
	assert.Equal(t, uint8(255), alphaAt(img, 90, 90))
}

func TestEraseHalfCoverageKeepsHalfAlpha(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	dst.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 200})
	dst.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 200})
	mask := image.NewAlpha(image.Rect(0, 0, 2, 1))
	mask.SetAlpha(0, 0, color.Alpha{A: 255})
	mask.SetAlpha(1, 0, color.Alpha{A: 128})

	erase(dst, dst.Bounds(), mask)

	assert.Equal(t, color.NRGBA{}, dst.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 99}, dst.NRGBAAt(1, 0))
}
