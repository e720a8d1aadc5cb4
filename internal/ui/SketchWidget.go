package ui

import (
	"image"
	"image/color"
	"math"

	"MyJournal/internal/sketch"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// SketchWidget shows a pad's surface and feeds it pointer events. The
// first layout pass mounts the surface at the widget's size in device
// pixels; later ones resize it. Pointer positions are scaled the same way.
type SketchWidget struct {
	widget.BaseWidget
	pad      *sketch.Pad
	initial  string
	opened   bool
	dragging bool
	raster   *canvas.Image
}

var _ fyne.Widget = (*SketchWidget)(nil)
var _ fyne.Draggable = (*SketchWidget)(nil)
var _ desktop.Mouseable = (*SketchWidget)(nil)
var _ desktop.Hoverable = (*SketchWidget)(nil)

// NewSketchWidget returns a widget that opens pad with initial, which may
// be "" for a blank page.
func NewSketchWidget(pad *sketch.Pad, initial string) *SketchWidget {
	w := &SketchWidget{
		pad:     pad,
		initial: initial,
		raster:  canvas.NewImageFromImage(image.NewNRGBA(image.Rect(0, 0, 1, 1))),
	}
	w.raster.FillMode = canvas.ImageFillStretch
	w.raster.ScaleMode = canvas.ImageScalePixels
	w.ExtendBaseWidget(w)
	return w
}

func (w *SketchWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.NRGBA{R: 249, G: 250, B: 251, A: 255})
	bg.SetMinSize(fyne.NewSize(300, 300))
	return widget.NewSimpleRenderer(container.NewStack(bg, w.raster))
}

// Resize keeps the bitmap the same size as the widget.
func (w *SketchWidget) Resize(size fyne.Size) {
	w.BaseWidget.Resize(size)
	width, height := deviceSize(size, w.scale())
	if !w.opened {
		w.pad.Open(w.origin(), width, height, w.initial)
		w.opened = w.pad.Surface().Mounted()
	} else {
		w.pad.Surface().Resize(width, height)
	}
	w.redraw()
}

// Clear wipes the drawing and removes the attachment.
func (w *SketchWidget) Clear() {
	w.pad.Clear()
	w.redraw()
}

func (w *SketchWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	s := w.pad.Surface()
	s.SetOrigin(w.origin())
	s.BeginStroke(w.toPoint(e.AbsolutePosition))
	w.dragging = true
}

func (w *SketchWidget) Dragged(e *fyne.DragEvent) {
	w.pad.Surface().ExtendStroke(w.toPoint(e.AbsolutePosition))
	w.redraw()
}

func (w *SketchWidget) DragEnd() {
	w.endStroke()
}

func (w *SketchWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.endStroke()
	}
}

// MouseOut ends the stroke like pointer up, except while dragging: the
// surface holds capture then and the drag keeps routing to it.
func (w *SketchWidget) MouseOut() {
	if w.dragging && w.pad.Surface().Captured() {
		return
	}
	w.pad.Surface().Leave()
}

func (w *SketchWidget) MouseIn(*desktop.MouseEvent)    {}
func (w *SketchWidget) MouseMoved(*desktop.MouseEvent) {}

func (w *SketchWidget) endStroke() {
	w.dragging = false
	w.pad.Surface().EndStroke()
	w.redraw()
}

func (w *SketchWidget) redraw() {
	img := w.pad.Surface().Image()
	if img == nil {
		return
	}
	w.raster.Image = img
	w.raster.Refresh()
}

func (w *SketchWidget) origin() sketch.Point {
	a := fyne.CurrentApp()
	if a == nil {
		return sketch.Point{}
	}
	return w.toPoint(a.Driver().AbsolutePositionForObject(w))
}

// scale is the device pixels per canvas unit, 1 until the widget is shown.
func (w *SketchWidget) scale() float32 {
	a := fyne.CurrentApp()
	if a == nil {
		return 1
	}
	c := a.Driver().CanvasForObject(w)
	if c == nil || c.Scale() <= 0 {
		return 1
	}
	return c.Scale()
}

func (w *SketchWidget) toPoint(p fyne.Position) sketch.Point {
	return devicePoint(p, w.scale())
}

func devicePoint(p fyne.Position, scale float32) sketch.Point {
	return sketch.Point{X: p.X * scale, Y: p.Y * scale}
}

func deviceSize(size fyne.Size, scale float32) (width, height int) {
	return int(math.Round(float64(size.Width * scale))), int(math.Round(float64(size.Height * scale)))
}
