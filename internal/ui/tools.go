package ui

import (
	"image/color"

	"MyJournal/internal/config"
	"MyJournal/internal/sketch"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// palette is offered next to the pen; the pad's configured color comes
// first.
var palette = []color.NRGBA{
	{A: 255},
	{R: 239, G: 68, B: 68, A: 255},
	{R: 34, G: 197, B: 94, A: 255},
	{R: 59, G: 130, B: 246, A: 255},
	{R: 234, G: 179, B: 8, A: 255},
	{R: 168, G: 85, B: 247, A: 255},
}

type colorSwatch struct {
	widget.BaseWidget
	Color    color.NRGBA
	OnTapped func(color.NRGBA)
}

func newColorSwatch(c color.NRGBA, tapped func(color.NRGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(24, 24))
	rect.CornerRadius = 12

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1
	border.CornerRadius = 12

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// NewToolbar builds the pen/eraser, color, width and clear controls for a
// sketch widget.
func NewToolbar(pad *sketch.Pad, board *SketchWidget, cfg config.PadConfig) fyne.CanvasObject {
	toolLabel := widget.NewLabel(pad.Tools().Tool.String())
	colorBox := container.NewHBox()

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			pad.SelectPen()
			toolLabel.SetText(pad.Tools().Tool.String())
			colorBox.Show()
		}), // Pen
		widget.NewToolbarAction(theme.ContentClearIcon(), func() {
			pad.SelectEraser()
			toolLabel.SetText(pad.Tools().Tool.String())
			colorBox.Hide()
		}), // Eraser
	)

	onColorTapped := func(c color.NRGBA) {
		pad.SetColor(c)
	}
	colors := palette
	if current := pad.Tools().Color; current != palette[0] {
		colors = append([]color.NRGBA{current}, palette...)
	}
	for _, c := range colors {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}
	if pad.Tools().Tool == sketch.ToolEraser {
		colorBox.Hide()
	}

	minW, maxW := float64(cfg.Sizes[0]), float64(cfg.Sizes[1])
	strokeSlider := widget.NewSlider(minW, maxW)
	strokeSlider.Step = 1
	strokeSlider.SetValue(float64(pad.Tools().Width))
	strokeSlider.OnChanged = func(val float64) {
		pad.SetWidth(float32(val))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	clearBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), board.Clear)

	return container.NewHBox(
		tb,
		toolLabel,
		widget.NewSeparator(),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
		clearBtn,
	)
}
