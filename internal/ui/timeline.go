package ui

import (
	"fmt"
	"strings"

	"MyJournal/internal/sketch"
	"MyJournal/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// timelineRow is either a day heading or an entry.
type timelineRow struct {
	heading string
	entry   *state.Entry
}

func buildRows(days []state.Day) []timelineRow {
	var rows []timelineRow
	for _, d := range days {
		rows = append(rows, timelineRow{heading: state.FormatDate(d.Date, state.LayoutDayHeading)})
		for i := range d.Entries {
			rows = append(rows, timelineRow{entry: &d.Entries[i]})
		}
	}
	return rows
}

func (r timelineRow) text() string {
	if r.entry == nil {
		return r.heading
	}
	e := r.entry
	line := fmt.Sprintf("%s  %s  %s", state.FormatDate(e.Date.Local(), state.LayoutTime), state.MoodEmoji(e.Mood), e.Title)
	if e.HandwritingData != "" {
		line += "  ✎"
	}
	return line
}

// TimelineView lists the journal grouped by day.
type TimelineView struct {
	store    *state.Store
	query    string
	rows     []timelineRow
	list     *widget.List
	OnSelect func(state.Entry)
}

func NewTimelineView(store *state.Store) *TimelineView {
	v := &TimelineView{store: store}
	v.list = widget.NewList(
		func() int { return len(v.rows) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			row := v.rows[id]
			label.TextStyle = fyne.TextStyle{Bold: row.entry == nil}
			label.SetText(row.text())
		},
	)
	v.list.OnSelected = func(id widget.ListItemID) {
		defer v.list.Unselect(id)
		if row := v.rows[id]; row.entry != nil && v.OnSelect != nil {
			v.OnSelect(*row.entry)
		}
	}
	v.Reload()
	return v
}

// Filter shows only entries matching query.
func (v *TimelineView) Filter(query string) {
	v.query = query
	v.Reload()
}

// Reload rebuilds the rows from the store.
func (v *TimelineView) Reload() {
	v.rows = buildRows(state.Timeline(v.store.Search(v.query)))
	v.list.Refresh()
}

// Widget returns the list to place in a layout.
func (v *TimelineView) Widget() fyne.CanvasObject { return v.list }

// Len reports the number of visible rows, headings included.
func (v *TimelineView) Len() int { return len(v.rows) }

func entryDetail(e state.Entry) fyne.CanvasObject {
	title := widget.NewLabelWithStyle(e.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	date := widget.NewLabel(state.FormatDate(e.Date.Local(), state.LayoutEntryDate))

	swatch := canvas.NewCircle(state.MoodColor(e.Mood))
	swatch.Resize(fyne.NewSize(12, 12))
	mood := container.NewHBox(
		container.NewGridWrap(fyne.NewSize(12, 12), swatch),
		widget.NewLabel(fmt.Sprintf("%s %s", state.MoodEmoji(e.Mood), e.Mood)),
	)

	items := []fyne.CanvasObject{title, date, mood}
	if e.Location != "" {
		items = append(items, widget.NewLabel("📍 "+e.Location))
	}
	if e.Activity != nil {
		items = append(items, widget.NewLabel(fmt.Sprintf("%s %s, %d min", e.Activity.Icon, e.Activity.Type, e.Activity.Duration)))
	}
	if e.Music != nil {
		items = append(items, widget.NewLabel(fmt.Sprintf("%s %s - %s", e.Music.Icon, e.Music.Track, e.Music.Artist)))
	}
	if len(e.Tags) > 0 {
		items = append(items, widget.NewLabel("#"+strings.Join(e.Tags, "  #")))
	}

	content := widget.NewLabel(e.Content)
	content.Wrapping = fyne.TextWrapWord
	items = append(items, content)

	if e.HandwritingData != "" {
		if img, err := sketch.DecodeSnapshot(e.HandwritingData); err == nil {
			hw := canvas.NewImageFromImage(img)
			hw.FillMode = canvas.ImageFillContain
			hw.SetMinSize(fyne.NewSize(320, 240))
			items = append(items, widget.NewLabel("Handwriting"), hw)
		}
	}
	return container.NewVScroll(container.NewVBox(items...))
}

func insightsPanel(store *state.Store) fyne.CanvasObject {
	in := state.Analyze(state.MoodDataFrom(store.List()))
	items := []fyne.CanvasObject{
		widget.NewLabelWithStyle("Mood Insights", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(fmt.Sprintf("Average mood: %.1f/5", in.Average)),
	}
	if in.MostCommon != "" {
		items = append(items, widget.NewLabel(fmt.Sprintf("Most common: %s %s", state.MoodEmoji(in.MostCommon), in.MostCommon)))
	}
	for i, v := range in.Weekday {
		items = append(items, widget.NewLabel(fmt.Sprintf("%s %s", state.WeekdayLabels[i], strings.Repeat("▇", int(v+0.5)))))
	}
	items = append(items, widget.NewSeparator())
	for _, note := range in.Notes {
		l := widget.NewLabel(note)
		l.Wrapping = fyne.TextWrapWord
		items = append(items, l)
	}
	return container.NewVScroll(container.NewVBox(items...))
}
