package ui

import (
	"strings"
	"time"

	"MyJournal/internal/config"
	"MyJournal/internal/sketch"
	"MyJournal/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

// entryForm is the new-entry dialog. The draft follows the widgets and
// collects pad snapshots as the handwriting attachment.
type entryForm struct {
	draft *state.Draft
	pad   *sketch.Pad

	title    *widget.Entry
	content  *widget.Entry
	mood     *widget.Select
	location *widget.Entry
	tagInput *widget.Entry
	tags     *fyne.Container
	board    *SketchWidget
}

func newEntryForm(pad *sketch.Pad) *entryForm {
	f := &entryForm{draft: state.NewDraft(), pad: pad}
	pad.OnChange = f.draft.SetHandwriting

	f.title = widget.NewEntry()
	f.title.SetPlaceHolder("Give your entry a title...")
	f.title.OnChanged = func(s string) { f.draft.Title = s }

	f.content = widget.NewMultiLineEntry()
	f.content.SetPlaceHolder("Write your thoughts here...")
	f.content.SetMinRowsVisible(8)
	f.content.Wrapping = fyne.TextWrapWord
	f.content.OnChanged = func(s string) { f.draft.Content = s }

	options := make([]string, len(state.Moods))
	for i, m := range state.Moods {
		options[i] = moodOption(m)
	}
	f.mood = widget.NewSelect(options, func(s string) {
		for _, m := range state.Moods {
			if moodOption(m) == s {
				f.draft.Mood = m
			}
		}
	})
	f.mood.SetSelected(moodOption(f.draft.Mood))

	f.location = widget.NewEntry()
	f.location.SetPlaceHolder("Where are you?")
	f.location.OnChanged = func(s string) { f.draft.Location = s }

	f.tags = container.NewHBox()
	f.tagInput = widget.NewEntry()
	f.tagInput.SetPlaceHolder("Add a tag and press Enter")
	f.tagInput.OnSubmitted = func(s string) {
		if f.draft.AddTag(s) {
			f.refreshTags()
		}
		f.tagInput.SetText("")
	}
	return f
}

func moodOption(m state.Mood) string {
	return state.MoodEmoji(m) + " " + string(m)
}

func (f *entryForm) refreshTags() {
	f.tags.RemoveAll()
	for _, tag := range f.draft.Tags {
		f.tags.Add(widget.NewButton("#"+tag+" ✕", func() {
			f.draft.RemoveTag(tag)
			f.refreshTags()
		}))
	}
}

func (f *entryForm) layout(cfg config.PadConfig) fyne.CanvasObject {
	f.board = NewSketchWidget(f.pad, "")
	handwriting := container.NewBorder(NewToolbar(f.pad, f.board, cfg), nil, nil, nil, f.board)

	text := container.NewBorder(nil, nil, nil, nil, f.content)
	tabs := container.NewAppTabs(
		container.NewTabItem("Text", text),
		container.NewTabItem("Handwriting", handwriting),
	)

	meta := widget.NewForm(
		widget.NewFormItem("Title", f.title),
		widget.NewFormItem("Mood", f.mood),
		widget.NewFormItem("Location", f.location),
		widget.NewFormItem("Tags", container.NewBorder(nil, f.tags, nil, nil, f.tagInput)),
	)
	return container.NewBorder(meta, nil, nil, nil, tabs)
}

// save adds the draft to store.
func (f *entryForm) save(store *state.Store, now time.Time) (state.Entry, error) {
	e, err := f.draft.Build(now)
	if err != nil {
		return state.Entry{}, err
	}
	return store.Add(e)
}

func showNewEntryDialog(w fyne.Window, cfg config.PadConfig, store *state.Store, pad *sketch.Pad, logger *zap.Logger) {
	f := newEntryForm(pad)
	d := dialog.NewCustomConfirm("New Journal Entry", "Save Entry", "Cancel", f.layout(cfg), func(ok bool) {
		pad.OnChange = nil
		if !ok {
			return
		}
		e, err := f.save(store, time.Now())
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		logger.Info("Saved entry",
			zap.String("id", e.ID),
			zap.String("title", e.Title),
			zap.Bool("handwriting", strings.HasPrefix(e.HandwritingData, sketch.SnapshotPrefix)))
	}, w)
	d.Resize(fyne.NewSize(720, 640))
	d.Show()
}
