package ui

import (
	"fmt"

	"MyJournal/internal/config"
	"MyJournal/internal/sketch"
	"MyJournal/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

// RunApp opens the journal window and blocks until it is closed. mirrorURL
// is shown in the status bar when the LAN mirror is running.
func RunApp(cfg *config.Config, store *state.Store, pad *sketch.Pad, mirrorURL string, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	myApp := app.New()
	myWindow := myApp.NewWindow(cfg.Window.Title)
	myWindow.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	timeline := NewTimelineView(store)
	detail := container.NewStack(insightsPanel(store))
	timeline.OnSelect = func(e state.Entry) {
		detail.Objects = []fyne.CanvasObject{entryDetail(e)}
		detail.Refresh()
	}

	status := widget.NewLabel(statusText(store, mirrorURL))
	store.OnChange = func(c state.Change) {
		logger.Debug("Journal changed", zap.String("type", string(c.Type)), zap.String("id", c.EntryID))
		fyne.Do(func() {
			timeline.Reload()
			status.SetText(statusText(store, mirrorURL))
			detail.Objects = []fyne.CanvasObject{insightsPanel(store)}
			detail.Refresh()
		})
	}

	search := widget.NewEntry()
	search.SetPlaceHolder("Search entries...")
	search.OnChanged = timeline.Filter

	prompt := widget.NewLabel(promptText(state.RandomPrompt(nil)))
	prompt.Wrapping = fyne.TextWrapWord

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentAddIcon(), func() {
			showNewEntryDialog(myWindow, cfg.Pad, store, pad, logger)
		}),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			prompt.SetText(promptText(state.RandomPrompt(nil)))
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.InfoIcon(), func() {
			detail.Objects = []fyne.CanvasObject{insightsPanel(store)}
			detail.Refresh()
		}),
	)

	left := container.NewBorder(container.NewVBox(toolbar, prompt, search), nil, nil, nil, timeline.Widget())
	split := container.NewHSplit(left, detail)
	split.Offset = 0.4

	myWindow.SetContent(container.NewBorder(nil, status, nil, nil, split))
	myWindow.SetOnClosed(func() { store.OnChange = nil })

	if store.Len() == 0 {
		dialog.ShowInformation("Welcome", "Your journal is empty. Start by creating your first entry.", myWindow)
	}
	myWindow.ShowAndRun()
}

func statusText(store *state.Store, mirrorURL string) string {
	s := fmt.Sprintf("%d entries", store.Len())
	if mirrorURL != "" {
		s += "  ·  Mirror: " + mirrorURL
	}
	return s
}

func promptText(p state.Prompt) string {
	return fmt.Sprintf("Prompt (%s): %s", p.Category, p.Text)
}
