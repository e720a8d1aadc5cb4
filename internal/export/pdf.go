// Package export renders the journal to PDF.
package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"

	"MyJournal/internal/sketch"
	"MyJournal/internal/state"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

const (
	margin     = 15.0
	lineHeight = 6.0
)

// ExportPDF writes one A4 page per entry, newest day first: title, date,
// mood, location, tags, the text and the handwriting sketch when present.
func ExportPDF(w io.Writer, entries []state.Entry, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle("Journal", true)
	p.SetCreator("MyJournal", true)
	p.SetMargins(margin, margin, margin)
	p.SetAutoPageBreak(true, margin)
	tr := p.UnicodeTranslatorFromDescriptor("")

	pageW, _ := p.GetPageSize()
	contentW := pageW - 2*margin

	n := 0
	for _, day := range state.Timeline(entries) {
		for _, e := range day.Entries {
			n++
			p.AddPage()
			writeEntry(p, tr, e, contentW)
			if e.HandwritingData != "" {
				if err := addSketch(p, fmt.Sprintf("sketch-%d", n), e.HandwritingData, contentW); err != nil {
					logger.Warn("Skipping handwriting in export", zap.String("entry", e.ID), zap.Error(err))
				}
			}
		}
	}
	if n == 0 {
		p.AddPage()
		p.SetFont("Helvetica", "I", 12)
		p.CellFormat(contentW, lineHeight, "Your journal is empty.", "", 1, "C", false, 0, "")
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	logger.Info("Exported journal", zap.Int("entries", n))
	return nil
}

// ExportPDFFile writes the PDF to path.
func ExportPDFFile(path string, entries []state.Entry, logger *zap.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ExportPDF(f, entries, logger); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeEntry(p *gofpdf.Fpdf, tr func(string) string, e state.Entry, width float64) {
	p.SetTextColor(17, 24, 39)
	p.SetFont("Helvetica", "B", 18)
	p.MultiCell(width, 8, tr(e.Title), "", "L", false)

	p.SetTextColor(107, 114, 128)
	p.SetFont("Helvetica", "", 10)
	p.CellFormat(width, lineHeight, tr(state.FormatDate(e.Date.Local(), state.LayoutEntryDate)), "", 1, "L", false, 0, "")

	c := state.MoodColor(e.Mood)
	p.SetFillColor(int(c.R), int(c.G), int(c.B))
	x, y := p.GetX(), p.GetY()
	p.Circle(x+1.5, y+lineHeight/2, 1.5, "F")
	p.SetX(x + 5)
	meta := string(e.Mood)
	if e.Location != "" {
		meta += "  |  " + e.Location
	}
	p.CellFormat(width-5, lineHeight, tr(meta), "", 1, "L", false, 0, "")
	if len(e.Tags) > 0 {
		p.CellFormat(width, lineHeight, tr("#"+strings.Join(e.Tags, "  #")), "", 1, "L", false, 0, "")
	}
	if e.Activity != nil {
		p.CellFormat(width, lineHeight, tr(activityLine(e.Activity)), "", 1, "L", false, 0, "")
	}
	if e.Music != nil {
		p.CellFormat(width, lineHeight, tr(fmt.Sprintf("Listening to %s by %s", e.Music.Track, e.Music.Artist)), "", 1, "L", false, 0, "")
	}
	p.Ln(4)

	p.SetTextColor(31, 41, 55)
	p.SetFont("Times", "", 12)
	for _, para := range strings.Split(e.Content, "\n") {
		p.MultiCell(width, lineHeight, tr(para), "", "L", false)
	}
	p.Ln(4)
}

func activityLine(a *state.Activity) string {
	parts := []string{a.Type}
	if a.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%d min", a.Duration))
	}
	if a.Steps > 0 {
		parts = append(parts, fmt.Sprintf("%d steps", a.Steps))
	}
	return strings.Join(parts, ", ")
}

func addSketch(p *gofpdf.Fpdf, name, snapshot string, width float64) error {
	raw, err := sketch.SnapshotBytes(snapshot)
	if err != nil {
		return err
	}
	if _, err := png.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("handwriting is not a PNG: %w", err)
	}
	if !p.Ok() {
		return p.Error()
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	info := p.RegisterImageOptionsReader(name, opts, bytes.NewReader(raw))
	if !p.Ok() {
		// A rejected image is not registered, so the document is still usable.
		err := p.Error()
		p.ClearError()
		return err
	}
	w, h := info.Width(), info.Height()
	if w > width {
		h = h * width / w
		w = width
	}
	p.ImageOptions(name, p.GetX(), p.GetY(), w, h, true, opts, 0, "")
	return p.Error()
}
