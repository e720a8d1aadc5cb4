package state

import (
	"strings"
	"time"
)

// Display layouts used by the timeline and the entry view.
const (
	LayoutDayHeading = "dddd, MMMM D, YYYY"
	LayoutTime       = "h:mm A"
	LayoutEntryDate  = "dddd, MMMM D, YYYY • h:mm A"
)

var dateTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"dddd", "Monday"},
	{"h:mm", "3:04"},
	{"MM", "01"},
	{"DD", "02"},
	{"D", "2"},
	{"A", "PM"},
}

// FormatDate renders t with a token layout: YYYY, MMMM (month name), MM,
// DD, D, dddd (weekday name), h:mm and A (AM/PM). Everything else is
// copied verbatim.
func FormatDate(t time.Time, layout string) string {
	var b strings.Builder
	for i := 0; i < len(layout); {
		matched := false
		for _, tok := range dateTokens {
			if strings.HasPrefix(layout[i:], tok.token) {
				b.WriteString(t.Format(tok.layout))
				i += len(tok.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(layout[i])
			i++
		}
	}
	return b.String()
}
