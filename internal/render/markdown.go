package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/njt/grsched/internal/output"
	"github.com/njt/grsched/libgaroon"
)

// AttendeeDisplayLimit is the number of attendee names listed before the rest are elided
const AttendeeDisplayLimit = 10

func h1(text string) string {
	return color.New(color.FgCyan).Sprint(text)
}

func h2(text string) string {
	return color.New(color.FgHiCyan).Sprint(text)
}

// MarkdownOptions tunes the markdown event view
type MarkdownOptions struct {
	// ConvertHTMLNotes turns rich text notes into markdown
	ConvertHTMLNotes bool

	// Now is the reference for the next occurrence of repeating events.
	// The occurrence line is omitted when Now is zero.
	Now time.Time
}

// Markdown renders an event as a markdown document. Sections without content
// are left out; the registrant/updater footer is always present.
func Markdown(ev *libgaroon.Event, opts MarkdownOptions) string {
	lines := []string{
		h1("# " + ev.DisplaySubject()),
		"",
	}

	if tr := ev.TimeRange; tr != nil {
		if ev.IsAllDay {
			tr = tr.AllDay()
		}
		lines = append(lines, h2("## Date and time"), tr.String(), "")
	}

	if ev.Repeat != nil {
		lines = append(lines, h2("## Repeat"), ev.Repeat.Describe())
		if next, ok := nextOccurrence(ev, opts.Now); ok {
			lines = append(lines, "next: "+next)
		}
		lines = append(lines, "")
	}

	if len(ev.Facilities) > 0 {
		names := make([]string, 0, len(ev.Facilities))
		for _, f := range ev.Facilities {
			names = append(names, f.Name)
		}
		lines = append(lines, h2("## Facilities"), strings.Join(names, ", "), "")
	}

	if len(ev.Attendees) > 0 {
		lines = append(lines,
			h2(fmt.Sprintf("## Attendees (%d users)", len(ev.Attendees))),
			attendeesBlock(ev.Attendees),
			"",
		)
	}

	if ev.Notes != "" {
		notes := ev.Notes
		if opts.ConvertHTMLNotes {
			notes = output.NotesToMarkdown(notes)
		}
		lines = append(lines, h2("## Notes"), notes)
	}

	lines = append(lines,
		"",
		"---",
		fmt.Sprintf("- Registrant: %s  %s", ev.Creator.Name, ev.CreatedAt),
		fmt.Sprintf("- Updater: %s  %s", ev.Updater.Name, ev.UpdatedAt),
	)

	return strings.Join(lines, "\n")
}

func attendeesBlock(attendees []libgaroon.Entity) string {
	shown := attendees
	if len(shown) > AttendeeDisplayLimit {
		shown = shown[:AttendeeDisplayLimit]
	}

	names := make([]string, 0, len(shown))
	for _, a := range shown {
		names = append(names, a.Name)
	}

	block := strings.Join(names, ", ")
	if len(attendees) > AttendeeDisplayLimit {
		block += " ..."
	}
	return block
}

func nextOccurrence(ev *libgaroon.Event, now time.Time) (string, bool) {
	if now.IsZero() {
		return "", false
	}

	next, ok, err := ev.Repeat.NextOccurrence(now)
	if err != nil || !ok {
		return "", false
	}

	if ev.Location != nil {
		next = next.In(ev.Location)
	}
	if ev.Repeat.IsAllDay {
		return next.Format(libgaroon.DateLayout), true
	}
	return next.Format(libgaroon.DateTimeLayout), true
}
