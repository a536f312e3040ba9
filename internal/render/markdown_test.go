package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/njt/grsched/libgaroon"
)

func fullEvent() *libgaroon.Event {
	ev := newEvent(123, "Weekly sync", span(at(0, 10, 0), at(0, 11, 30)))
	ev.MenuLabel = "Meeting"
	ev.Creator = libgaroon.Entity{ID: 1, Name: "Alice"}
	ev.CreatedAt = "2024-02-20T09:00:00+09:00"
	ev.Updater = libgaroon.Entity{ID: 2, Name: "Bob"}
	ev.UpdatedAt = "2024-02-21T09:00:00+09:00"
	ev.Facilities = []libgaroon.Entity{{Name: "Room A"}, {Name: "Room B"}}
	ev.Attendees = []libgaroon.Entity{{Name: "Alice"}, {Name: "Bob"}}
	ev.Notes = "agenda\n- status"
	return ev
}

func TestMarkdown(t *testing.T) {
	setNoColor(t, true)

	want := strings.Join([]string{
		"# Meeting: Weekly sync",
		"",
		"## Date and time",
		"2024/03/01 10:00 - 11:30",
		"",
		"## Facilities",
		"Room A, Room B",
		"",
		"## Attendees (2 users)",
		"Alice, Bob",
		"",
		"## Notes",
		"agenda",
		"- status",
		"",
		"---",
		"- Registrant: Alice  2024-02-20T09:00:00+09:00",
		"- Updater: Bob  2024-02-21T09:00:00+09:00",
	}, "\n")

	if got := Markdown(fullEvent(), MarkdownOptions{}); got != want {
		t.Errorf("Unexpected markdown:\n%s\nwant:\n%s", got, want)
	}
}

func TestMarkdownOmitsEmptySections(t *testing.T) {
	setNoColor(t, true)

	ev := fullEvent()
	ev.TimeRange = nil
	ev.Facilities = []libgaroon.Entity{}
	ev.Attendees = []libgaroon.Entity{}
	ev.Notes = ""

	got := Markdown(ev, MarkdownOptions{})
	for _, section := range []string{"## Date and time", "## Facilities", "## Attendees", "## Notes"} {
		if strings.Contains(got, section) {
			t.Errorf("Expected %q to be omitted:\n%s", section, got)
		}
	}
	if !strings.HasSuffix(got, "---\n- Registrant: Alice  2024-02-20T09:00:00+09:00\n- Updater: Bob  2024-02-21T09:00:00+09:00") {
		t.Errorf("Expected footer to be kept:\n%s", got)
	}
}

func TestMarkdownAttendeeLimit(t *testing.T) {
	setNoColor(t, true)

	tests := []struct {
		count        int
		wantEllipsis bool
	}{
		{9, false},
		{10, false},
		{11, true},
		{12, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d attendees", tt.count), func(t *testing.T) {
			ev := fullEvent()
			ev.Attendees = nil
			for i := 1; i <= tt.count; i++ {
				ev.Attendees = append(ev.Attendees, libgaroon.Entity{Name: fmt.Sprintf("user%d", i)})
			}

			got := Markdown(ev, MarkdownOptions{})

			if !strings.Contains(got, fmt.Sprintf("## Attendees (%d users)", tt.count)) {
				t.Errorf("Expected the full count in the heading:\n%s", got)
			}
			if strings.Contains(got, "user11") {
				t.Errorf("Expected at most %d names:\n%s", AttendeeDisplayLimit, got)
			}
			if strings.Contains(got, "user10 ...") != tt.wantEllipsis {
				t.Errorf("Expected ellipsis=%v:\n%s", tt.wantEllipsis, got)
			}
		})
	}
}

func TestMarkdownAllDay(t *testing.T) {
	setNoColor(t, true)

	ev := fullEvent()
	ev.IsAllDay = true

	if got := Markdown(ev, MarkdownOptions{}); !strings.Contains(got, "## Date and time\n2024/03/01 - all day\n") {
		t.Errorf("Expected all-day range:\n%s", got)
	}
}

func TestMarkdownHTMLNotes(t *testing.T) {
	setNoColor(t, true)

	ev := fullEvent()
	ev.Notes = "<p><strong>bring</strong> laptop</p>"

	if got := Markdown(ev, MarkdownOptions{ConvertHTMLNotes: true}); !strings.Contains(got, "## Notes\n**bring** laptop") {
		t.Errorf("Expected converted notes:\n%s", got)
	}
	if got := Markdown(ev, MarkdownOptions{}); !strings.Contains(got, "<strong>") {
		t.Errorf("Expected raw notes without conversion:\n%s", got)
	}
}

func TestMarkdownRepeatingTemplate(t *testing.T) {
	setNoColor(t, true)

	ev := fullEvent()
	ev.TimeRange = nil
	ev.EventType = libgaroon.EventTypeRepeating
	ev.Repeat = &libgaroon.RepeatInfo{
		Type:        libgaroon.RepeatEveryWeek,
		DayOfWeek:   "MON",
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-01-31",
		StartTime:   "09:00:00",
		EndTime:     "10:00:00",
		TimeZone:    "Asia/Tokyo",
	}

	now := time.Date(2024, 1, 2, 0, 0, 0, 0, tokyo)
	got := Markdown(ev, MarkdownOptions{Now: now})

	want := "## Repeat\nevery MON, 09:00 - 10:00, 2024/01/01 - 2024/01/31\nnext: 2024/01/08 09:00\n"
	if !strings.Contains(got, want) {
		t.Errorf("Expected repeat section %q:\n%s", want, got)
	}

	if got := Markdown(ev, MarkdownOptions{}); strings.Contains(got, "next:") {
		t.Errorf("Expected no next occurrence without a reference time:\n%s", got)
	}
}

func TestMarkdownHeadingColors(t *testing.T) {
	setNoColor(t, false)

	got := Markdown(fullEvent(), MarkdownOptions{})
	if !strings.Contains(got, "\x1b[36m# Meeting: Weekly sync") {
		t.Errorf("Expected cyan title, got %q", got)
	}
	if !strings.Contains(got, "\x1b[96m## Date and time") {
		t.Errorf("Expected light cyan section headings, got %q", got)
	}
}
