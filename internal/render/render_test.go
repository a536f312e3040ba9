package render

import (
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/njt/grsched/libgaroon"
)

var tokyo = mustLoad("Asia/Tokyo")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// at returns 2024-03-01 hh:mm in Tokyo, offset by days
func at(days, hh, mm int) time.Time {
	return time.Date(2024, 3, 1+days, hh, mm, 0, 0, tokyo)
}

func span(start, end time.Time) *libgaroon.TimeRange {
	return &libgaroon.TimeRange{
		Start:       start,
		End:         end,
		StartFormat: libgaroon.DateTimeLayout,
		EndFormat:   libgaroon.TimeLayout,
	}
}

func newEvent(id libgaroon.ID, subject string, tr *libgaroon.TimeRange) *libgaroon.Event {
	return &libgaroon.Event{
		ID:         id,
		Subject:    subject,
		EventType:  libgaroon.EventTypeRegular,
		Attendees:  []libgaroon.Entity{},
		Facilities: []libgaroon.Entity{},
		TimeRange:  tr,
		TimeZone:   "Asia/Tokyo",
		Location:   tokyo,
	}
}

// setNoColor forces color output on or off for the duration of a test
func setNoColor(t *testing.T, noColor bool) {
	t.Helper()
	t.Setenv("NO_COLOR", "")
	prev := color.NoColor
	color.NoColor = noColor
	t.Cleanup(func() { color.NoColor = prev })
}
