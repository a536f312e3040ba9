package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/njt/grsched/libgaroon"
)

// ProductID identifies grsched in exported calendars
const ProductID = "-//grsched//Garoon schedule export//EN"

// Calendar converts events to an iCalendar object. Events without a concrete
// time range (repeating templates) are left out. UIDs are scoped by host,
// the Garoon server the events came from.
func Calendar(events []*libgaroon.Event, host string, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	for _, ev := range events {
		if ev == nil || ev.TimeRange == nil {
			continue
		}
		cal.Children = append(cal.Children, eventComponent(ev, host, now))
	}

	return cal
}

func eventComponent(ev *libgaroon.Event, host string, now time.Time) *ical.Component {
	vevent := ical.NewComponent(ical.CompEvent)

	vevent.Props.SetText(ical.PropUID, fmt.Sprintf("%s@%s", ev.ID, host))
	vevent.Props.SetText(ical.PropSummary, ev.DisplaySubject())
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())

	if ev.Notes != "" {
		vevent.Props.SetText(ical.PropDescription, ev.Notes)
	}

	if len(ev.Facilities) > 0 {
		names := make([]string, 0, len(ev.Facilities))
		for _, f := range ev.Facilities {
			names = append(names, f.Name)
		}
		vevent.Props.SetText(ical.PropLocation, strings.Join(names, ", "))
	}

	tr := ev.TimeRange
	if ev.IsAllDay {
		start := tr.Start
		end := tr.End.In(start.Location())
		startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		// DTEND is exclusive for dates.
		endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

		dtstart := ical.NewProp(ical.PropDateTimeStart)
		dtstart.SetDate(startDay)
		vevent.Props.Set(dtstart)

		dtend := ical.NewProp(ical.PropDateTimeEnd)
		dtend.SetDate(endDay)
		vevent.Props.Set(dtend)
	} else {
		vevent.Props.SetDateTime(ical.PropDateTimeStart, tr.Start.UTC())
		vevent.Props.SetDateTime(ical.PropDateTimeEnd, tr.End.UTC())
	}

	if t, err := time.Parse(time.RFC3339, ev.CreatedAt); err == nil {
		vevent.Props.SetDateTime(ical.PropCreated, t.UTC())
	}
	if t, err := time.Parse(time.RFC3339, ev.UpdatedAt); err == nil {
		vevent.Props.SetDateTime(ical.PropLastModified, t.UTC())
	}

	return vevent
}

// WriteICS encodes events as an iCalendar stream
func WriteICS(w io.Writer, events []*libgaroon.Event, host string, now time.Time) error {
	cal := Calendar(events, host, now)
	if len(cal.Children) == 0 {
		return fmt.Errorf("no timed events to export")
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode iCalendar: %w", err)
	}
	return nil
}
