package render

import (
	"sort"
	"time"

	"github.com/njt/grsched/libgaroon"
)

// NextEvent returns the earliest timed event starting strictly after now.
// All-day events and events without a concrete time range are skipped.
// libgaroon.ErrNoUpcomingEvent is returned when there is none.
func NextEvent(events []*libgaroon.Event, now time.Time) (*libgaroon.Event, error) {
	candidates := make([]*libgaroon.Event, 0, len(events))
	for _, ev := range events {
		if ev == nil || ev.IsAllDay || ev.TimeRange == nil {
			continue
		}
		candidates = append(candidates, ev)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TimeRange.Start.Before(candidates[j].TimeRange.Start)
	})

	for _, ev := range candidates {
		if ev.TimeRange.Start.After(now) {
			return ev, nil
		}
	}

	return nil, libgaroon.ErrNoUpcomingEvent
}
