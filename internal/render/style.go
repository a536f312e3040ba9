// Package render turns mapped Garoon records into terminal output: styled
// event tables, directory listings, markdown event views and iCalendar files.
//
// Every render pass takes a single "now" so that all rows of one table are
// classified against the same instant.
package render

import (
	"time"

	"github.com/fatih/color"
	"github.com/njt/grsched/internal/dateparse"
	"github.com/njt/grsched/libgaroon"
)

// RGB is a 24-bit terminal color
type RGB struct {
	R, G, B uint8
}

var (
	// Gray is the foreground of events that have already ended
	Gray = RGB{0x8f, 0x8f, 0x8f}

	// DarkRed is the background of events in progress
	DarkRed = RGB{0x8b, 0x00, 0x00}

	// DarkYellow is the background of events ending later today
	DarkYellow = RGB{0x55, 0x49, 0x13}

	// AltRowShade is the background of every other row in directory listings
	AltRowShade = RGB{0x26, 0x26, 0x26}
)

// Bucket is the background class of an event row. Buckets are exclusive.
type Bucket int

const (
	BucketNone Bucket = iota
	BucketOngoing
	BucketEndingToday
)

func (b Bucket) String() string {
	switch b {
	case BucketOngoing:
		return "ongoing"
	case BucketEndingToday:
		return "ending today"
	default:
		return "none"
	}
}

// Style is the styling decision for one event row. Ended is independent of
// Bucket and only affects the foreground.
type Style struct {
	Bucket Bucket
	Ended  bool
}

// Foreground returns the row text color, if any
func (s Style) Foreground() (RGB, bool) {
	if s.Ended {
		return Gray, true
	}
	return RGB{}, false
}

// Background returns the row background color, if any
func (s Style) Background() (RGB, bool) {
	switch s.Bucket {
	case BucketOngoing:
		return DarkRed, true
	case BucketEndingToday:
		return DarkYellow, true
	}
	return RGB{}, false
}

// IsZero reports whether the row is rendered without styling
func (s Style) IsZero() bool {
	return s == Style{}
}

func (s Style) paint() paint {
	var p paint
	if fg, ok := s.Foreground(); ok {
		p.fg = &fg
	}
	if bg, ok := s.Background(); ok {
		p.bg = &bg
	}
	return p
}

// ReferenceTime expresses now in the time zone of the first event so "ending
// today" follows the schedule's calendar rather than the terminal's.
func ReferenceTime(events []*libgaroon.Event, now time.Time) time.Time {
	if len(events) == 0 || events[0] == nil || events[0].Location == nil {
		return now
	}
	return now.In(events[0].Location)
}

// Classify buckets a time range against now:
// ongoing when start <= now < end, otherwise ending today when the end falls
// on now's calendar date. Ended (end < now) is reported on top of either.
// A nil range is never styled.
func Classify(tr *libgaroon.TimeRange, now time.Time) Style {
	if tr == nil {
		return Style{}
	}

	var s Style
	switch {
	case tr.Contains(now):
		s.Bucket = BucketOngoing
	case dateparse.SameDay(tr.End, now):
		s.Bucket = BucketEndingToday
	}
	s.Ended = tr.End.Before(now)

	return s
}

// paint applies optional colors to text
type paint struct {
	fg, bg *RGB
}

func (p paint) apply(text string) string {
	if p.fg == nil && p.bg == nil {
		return text
	}

	c := color.New()
	if p.fg != nil {
		c.AddRGB(int(p.fg.R), int(p.fg.G), int(p.fg.B))
	}
	if p.bg != nil {
		c.AddBgRGB(int(p.bg.R), int(p.bg.G), int(p.bg.B))
	}
	return c.Sprint(text)
}

// separator paints the gap between cells; only the background carries over.
func (p paint) separator(text string) string {
	return paint{bg: p.bg}.apply(text)
}
