package libgaroon

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // Garoon sends IANA zone names; do not depend on the host zoneinfo
)

const (
	// EventTypeRegular is a one-off event
	EventTypeRegular = "REGULAR"

	// EventTypeRepeating is a recurring event
	EventTypeRepeating = "REPEATING"

	// EventTypeAllDay is a banner-style event spanning whole days
	EventTypeAllDay = "ALL_DAY"

	// Display layouts for time ranges
	DateTimeLayout = "2006/01/02 15:04"
	DateLayout     = "2006/01/02"
	TimeLayout     = "15:04"

	// AllDayMarker replaces the end of an all-day range
	AllDayMarker = "all day"
)

// attendee kinds kept on Event.Attendees
var attendeeTypes = map[string]bool{
	"USER":         true,
	"ORGANIZATION": true,
}

// TimeRange is the concrete [Start, End) span of an event.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	StartFormat string `json:"-"`
	EndFormat   string `json:"-"`
}

// Contains reports whether t falls in [Start, End)
func (tr *TimeRange) Contains(t time.Time) bool {
	return !t.Before(tr.Start) && t.Before(tr.End)
}

// AllDay returns a copy that renders the start as a date and the end as AllDayMarker.
// The timestamps are unchanged.
func (tr *TimeRange) AllDay() *TimeRange {
	cp := *tr
	cp.StartFormat = DateLayout
	cp.EndFormat = AllDayMarker
	return &cp
}

// String renders the range as "start - end" using the display formats
func (tr *TimeRange) String() string {
	startFormat := tr.StartFormat
	if startFormat == "" {
		startFormat = DateTimeLayout
	}

	var end string
	switch tr.EndFormat {
	case AllDayMarker:
		end = AllDayMarker
	case "":
		end = tr.End.Format(TimeLayout)
	default:
		end = tr.End.Format(tr.EndFormat)
	}

	return tr.Start.Format(startFormat) + " - " + end
}

// Event is a schedule entry mapped from the Garoon API
type Event struct {
	ID             ID             `json:"id"`
	Creator        Entity         `json:"creator"`
	CreatedAt      string         `json:"createdAt"`
	Updater        Entity         `json:"updater"`
	UpdatedAt      string         `json:"updatedAt"`
	EventType      string         `json:"eventType"`
	MenuLabel      string         `json:"eventMenu,omitempty"`
	Subject        string         `json:"subject"`
	VisibilityType string         `json:"visibilityType,omitempty"`
	Notes          string         `json:"notes"`
	IsAllDay       bool           `json:"isAllDay"`
	Attendees      []Entity       `json:"attendees"`
	Facilities     []Entity       `json:"facilities"`
	TimeRange      *TimeRange     `json:"timeRange,omitempty"`
	TimeZone       string         `json:"timeZone"`
	Repeat         *RepeatInfo    `json:"repeatInfo,omitempty"`
	Location       *time.Location `json:"-"`
}

// DisplaySubject prefixes the subject with the event menu label when there is one
func (e *Event) DisplaySubject() string {
	if e.MenuLabel != "" {
		return e.MenuLabel + ": " + e.Subject
	}
	return e.Subject
}

type wireDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type wireAttendee struct {
	ID   ID     `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type wireEvent struct {
	ID             *ID             `json:"id"`
	Creator        *Entity         `json:"creator"`
	CreatedAt      *string         `json:"createdAt"`
	Updater        *Entity         `json:"updater"`
	UpdatedAt      *string         `json:"updatedAt"`
	EventType      string          `json:"eventType"`
	EventMenu      string          `json:"eventMenu"`
	Subject        *string         `json:"subject"`
	Notes          *string         `json:"notes"`
	VisibilityType string          `json:"visibilityType"`
	IsAllDay       *bool           `json:"isAllDay"`
	Attendees      *[]wireAttendee `json:"attendees"`
	Facilities     []Entity        `json:"facilities"`
	Start          *wireDateTime   `json:"start"`
	End            *wireDateTime   `json:"end"`
	RepeatInfo     *wireRepeatInfo `json:"repeatInfo"`
}

// EventList is the /schedule/events response before mapping
type EventList struct {
	Events  []json.RawMessage `json:"events"`
	HasNext bool              `json:"hasNext"`
}

// MapEvent decodes a single event payload
func MapEvent(data []byte) (*Event, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &MalformedEventError{Field: typeErr.Field, Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value)}
		}
		return nil, &MalformedEventError{Reason: err.Error()}
	}
	return mapEvent(&w)
}

func mapEvent(w *wireEvent) (*Event, error) {
	switch {
	case w.ID == nil:
		return nil, missingField("id")
	case *w.ID == 0:
		return nil, &MalformedEventError{Field: "id", Reason: "must not be empty"}
	case w.Creator == nil:
		return nil, missingField("creator")
	case w.CreatedAt == nil:
		return nil, missingField("createdAt")
	case w.Updater == nil:
		return nil, missingField("updater")
	case w.UpdatedAt == nil:
		return nil, missingField("updatedAt")
	case w.Subject == nil:
		return nil, missingField("subject")
	case w.Notes == nil:
		return nil, missingField("notes")
	case w.IsAllDay == nil:
		return nil, missingField("isAllDay")
	case w.Attendees == nil:
		return nil, missingField("attendees")
	}

	ev := &Event{
		ID:             *w.ID,
		Creator:        *w.Creator,
		CreatedAt:      *w.CreatedAt,
		Updater:        *w.Updater,
		UpdatedAt:      *w.UpdatedAt,
		EventType:      w.EventType,
		MenuLabel:      w.EventMenu,
		Subject:        *w.Subject,
		VisibilityType: w.VisibilityType,
		Notes:          strings.ReplaceAll(*w.Notes, "\r\n", "\n"),
		IsAllDay:       *w.IsAllDay,
		Attendees:      []Entity{},
		Facilities:     []Entity{},
	}

	for _, a := range *w.Attendees {
		if !attendeeTypes[a.Type] {
			continue
		}
		ev.Attendees = append(ev.Attendees, Entity{ID: a.ID, Name: a.Name, Code: a.Code})
	}

	ev.Facilities = append(ev.Facilities, w.Facilities...)

	if w.RepeatInfo != nil {
		ev.Repeat = w.RepeatInfo.toRepeatInfo()
	}

	switch {
	case w.Start != nil:
		tr, loc, err := mapTimeRange(w.Start, w.End)
		if err != nil {
			return nil, err
		}
		ev.TimeRange = tr
		ev.Location = loc
	case w.EventType == EventTypeRepeating:
		// Template form: no concrete occurrence to show.
		if w.RepeatInfo == nil {
			return nil, missingField("repeatInfo")
		}
		loc, err := loadLocation("repeatInfo.timeZone", w.RepeatInfo.TimeZone)
		if err != nil {
			return nil, err
		}
		ev.IsAllDay = w.RepeatInfo.IsAllDay
		ev.Location = loc
	default:
		return nil, missingField("start")
	}

	ev.TimeZone = ev.Location.String()
	return ev, nil
}

// mapTimeRange builds the whole range or fails; it never returns a partial one.
func mapTimeRange(start, end *wireDateTime) (*TimeRange, *time.Location, error) {
	if end == nil {
		return nil, nil, missingField("end")
	}

	loc, err := loadLocation("start.timeZone", start.TimeZone)
	if err != nil {
		return nil, nil, err
	}

	startAt, err := parseDateTime("start.dateTime", start.DateTime, loc)
	if err != nil {
		return nil, nil, err
	}

	endLoc := loc
	if end.TimeZone != "" && end.TimeZone != start.TimeZone {
		if endLoc, err = loadLocation("end.timeZone", end.TimeZone); err != nil {
			return nil, nil, err
		}
	}
	endAt, err := parseDateTime("end.dateTime", end.DateTime, endLoc)
	if err != nil {
		return nil, nil, err
	}

	if endAt.Before(startAt) {
		return nil, nil, &MalformedEventError{Field: "end.dateTime", Reason: "end precedes start"}
	}

	return &TimeRange{
		Start:       startAt.In(loc),
		End:         endAt.In(loc),
		StartFormat: DateTimeLayout,
		EndFormat:   TimeLayout,
	}, loc, nil
}

func loadLocation(field, name string) (*time.Location, error) {
	if name == "" {
		return nil, missingField(field)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &MalformedEventError{Field: field, Reason: fmt.Sprintf("unknown time zone %q", name)}
	}
	return loc, nil
}

func parseDateTime(field, value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, missingField(field)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, &MalformedEventError{Field: field, Reason: fmt.Sprintf("invalid datetime %q", value)}
}
