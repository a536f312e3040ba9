package libgaroon

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWindowDays is the number of days listed when EventQuery.Days is not set
	DefaultWindowDays = 7

	// TargetTypeUser scopes a query to a user's schedule
	TargetTypeUser = "user"

	// TargetTypeOrganization scopes a query to an organization's schedule
	TargetTypeOrganization = "organization"
)

// EventFields is the projection requested from the events endpoint.
// Changing it changes what MapEvent can rely on.
var EventFields = []string{
	"id",
	"creator",
	"createdAt",
	"updater",
	"updatedAt",
	"eventType",
	"eventMenu",
	"subject",
	"notes",
	"visibilityType",
	"isAllDay",
	"isStartOnly",
	"attendees",
	"facilities",
	"start",
	"end",
	"repeatInfo",
}

// EventQuery selects a window of events
type EventQuery struct {
	// Start is truncated to midnight in its own location
	Start time.Time
	// Days is the window length; zero or negative means DefaultWindowDays
	Days int

	// User takes precedence over Organization when both are set
	User         string
	Organization string

	Limit  int
	Offset int
}

// Target returns the target and target type the query is scoped to.
// Both are empty when the query is for the authenticated user.
func (q EventQuery) Target() (target, targetType string) {
	if user := strings.TrimSpace(q.User); user != "" {
		return user, TargetTypeUser
	}
	if org := strings.TrimSpace(q.Organization); org != "" {
		return org, TargetTypeOrganization
	}
	return "", ""
}

// Window returns the [rangeStart, rangeEnd) of the query
func (q EventQuery) Window() (time.Time, time.Time) {
	days := q.Days
	if days <= 0 {
		days = DefaultWindowDays
	}
	start := q.Start
	if start.IsZero() {
		start = time.Now()
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	return start, start.AddDate(0, 0, days)
}

// BuildListParams builds the query string for GET /schedule/events
func BuildListParams(q EventQuery) url.Values {
	limit := q.Limit
	if limit <= 0 {
		limit = PageSize
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("fields", strings.Join(EventFields, ","))
	params.Set("orderBy", "start asc")

	rangeStart, rangeEnd := q.Window()
	params.Set("rangeStart", rangeStart.Format(time.RFC3339))
	params.Set("rangeEnd", rangeEnd.Format(time.RFC3339))

	if target, targetType := q.Target(); target != "" {
		params.Set("target", target)
		params.Set("targetType", targetType)
	}

	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}

	return params
}
