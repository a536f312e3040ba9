package libgaroon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// FetchEvent retrieves a single event by id
func (c *Client) FetchEvent(ctx context.Context, id string) (*Event, error) {
	if id == "" {
		return nil, fmt.Errorf("event ID is required")
	}

	data, err := c.Get(ctx, "/schedule/events/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	event, err := MapEvent(data)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", id, err)
	}

	return event, nil
}

// FetchEventsPage retrieves one page of the query window starting at offset
func (c *Client) FetchEventsPage(ctx context.Context, q EventQuery, offset, limit int) (Page[*Event], error) {
	q.Offset = offset
	q.Limit = limit

	data, err := c.Get(ctx, "/schedule/events", BuildListParams(q))
	if err != nil {
		return Page[*Event]{}, err
	}

	var list EventList
	if err := json.Unmarshal(data, &list); err != nil {
		return Page[*Event]{}, fmt.Errorf("failed to unmarshal events: %w", err)
	}

	events := make([]*Event, 0, len(list.Events))
	for i, raw := range list.Events {
		event, err := MapEvent(raw)
		if err != nil {
			return Page[*Event]{}, fmt.Errorf("event #%d: %w", offset+i, err)
		}
		events = append(events, event)
	}

	return Page[*Event]{Items: events, HasNext: list.HasNext}, nil
}

// FetchEventWindow retrieves the first page of events in the query window.
// moreAvailable reports whether the server holds further events in the window.
func (c *Client) FetchEventWindow(ctx context.Context, q EventQuery) (events []*Event, moreAvailable bool, err error) {
	limit := q.Limit
	if limit <= 0 {
		limit = PageSize
	}

	page, err := c.FetchEventsPage(ctx, q, q.Offset, limit)
	if err != nil {
		return nil, false, err
	}

	return page.Items, page.HasNext, nil
}

// FetchAllEvents pages through every event in the query window
func (c *Client) FetchAllEvents(ctx context.Context, q EventQuery) ([]*Event, error) {
	fetch := func(ctx context.Context, offset, limit int) (Page[*Event], error) {
		return c.FetchEventsPage(ctx, q, offset, limit)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = PageSize
	}

	events, err := FetchAll(ctx, fetch, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}
