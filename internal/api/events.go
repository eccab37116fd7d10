package api

import (
	"context"
	"net/http"

	"github.com/marqueehq/marquee/internal/types"
)

// Events fetches the full event listing.
func (c *Client) Events(ctx context.Context) ([]types.Event, error) {
	var events []types.Event
	if err := c.doJSON(ctx, http.MethodGet, "/events", nil, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// EventByID fetches a single event. The endpoint is public; no token is
// required.
func (c *Client) EventByID(ctx context.Context, id string) (types.Event, error) {
	var event types.Event
	if err := c.doJSON(ctx, http.MethodGet, "/events/"+id, nil, nil, &event); err != nil {
		return types.Event{}, err
	}
	return event, nil
}
