package api

import (
	"context"
	"net/http"

	"github.com/marqueehq/marquee/internal/types"
)

type saveFavoriteRequest struct {
	EventID string `json:"event_id"`
}

// Favorites fetches the caller's favorites and flattens each row into the
// Event shape the rest of the client works with.
func (c *Client) Favorites(ctx context.Context) ([]types.Event, error) {
	var records []types.FavoriteRecord
	if err := c.doJSON(ctx, http.MethodGet, "/favorites", nil, nil, &records); err != nil {
		return nil, err
	}
	events := make([]types.Event, 0, len(records))
	for _, record := range records {
		events = append(events, record.AsEvent())
	}
	return events, nil
}

// SaveFavorite marks an event as a favorite on the server.
func (c *Client) SaveFavorite(ctx context.Context, eventID string) error {
	return c.doJSON(ctx, http.MethodPost, "/favorites/save", nil, saveFavoriteRequest{EventID: eventID}, nil)
}

// UnsaveFavorite removes an event from the caller's favorites.
func (c *Client) UnsaveFavorite(ctx context.Context, eventID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/favorites/unsave/"+eventID, nil, nil, nil)
}
