// Package events is the data-fetching layer for event listings.
package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/marqueehq/marquee/internal/query"
	"github.com/marqueehq/marquee/internal/types"
)

// ListCacheKey is the event listing entry in the shared request cache.
const ListCacheKey = "events"

const listStaleTime = 5 * time.Minute

// API is the slice of the backend client the service needs.
type API interface {
	Events(ctx context.Context) ([]types.Event, error)
	EventByID(ctx context.Context, id string) (types.Event, error)
}

// Session exposes the current access token.
type Session interface {
	Token() string
}

// Service serves event listings through the shared request cache.
type Service struct {
	cache   *query.Cache
	api     API
	session Session
}

// New creates an events service over the shared cache.
func New(cache *query.Cache, api API, session Session) *Service {
	return &Service{cache: cache, api: api, session: session}
}

// Events returns the event listing. The fetch is gated on authentication
// and the result stays fresh for five minutes.
func (s *Service) Events(ctx context.Context) ([]types.Event, error) {
	opts := query.Options{StaleTime: listStaleTime, Enabled: s.session.Token() != ""}
	data, err := s.cache.Fetch(ctx, ListCacheKey, opts, func(ctx context.Context) (any, error) {
		return s.api.Events(ctx)
	})
	if err != nil {
		if errors.Is(err, query.ErrDisabled) {
			return nil, nil
		}
		return nil, err
	}
	events, _ := data.([]types.Event)
	return events, nil
}

// EventByID returns a single event, cached per id. The endpoint is public,
// so the fetch is gated only on a non-empty id.
func (s *Service) EventByID(ctx context.Context, id string) (types.Event, error) {
	opts := query.Options{StaleTime: listStaleTime, Enabled: id != ""}
	data, err := s.cache.Fetch(ctx, EventCacheKey(id), opts, func(ctx context.Context) (any, error) {
		return s.api.EventByID(ctx, id)
	})
	if err != nil {
		return types.Event{}, err
	}
	event, _ := data.(types.Event)
	return event, nil
}

// EventCacheKey returns the cache key for a single event.
func EventCacheKey(id string) string {
	return "event:" + id
}

// Refresh invalidates the listing so the next read refetches.
func (s *Service) Refresh() {
	s.cache.Invalidate(ListCacheKey)
}

// Filter narrows a listing by a glob pattern over title, event name, and
// city, and by category name. Empty arguments match everything.
func Filter(events []types.Event, pattern, category string) ([]types.Event, error) {
	var matcher glob.Glob
	if pattern != "" {
		compiled, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, err
		}
		matcher = compiled
	}

	var out []types.Event
	for _, event := range events {
		if matcher != nil && !matchesGlob(matcher, event) {
			continue
		}
		if category != "" && !hasCategory(event, category) {
			continue
		}
		out = append(out, event)
	}
	return out, nil
}

func matchesGlob(matcher glob.Glob, event types.Event) bool {
	return matcher.Match(strings.ToLower(event.Title)) ||
		matcher.Match(strings.ToLower(event.EventName)) ||
		matcher.Match(strings.ToLower(event.City))
}

func hasCategory(event types.Event, category string) bool {
	for _, c := range event.Categories {
		if strings.EqualFold(c.Name, category) {
			return true
		}
	}
	return false
}
