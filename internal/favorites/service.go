// Package favorites keeps the cached favorites list responsive through
// optimistic updates while reconciling with the server: mutations rewrite
// the cache before the network call, roll back on failure, and always
// invalidate on settle so a refetch restores server truth.
package favorites

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/marqueehq/marquee/internal/query"
	"github.com/marqueehq/marquee/internal/types"
)

// CacheKey is the favorites entry in the shared request cache.
const CacheKey = "favorites"

// API is the slice of the backend client the service needs.
type API interface {
	Favorites(ctx context.Context) ([]types.Event, error)
	SaveFavorite(ctx context.Context, eventID string) error
	UnsaveFavorite(ctx context.Context, eventID string) error
}

// Session exposes the current access token.
type Session interface {
	Token() string
}

// Service coordinates the favorites cache entry.
type Service struct {
	cache   *query.Cache
	api     API
	session Session
	logger  *log.Logger

	mu      sync.Mutex
	tails   map[string]chan struct{}
	pending int
}

// New creates a favorites service over the shared cache. logger may be nil.
func New(cache *query.Cache, api API, session Session, logger *log.Logger) *Service {
	return &Service{
		cache:   cache,
		api:     api,
		session: session,
		tails:   make(map[string]chan struct{}),
		logger:  logger,
	}
}

// Favorites returns the favorites list, fetching when the cache is stale.
// Without a token the fetch is gated off and the list is empty.
func (s *Service) Favorites(ctx context.Context) ([]types.Event, error) {
	opts := query.Options{Enabled: s.session.Token() != ""}
	data, err := s.cache.Fetch(ctx, CacheKey, opts, func(ctx context.Context) (any, error) {
		return s.api.Favorites(ctx)
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

// IsFavorite reports whether the event is in the cached favorites list.
// False when the list has not loaded yet.
func (s *Service) IsFavorite(eventID string) bool {
	events, ok := query.Data[[]types.Event](s.cache, CacheKey)
	if !ok {
		return false
	}
	return containsEvent(events, eventID)
}

// Pending returns the number of unsettled toggle mutations.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Toggle flips the favorite state of an event. When no mutation is pending
// for the id, the direction decision and the optimistic cache rewrite happen
// before Toggle returns; the network call and settlement run in the
// background and the returned channel reports the outcome (callers may
// ignore it). Toggles on the same event id queue behind each other so each
// mutation sees the previous one settled; distinct ids run concurrently.
func (s *Service) Toggle(ctx context.Context, eventID string, eventData *types.Event) <-chan error {
	result := make(chan error, 1)

	s.mu.Lock()
	prev := s.tails[eventID]
	done := make(chan struct{})
	s.tails[eventID] = done
	s.pending++
	s.mu.Unlock()

	finish := func() {
		s.mu.Lock()
		s.pending--
		if s.tails[eventID] == done {
			delete(s.tails, eventID)
		}
		s.mu.Unlock()
		close(done)
	}

	if prev == nil {
		settle := s.begin(eventID, eventData)
		go func() {
			defer finish()
			result <- settle(ctx)
		}()
		return result
	}

	go func() {
		defer finish()
		select {
		case <-prev:
		case <-ctx.Done():
			result <- ctx.Err()
			return
		}
		settle := s.begin(eventID, eventData)
		result <- settle(ctx)
	}()
	return result
}

// begin captures the rollback snapshot, applies the optimistic rewrite, and
// returns the settle step: the network call, rollback on failure, and the
// unconditional invalidation.
func (s *Service) begin(eventID string, eventData *types.Event) func(context.Context) error {
	s.cache.CancelInFlight(CacheKey)
	snapshot, hadSnapshot := query.Data[[]types.Event](s.cache, CacheKey)

	if containsEvent(snapshot, eventID) {
		next := make([]types.Event, 0, len(snapshot))
		for _, event := range snapshot {
			if event.ID != eventID {
				next = append(next, event)
			}
		}
		s.cache.Write(CacheKey, next)

		return func(ctx context.Context) error {
			err := s.api.UnsaveFavorite(ctx, eventID)
			if err != nil {
				s.logf("favorites: unsave %s: %v", eventID, err)
				if hadSnapshot {
					s.cache.Write(CacheKey, snapshot)
				}
			}
			s.cache.Invalidate(CacheKey)
			return err
		}
	}

	if eventData != nil {
		next := make([]types.Event, 0, len(snapshot)+1)
		next = append(next, snapshot...)
		next = append(next, *eventData)
		s.cache.Write(CacheKey, next)
	}

	return func(ctx context.Context) error {
		err := s.api.SaveFavorite(ctx, eventID)
		if err != nil {
			s.logf("favorites: save %s: %v", eventID, err)
			if hadSnapshot {
				s.cache.Write(CacheKey, snapshot)
			}
		}
		s.cache.Invalidate(CacheKey)
		return err
	}
}

func containsEvent(events []types.Event, eventID string) bool {
	for _, event := range events {
		if event.ID == eventID {
			return true
		}
	}
	return false
}

func (s *Service) logf(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Printf(format, args...)
}
