// Package tickets is the data-fetching layer for purchased tickets.
package tickets

import (
	"context"
	"errors"
	"time"

	"github.com/marqueehq/marquee/internal/query"
	"github.com/marqueehq/marquee/internal/types"
)

// CacheKey is the my-tickets entry in the shared request cache.
const CacheKey = "tickets"

const staleTime = 5 * time.Minute

// API is the slice of the backend client the service needs.
type API interface {
	MyTickets(ctx context.Context) ([]types.Ticket, error)
	PurchaseTicket(ctx context.Context, req types.PurchaseRequest) (types.Ticket, error)
}

// Session exposes the current access token.
type Session interface {
	Token() string
}

// Service serves the caller's tickets through the shared request cache.
type Service struct {
	cache   *query.Cache
	api     API
	session Session
}

// New creates a tickets service over the shared cache.
func New(cache *query.Cache, api API, session Session) *Service {
	return &Service{cache: cache, api: api, session: session}
}

// MyTickets returns the caller's tickets, gated on authentication and fresh
// for five minutes.
func (s *Service) MyTickets(ctx context.Context) ([]types.Ticket, error) {
	opts := query.Options{StaleTime: staleTime, Enabled: s.session.Token() != ""}
	data, err := s.cache.Fetch(ctx, CacheKey, opts, func(ctx context.Context) (any, error) {
		return s.api.MyTickets(ctx)
	})
	if err != nil {
		if errors.Is(err, query.ErrDisabled) {
			return nil, nil
		}
		return nil, err
	}
	tickets, _ := data.([]types.Ticket)
	return tickets, nil
}

// Purchase buys tickets for an event and invalidates the cached listing on
// success so the next read shows the new ticket.
func (s *Service) Purchase(ctx context.Context, eventID string, quantity int) (types.Ticket, error) {
	ticket, err := s.api.PurchaseTicket(ctx, types.PurchaseRequest{EventID: eventID, Quantity: quantity})
	if err != nil {
		return types.Ticket{}, err
	}
	s.cache.Invalidate(CacheKey)
	return ticket, nil
}
