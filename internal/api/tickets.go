package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/marqueehq/marquee/internal/types"
)

// PurchaseTicket buys tickets for an event. Each call carries a fresh
// idempotency key so the backend can drop duplicate submissions.
func (c *Client) PurchaseTicket(ctx context.Context, req types.PurchaseRequest) (types.Ticket, error) {
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	var ticket types.Ticket
	if err := c.doJSON(ctx, http.MethodPost, "/tickets/purchase", headers, req, &ticket); err != nil {
		return types.Ticket{}, err
	}
	return ticket, nil
}

// MyTickets fetches the caller's purchased tickets.
func (c *Client) MyTickets(ctx context.Context) ([]types.Ticket, error) {
	var tickets []types.Ticket
	if err := c.doJSON(ctx, http.MethodGet, "/tickets/my-tickets", nil, nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}
