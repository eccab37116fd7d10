package types

// TicketStatus enumerates the lifecycle states of a purchased ticket.
type TicketStatus string

const (
	TicketActive    TicketStatus = "active"
	TicketUsed      TicketStatus = "used"
	TicketCancelled TicketStatus = "cancelled"
	TicketPending   TicketStatus = "pending"
)

// TicketEvent is the event summary embedded in a ticket row.
type TicketEvent struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Date     string  `json:"date"`
	Location string  `json:"location"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
}

// Ticket is a purchased entry as returned by the tickets endpoints.
type Ticket struct {
	ID                string       `json:"id"`
	EventID           string       `json:"event_id"`
	UserID            string       `json:"user_id"`
	QRCode            string       `json:"qr_code"`
	Status            TicketStatus `json:"status"`
	PurchasedAt       string       `json:"purchased_at"`
	UsedAt            *string      `json:"used_at"`
	CreatedAt         string       `json:"created_at"`
	TicketType        string       `json:"ticket_type"`
	Price             string       `json:"price"`
	PaidWithPoints    bool         `json:"paid_with_points"`
	PointsUsed        int          `json:"points_used"`
	EventPriceID      *string      `json:"event_price_id"`
	EventName         *string      `json:"event_name"`
	DateEvent         *string      `json:"date_event"`
	EventLocationName *string      `json:"event_location_name"`
	EventLocationURL  *string      `json:"event_location_url"`
	Quantity          int          `json:"quantity,omitempty"`
	Event             *TicketEvent `json:"event,omitempty"`
}

// PurchaseRequest is the body for POST /tickets/purchase.
type PurchaseRequest struct {
	EventID  string `json:"event_id"`
	Quantity int    `json:"quantity"`
}
