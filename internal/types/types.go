// Package types holds the wire model shared with the events backend.
package types

// EventCategory tags an event with a backend-defined category.
type EventCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Event describes a venue event as served by the backend. The client never
// mutates events, only caches copies.
type Event struct {
	ID                   string          `json:"id"`
	Title                string          `json:"title"`
	City                 string          `json:"city"`
	EventName            string          `json:"event_name"`
	StartsAt             string          `json:"starts_at"`
	EndsAt               string          `json:"ends_at"`
	IsFree               bool            `json:"is_free"`
	Capacity             int             `json:"capacity"`
	CoverURL             string          `json:"cover_url"`
	CoverImageURL        string          `json:"cover_image_url"`
	EventLocationName    string          `json:"event_location_name"`
	EventLocationURL     string          `json:"event_location_url"`
	EventLocationAddress string          `json:"event_location_address"`
	BaseTicketPrice      float64         `json:"base_ticket_price"`
	IsSinglePrice        bool            `json:"is_single_price"`
	CreatedAt            string          `json:"created_at"`
	Description          string          `json:"description"`
	OrganizerID          string          `json:"organizer_id"`
	TicketsSold          int             `json:"tickets_sold"`
	PointsRevenue        float64         `json:"points_revenue"`
	Categories           []EventCategory `json:"categories"`
}

// EventsPage is the paginated list response for GET /events.
type EventsPage struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// User is the authenticated account as returned by the auth endpoints.
type User struct {
	ID        string `json:"id"`
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// FavoriteRecord is a server-side favorite row with its embedded event
// summary, as returned by GET /favorites.
type FavoriteRecord struct {
	UserID    string        `json:"user_id"`
	EventID   string        `json:"event_id"`
	CreatedAt string        `json:"created_at"`
	Event     FavoriteEvent `json:"event"`
}

// FavoriteEvent is the partial event payload embedded in a favorite row.
// Optional fields are zero-valued when the backend omits them.
type FavoriteEvent struct {
	ID                   string  `json:"id,omitempty"`
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	StartsAt             string  `json:"starts_at"`
	EndsAt               string  `json:"ends_at"`
	EventName            string  `json:"event_name"`
	City                 string  `json:"city"`
	CoverURL             string  `json:"cover_url"`
	IsFree               bool    `json:"is_free"`
	BaseTicketPrice      float64 `json:"base_ticket_price"`
	IsSinglePrice        bool    `json:"is_single_price"`
	EventLocationName    string  `json:"event_location_name,omitempty"`
	EventLocationAddress string  `json:"event_location_address,omitempty"`
	EventLocationURL     string  `json:"event_location_url,omitempty"`
	Capacity             int     `json:"capacity,omitempty"`
	TicketsSold          int     `json:"tickets_sold,omitempty"`
}

// AsEvent flattens a favorite row into the full Event shape used by the
// favorites cache. Location name falls back to the city and missing
// numeric fields stay zero, matching the backend contract.
func (r FavoriteRecord) AsEvent() Event {
	locationName := r.Event.EventLocationName
	if locationName == "" {
		locationName = r.Event.City
	}
	return Event{
		ID:                   r.EventID,
		Title:                r.Event.Title,
		Description:          r.Event.Description,
		StartsAt:             r.Event.StartsAt,
		EndsAt:               r.Event.EndsAt,
		CoverURL:             r.Event.CoverURL,
		CoverImageURL:        r.Event.CoverURL,
		EventLocationName:    locationName,
		EventLocationAddress: r.Event.EventLocationAddress,
		EventLocationURL:     r.Event.EventLocationURL,
		Capacity:             r.Event.Capacity,
		TicketsSold:          r.Event.TicketsSold,
		BaseTicketPrice:      r.Event.BaseTicketPrice,
		IsFree:               r.Event.IsFree,
		IsSinglePrice:        r.Event.IsSinglePrice,
		City:                 r.Event.City,
		EventName:            r.Event.EventName,
		CreatedAt:            r.CreatedAt,
		OrganizerID:          r.UserID,
	}
}
