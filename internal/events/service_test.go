package events

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/marqueehq/marquee/internal/query"
	"github.com/marqueehq/marquee/internal/types"
)

type fakeSession struct {
	token string
}

func (s *fakeSession) Token() string { return s.token }

type fakeAPI struct {
	listCalls atomic.Int32
	byIDCalls atomic.Int32
	listing   []types.Event
}

func (a *fakeAPI) Events(ctx context.Context) ([]types.Event, error) {
	a.listCalls.Add(1)
	return a.listing, nil
}

func (a *fakeAPI) EventByID(ctx context.Context, id string) (types.Event, error) {
	a.byIDCalls.Add(1)
	return types.Event{ID: id, Title: "Event " + id}, nil
}

func TestEventsGatedOnToken(t *testing.T) {
	api := &fakeAPI{listing: []types.Event{{ID: "1"}}}
	svc := New(query.New(nil), api, &fakeSession{token: ""})

	listing, err := svc.Events(context.Background())
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if listing != nil {
		t.Fatalf("expected no listing without token, got %v", listing)
	}
	if api.listCalls.Load() != 0 {
		t.Fatal("expected no fetch without token")
	}
}

func TestEventsCachedWithinStaleTime(t *testing.T) {
	api := &fakeAPI{listing: []types.Event{{ID: "1"}, {ID: "2"}}}
	svc := New(query.New(nil), api, &fakeSession{token: "tok"})

	for i := 0; i < 3; i++ {
		listing, err := svc.Events(context.Background())
		if err != nil {
			t.Fatalf("events %d: %v", i, err)
		}
		if len(listing) != 2 {
			t.Fatalf("events %d: got %d", i, len(listing))
		}
	}
	if got := api.listCalls.Load(); got != 1 {
		t.Fatalf("expected 1 fetch, got %d", got)
	}
}

func TestRefreshInvalidatesListing(t *testing.T) {
	api := &fakeAPI{}
	svc := New(query.New(nil), api, &fakeSession{token: "tok"})

	if _, err := svc.Events(context.Background()); err != nil {
		t.Fatalf("events: %v", err)
	}
	svc.Refresh()
	if _, err := svc.Events(context.Background()); err != nil {
		t.Fatalf("events: %v", err)
	}
	if got := api.listCalls.Load(); got != 2 {
		t.Fatalf("expected refetch after refresh, got %d calls", got)
	}
}

func TestEventByIDCachedPerID(t *testing.T) {
	api := &fakeAPI{}
	svc := New(query.New(nil), api, &fakeSession{token: ""})

	// Single-event reads are public; no token needed.
	first, err := svc.EventByID(context.Background(), "7")
	if err != nil {
		t.Fatalf("event by id: %v", err)
	}
	if first.ID != "7" {
		t.Fatalf("expected event 7, got %q", first.ID)
	}
	if _, err := svc.EventByID(context.Background(), "7"); err != nil {
		t.Fatalf("event by id: %v", err)
	}
	if _, err := svc.EventByID(context.Background(), "8"); err != nil {
		t.Fatalf("event by id: %v", err)
	}
	if got := api.byIDCalls.Load(); got != 2 {
		t.Fatalf("expected one fetch per id, got %d", got)
	}
}

func TestFilterByGlobAndCategory(t *testing.T) {
	listing := []types.Event{
		{ID: "1", Title: "Jazz Night", City: "Lisbon", Categories: []types.EventCategory{{ID: 1, Name: "Music"}}},
		{ID: "2", Title: "Art Walk", City: "Porto", Categories: []types.EventCategory{{ID: 2, Name: "Art"}}},
		{ID: "3", Title: "Jazz Brunch", City: "Porto", Categories: []types.EventCategory{{ID: 1, Name: "Music"}}},
	}

	matched, err := Filter(listing, "jazz*", "")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 jazz events, got %d", len(matched))
	}

	matched, err = Filter(listing, "jazz*", "music")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected category match to be case-insensitive, got %d", len(matched))
	}

	matched, err = Filter(listing, "", "Art")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != "2" {
		t.Fatalf("expected only the art event, got %v", matched)
	}

	matched, err = Filter(listing, "porto", "")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected city matches, got %d", len(matched))
	}

	if _, err := Filter(listing, "[", ""); err == nil {
		t.Fatal("expected error for malformed pattern")
	}
}
