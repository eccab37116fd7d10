package favorites

import (
	"github.com/marqueehq/marquee/internal/query"
	"github.com/marqueehq/marquee/internal/types"
)

// Cached returns the favorites list as currently cached, without touching
// the network. Nil when nothing has loaded yet. Optimistic writes from
// in-flight toggles are visible here immediately.
func (s *Service) Cached() []types.Event {
	events, ok := query.Data[[]types.Event](s.cache, CacheKey)
	if !ok {
		return nil
	}
	return events
}
