package session

import (
	"context"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/marqueehq/marquee/internal/store"
)

// Change reports that another process altered the persisted session, for
// example `mq logout` run next to an open `mq browse`.
type Change struct {
	Status Status
	Token  string
}

const watchDebounce = 200 * time.Millisecond

// Watch observes the key-value store directory and emits a Change whenever
// the persisted token no longer matches the in-memory session. The channel
// closes when ctx is canceled.
func (s *Store) Watch(ctx context.Context) (<-chan Change, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(s.kv.Dir()); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	changes := make(chan Change, 1)
	go s.watchLoop(ctx, watcher, changes)
	return changes, nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- Change) {
	defer close(changes)
	defer watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isStoreEvent(event) {
				continue
			}
			// Writes arrive in bursts (db, wal, shm); collapse them.
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				fire = timer.C
			} else {
				timer.Reset(watchDebounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			if change, changed := s.reloadToken(); changed {
				select {
				case changes <- change:
				case <-ctx.Done():
					return
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logf("session watcher: %v", err)
		}
	}
}

func isStoreEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
		return false
	}
	return strings.Contains(event.Name, "mq.db")
}

// reloadToken re-reads the persisted token and reconciles in-memory state
// with it. Reports whether anything changed.
func (s *Store) reloadToken() (Change, bool) {
	token, ok, err := s.kv.Get(store.KeyAuthToken)
	if err != nil {
		s.logf("session watcher: read token: %v", err)
		return Change{}, false
	}
	if !ok {
		token = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusLoading || token == s.token {
		return Change{}, false
	}
	if token == "" {
		s.setLocked(StatusUnauthenticated, "", nil)
	} else {
		// The user identity attached to the new token is unknown here.
		s.setLocked(StatusAuthenticated, token, nil)
	}
	return Change{Status: s.status, Token: s.token}, true
}
