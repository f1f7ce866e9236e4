package event

import (
	"slices"
	"sync"

	"github.com/propmanager/backend/internal/domain/shared"
)

// allEvents keys handlers that subscribed without naming event types.
const allEvents = "*"

// subscriptions maps event types to their handlers. Lookups return a
// snapshot, so dispatch never holds the lock while handlers run.
type subscriptions struct {
	mu     sync.RWMutex
	byType map[string][]shared.EventHandler
}

func newSubscriptions() *subscriptions {
	return &subscriptions{byType: make(map[string][]shared.EventHandler)}
}

func (s *subscriptions) add(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = []string{allEvents}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range eventTypes {
		if slices.Contains(s.byType[t], handler) {
			continue
		}
		s.byType[t] = append(slices.Clip(s.byType[t]), handler)
	}
}

func (s *subscriptions) remove(handler shared.EventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for t, hs := range s.byType {
		kept := slices.DeleteFunc(slices.Clone(hs), func(h shared.EventHandler) bool { return h == handler })
		if len(kept) == 0 {
			delete(s.byType, t)
			continue
		}
		s.byType[t] = kept
	}
}

// forType returns the handlers for eventType followed by catch-all handlers.
func (s *subscriptions) forType(eventType string) []shared.EventHandler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.byType[eventType])
	if eventType != allEvents {
		out = append(out, s.byType[allEvents]...)
	}
	return out
}

// count reports how many distinct handlers are subscribed.
func (s *subscriptions) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[shared.EventHandler]struct{})
	for _, hs := range s.byType {
		for _, h := range hs {
			seen[h] = struct{}{}
		}
	}
	return len(seen)
}
