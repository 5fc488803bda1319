package feedsync

import (
	"time"

	"example.com/feedcore/internal/models"
)

type EventKind string

const (
	Replaced EventKind = "replaced"
	Inserted EventKind = "inserted"
)

// Event is delivered after the feed has been mutated.
type Event struct {
	Kind  EventKind
	Post  *models.Post // set for Inserted
	Count int          // posts affected
	At    time.Time
}

// Listener runs synchronously on the goroutine that mutated the feed and
// must not block.
type Listener func(Event)

// Subscribe registers l and returns a func that removes it.
func (s *Service) Subscribe(l Listener) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = l
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *Service) notify(ev Event) {
	s.subsMu.RLock()
	ls := make([]Listener, 0, len(s.subs))
	for _, l := range s.subs {
		ls = append(ls, l)
	}
	s.subsMu.RUnlock()

	for _, l := range ls {
		l(ev)
	}
}
