// Package feedsync keeps the session feed in step with the posts API and
// with posts authored locally.
//
// Refresh replaces the feed with the server list; Submit validates a draft
// and, after a fixed delay, inserts it at the head. The two are not
// coordinated: whichever mutation lands last determines the feed, and a
// locally inserted post disappears on the next Refresh if the server does
// not return it yet.
package feedsync

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"example.com/feedcore/internal/logger"
	"example.com/feedcore/internal/models"
	"example.com/feedcore/internal/store"
)

var logg = logger.New()

const DefaultSubmitDelay = time.Second

// PostFetcher is the remote collaborator serving the full post list.
type PostFetcher interface {
	FetchPosts(ctx context.Context) ([]models.Post, error)
}

type State int

const (
	Idle State = iota
	Fetching
)

func (s State) String() string {
	if s == Fetching {
		return "fetching"
	}
	return "idle"
}

type Outcome int

const (
	NeverRefreshed Outcome = iota
	Succeeded
	Failed
)

// RefreshStatus describes the most recently completed refresh.
type RefreshStatus struct {
	Outcome Outcome
	At      time.Time
	Count   int
	Err     error
}

type Service struct {
	fetcher PostFetcher
	feed    *store.FeedStore
	now     func() time.Time
	delay   time.Duration
	ids     IDSource

	fetching   atomic.Int32
	submitting atomic.Int32

	statusMu sync.Mutex
	status   RefreshStatus

	subsMu sync.RWMutex
	subs   map[uint64]Listener
	nextID uint64
}

type Option func(*Service)

// WithStore lets a caller own the FeedStore, mainly for tests.
func WithStore(f *store.FeedStore) Option {
	return func(s *Service) { s.feed = f }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithSubmitDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

func WithIDSource(ids IDSource) Option {
	return func(s *Service) { s.ids = ids }
}

func New(fetcher PostFetcher, opts ...Option) *Service {
	s := &Service{
		fetcher: fetcher,
		now:     time.Now,
		delay:   DefaultSubmitDelay,
		subs:    make(map[uint64]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.feed == nil {
		s.feed = store.NewFeedStore()
	}
	if s.ids == nil {
		s.ids = NewPlaceholderIDs()
	}
	if s.delay < 0 {
		s.delay = 0
	}
	return s
}

// Refresh fetches the full post list once and replaces the feed with it.
// On error the feed is left as it was and nothing is retried.
func (s *Service) Refresh(ctx context.Context) error {
	s.fetching.Add(1)
	defer s.fetching.Add(-1)

	posts, err := s.fetcher.FetchPosts(ctx)
	if err != nil {
		s.setStatus(RefreshStatus{Outcome: Failed, At: s.now(), Err: err})
		logg.Error("feedsync", "Refresh failed, keeping current feed", err)
		return fmt.Errorf("refresh feed: %w", err)
	}

	s.feed.Replace(posts)
	s.setStatus(RefreshStatus{Outcome: Succeeded, At: s.now(), Count: len(posts)})
	s.notify(Event{Kind: Replaced, Count: len(posts), At: s.now()})

	logg.Info("feedsync", fmt.Sprintf("Feed replaced with %d posts", len(posts)))
	return nil
}

// State is Fetching while at least one Refresh is in flight.
func (s *Service) State() State {
	if s.fetching.Load() > 0 {
		return Fetching
	}
	return Idle
}

func (s *Service) LastRefresh() RefreshStatus {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	return s.status
}

func (s *Service) setStatus(st RefreshStatus) {
	s.statusMu.Lock()
	s.status = st
	s.statusMu.Unlock()
}

func (s *Service) Snapshot() []models.Post {
	return s.feed.Snapshot()
}

// Submitting reports whether any submission is waiting to be inserted.
// The service does not queue or reject concurrent submissions.
func (s *Service) Submitting() bool {
	return s.submitting.Load() > 0
}
