package store

import (
	"sync"

	"example.com/feedcore/internal/models"
)

// FeedStore is the ordered, session-scoped feed. Each method is atomic;
// callers get no ordering guarantee between concurrent mutations.
type FeedStore struct {
	mu    sync.RWMutex
	posts []models.Post
}

func NewFeedStore() *FeedStore {
	return &FeedStore{}
}

// Replace swaps the whole feed. Posts previously inserted at the head are
// dropped unless posts contains them.
func (f *FeedStore) Replace(posts []models.Post) {
	next := make([]models.Post, len(posts))
	copy(next, posts)

	f.mu.Lock()
	f.posts = next
	f.mu.Unlock()
}

// InsertAtHead prepends post without looking at its timestamp or checking
// whether its ID is already present.
func (f *FeedStore) InsertAtHead(post models.Post) {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := make([]models.Post, 0, len(f.posts)+1)
	next = append(next, post)
	f.posts = append(next, f.posts...)
}

// Snapshot returns a copy of the current feed.
func (f *FeedStore) Snapshot() []models.Post {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]models.Post, len(f.posts))
	copy(out, f.posts)
	return out
}

func (f *FeedStore) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.posts)
}
