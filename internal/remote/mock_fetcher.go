package remote

import (
	"context"
	"errors"
	"sync"

	"example.com/feedcore/internal/models"
)

// MockFetcher returns canned posts for testing.
type MockFetcher struct {
	mu         sync.Mutex
	Posts      []models.Post
	ShouldFail bool          // flag to simulate a network failure
	Gate       chan struct{} // when set, FetchPosts waits for a value or close
	calls      int
}

func (m *MockFetcher) FetchPosts(ctx context.Context) ([]models.Post, error) {
	m.mu.Lock()
	m.calls++
	gate := m.Gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, &NetworkError{Op: "fetch posts", Err: ctx.Err()}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return nil, &NetworkError{Op: "fetch posts", Err: errors.New("mock: connection refused")}
	}
	out := make([]models.Post, len(m.Posts))
	copy(out, m.Posts)
	return out, nil
}

// SetPosts swaps the canned response.
func (m *MockFetcher) SetPosts(posts []models.Post) {
	m.mu.Lock()
	m.Posts = posts
	m.mu.Unlock()
}

func (m *MockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
