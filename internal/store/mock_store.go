package store

import (
	"errors"
	"sort"
	"sync"

	"example.com/feedcore/internal/models"
)

// MockStore simulates the Cassandra post store for testing.
type MockStore struct {
	mu         sync.Mutex
	Users      map[int64]string
	Posts      []models.Post
	sequences  map[string]int64
	ShouldFail bool // flag to simulate failures
}

// NewMock initializes a new mock store
func NewMock() *MockStore {
	return &MockStore{
		Users:     make(map[int64]string),
		sequences: make(map[string]int64),
	}
}

func (m *MockStore) Close() {}

func (m *MockStore) NextID(sequence string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return 0, errors.New("mock: next id failed")
	}
	m.sequences[sequence]++
	return m.sequences[sequence], nil
}

// CreateUser simulates creating a new user
func (m *MockStore) CreateUser(username, email string) (int64, error) {
	if id, err := m.GetUserIDByUsername(username); err != nil || id != 0 {
		return id, err
	}
	id, err := m.NextID(UserSequence)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users[id] = username
	return id, nil
}

// GetUserIDByUsername returns the user ID for a given username
func (m *MockStore) GetUserIDByUsername(username string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return 0, errors.New("mock: get user failed")
	}
	for id, u := range m.Users {
		if u == username {
			return id, nil
		}
	}
	return 0, nil
}

// AddPost simulates adding a post
func (m *MockStore) AddPost(post models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return errors.New("mock: add post failed")
	}
	m.Posts = append(m.Posts, post)
	return nil
}

func (m *MockStore) PostCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Posts)
}

// ListPosts mirrors the clustering order of posts_by_feed.
func (m *MockStore) ListPosts(limit int) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return nil, errors.New("mock: list posts failed")
	}

	out := make([]models.Post, len(m.Posts))
	copy(out, m.Posts)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---------------------------------------------
// MockStoreFail always returns errors for negative tests
type MockStoreFail struct{}

func (m *MockStoreFail) Close() {}

func (m *MockStoreFail) NextID(sequence string) (int64, error) {
	return 0, errors.New("mock store next id failed")
}

func (m *MockStoreFail) CreateUser(username, email string) (int64, error) {
	return 0, errors.New("mock store create user failed")
}

func (m *MockStoreFail) GetUserIDByUsername(username string) (int64, error) {
	return 0, errors.New("mock store get user by username failed")
}

func (m *MockStoreFail) AddPost(post models.Post) error {
	return errors.New("mock store add post failed")
}

func (m *MockStoreFail) ListPosts(limit int) ([]models.Post, error) {
	return nil, errors.New("mock store list posts failed")
}
