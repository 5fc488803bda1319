// Package remote talks to the post-list endpoint of the posts API.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"example.com/feedcore/internal/logger"
	"example.com/feedcore/internal/models"
	"github.com/google/uuid"
)

var logg = logger.New()

const (
	postsPath = "/posts"
	// maxBodyBytes bounds how much of a feed response is read.
	maxBodyBytes = 10 << 20
)

// NetworkError wraps any failure to obtain a decoded post list.
type NetworkError struct {
	Op         string
	StatusCode int // 0 unless the server answered
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPFetcher issues one GET per call; it never retries.
type HTTPFetcher struct {
	baseURL string
	token   string
	client  *http.Client
}

type FetcherOption func(*HTTPFetcher)

// WithToken sends the token as a bearer credential.
func WithToken(token string) FetcherOption {
	return func(f *HTTPFetcher) { f.token = token }
}

func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *HTTPFetcher) { f.client = c }
}

func WithTimeout(d time.Duration) FetcherOption {
	return func(f *HTTPFetcher) { f.client = &http.Client{Timeout: d} }
}

func NewHTTPFetcher(baseURL string, opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchPosts returns the full post list in server order.
func (f *HTTPFetcher) FetchPosts(ctx context.Context) ([]models.Post, error) {
	const op = "fetch posts"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+postsPath, nil)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		logg.Error("remote", "Post list request failed", err)
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &NetworkError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(b))),
		}
	}

	var posts []models.Post
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&posts); err != nil {
		logg.Error("remote", "Invalid post list body", err)
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("decode body: %w", err)}
	}

	logg.Debug("remote", fmt.Sprintf("Fetched %d posts", len(posts)))
	return posts, nil
}
