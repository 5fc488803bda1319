package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const samplePosts = `[
	{"id":2,"title":"Second","content":"Second post body","likes":1,"comments":0,
	 "author_id":9,"created_at":"2024-03-02T10:00:00Z","updated_at":null},
	{"id":1,"title":"First","content":"First post body","likes":0,"comments":2,
	 "author_id":9,"created_at":"2024-03-01T10:00:00Z","updated_at":"2024-03-01T12:00:00Z"}
]`

func TestHTTPFetcher_FetchPosts(t *testing.T) {
	var gotAuth, gotPath, gotReqID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotReqID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(samplePosts))
	}))
	defer ts.Close()

	f := NewHTTPFetcher(ts.URL+"/", WithToken("secret-token"))
	posts, err := f.FetchPosts(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if gotPath != "/posts" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotReqID == "" {
		t.Fatal("expected request id header")
	}
	if len(posts) != 2 || posts[0].ID != 2 || posts[1].ID != 1 {
		t.Fatalf("unexpected posts: %+v", posts)
	}
	if posts[0].UpdatedAt != nil || posts[1].UpdatedAt == nil {
		t.Fatal("updated_at not mapped correctly")
	}
}

func TestHTTPFetcher_NoTokenNoHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	posts, err := NewHTTPFetcher(ts.URL).FetchPosts(context.Background())
	if err != nil || len(posts) != 0 {
		t.Fatalf("expected empty list, got %v, %v", posts, err)
	}
}

func TestHTTPFetcher_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer ts.Close()

	_, err := NewHTTPFetcher(ts.URL).FetchPosts(context.Background())

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if netErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", netErr.StatusCode)
	}
}

func TestHTTPFetcher_InvalidBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer ts.Close()

	_, err := NewHTTPFetcher(ts.URL).FetchPosts(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) || netErr.StatusCode != 0 {
		t.Fatalf("expected decode NetworkError, got %v", err)
	}
}

func TestHTTPFetcher_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := NewHTTPFetcher(url, WithTimeout(time.Second)).FetchPosts(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestHTTPFetcher_ContextCanceled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewHTTPFetcher(ts.URL).FetchPosts(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded through NetworkError, got %v", err)
	}
}
