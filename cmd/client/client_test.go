package client

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"example.com/feedcore/internal/feedsync"
	"example.com/feedcore/internal/models"
	"example.com/feedcore/internal/remote"
)

// syncBuffer is written from listener goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal(msg)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRender(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	posts := []models.Post{
		{ID: -1, Title: "Draft", AuthorID: 1, CreatedAt: now, Pending: true},
		{ID: 9, Title: "Hello", AuthorID: 2, CreatedAt: now.Add(-3 * time.Hour), Likes: 1, Comments: 4},
		{ID: 8, Title: "Older", AuthorID: 3, CreatedAt: now.AddDate(0, 0, -1)},
	}

	var buf bytes.Buffer
	Render(&buf, posts, now)
	out := buf.String()

	for _, want := range []string{
		"Feed (3 posts)",
		"* Draft · author #1 · Just now · sending",
		"#9 Hello · author #2 · 3 hours ago · 1 like · 4 comments",
		"#8 Older · author #3 · Yesterday · 0 likes · 0 comments",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRun_RefreshesAndSubmitsDraft(t *testing.T) {
	f := &remote.MockFetcher{Posts: []models.Post{{ID: 1, Title: "From server", CreatedAt: time.Now()}}}
	svc := feedsync.New(f, feedsync.WithSubmitDelay(5*time.Millisecond))
	out := &syncBuffer{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Run(ctx, svc, Options{
			RefreshInterval: 20 * time.Millisecond,
			AuthorID:        5,
			DraftTitle:      "My draft",
			DraftContent:    "Long enough draft body",
			Out:             out,
		})
		close(done)
	}()

	waitFor(t, func() bool { return f.Calls() >= 2 }, "client did not refresh on its interval")
	waitFor(t, func() bool { return strings.Contains(out.String(), "From server") }, "feed was not rendered")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("client did not stop")
	}

	// Periodic refreshes may drop the local draft again; it must have been
	// rendered at least once after insertion.
	if !strings.Contains(out.String(), "My draft") {
		t.Fatalf("draft never rendered:\n%s", out.String())
	}
}

func TestRun_InvalidDraftNotSubmitted(t *testing.T) {
	f := &remote.MockFetcher{}
	svc := feedsync.New(f, feedsync.WithSubmitDelay(time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	Run(ctx, svc, Options{
		RefreshInterval: time.Hour,
		DraftTitle:      "ab",
		DraftContent:    "valid content here",
		Out:             &syncBuffer{},
	})

	if len(svc.Snapshot()) != 0 || svc.Submitting() {
		t.Fatal("invalid draft reached the feed")
	}
}

func TestRun_SurvivesFetchFailure(t *testing.T) {
	f := &remote.MockFetcher{ShouldFail: true}
	svc := feedsync.New(f)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	Run(ctx, svc, Options{RefreshInterval: 10 * time.Millisecond, Out: &syncBuffer{}})

	if f.Calls() < 2 {
		t.Fatalf("expected retries on ticks, got %d calls", f.Calls())
	}
	if st := svc.LastRefresh(); st.Outcome != feedsync.Failed {
		t.Fatalf("expected failed status, got %+v", st)
	}
}
