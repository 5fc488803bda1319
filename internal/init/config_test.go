package config

import (
	"testing"
	"time"
)

func TestInit_Defaults(t *testing.T) {
	c := Init()

	if c.Mode != "client" {
		t.Fatalf("expected client mode by default, got %q", c.Mode)
	}
	if c.SubmitDelay != time.Second {
		t.Fatalf("expected 1s submit delay, got %v", c.SubmitDelay)
	}
	if c.AuthorID != 1 {
		t.Fatalf("expected author 1, got %d", c.AuthorID)
	}
	if c.FeedEventsTopic != "feed-events" {
		t.Fatalf("unexpected topic %q", c.FeedEventsTopic)
	}
	if Get() != c {
		t.Fatal("Get should return the loaded config")
	}
}

func TestInit_EnvOverrides(t *testing.T) {
	t.Setenv("MODE", "server")
	t.Setenv("SUBMIT_DELAY", "250ms")
	t.Setenv("AUTHOR_ID", "17")
	t.Setenv("FETCH_TIMEOUT", "not-a-duration")

	c := Init()

	if c.Mode != "server" {
		t.Fatalf("expected server mode, got %q", c.Mode)
	}
	if c.SubmitDelay != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", c.SubmitDelay)
	}
	if c.AuthorID != 17 {
		t.Fatalf("expected author 17, got %d", c.AuthorID)
	}
	if c.FetchTimeout != 10*time.Second {
		t.Fatalf("invalid duration should fall back to default, got %v", c.FetchTimeout)
	}
}
