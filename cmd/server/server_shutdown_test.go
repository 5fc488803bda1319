package server

import (
	"context"
	"testing"
	"time"

	"example.com/feedcore/internal/store"
)

// TestServer_GracefulShutdown verifies that Run returns once its context is canceled.
func TestServer_GracefulShutdown(t *testing.T) {
	mockStore := store.NewMock()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		Run(ctx, mockStore, Options{Addr: "127.0.0.1:0", JWTSecret: testSecret})
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
		mockStore.Close()
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shutdown gracefully within the expected time")
	}
}
