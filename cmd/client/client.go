package client

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"example.com/feedcore/internal/feedsync"
	"example.com/feedcore/internal/logger"
	"example.com/feedcore/internal/validator"
)

var logg = logger.New()

type Options struct {
	RefreshInterval time.Duration
	AuthorID        int64
	DraftTitle      string
	DraftContent    string
	Out             io.Writer
	Now             func() time.Time
}

// Run keeps the feed fresh and re-renders it after every mutation until ctx
// is done. A failed refresh is logged and retried on the next tick only.
func Run(ctx context.Context, svc *feedsync.Service, opts Options) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 30 * time.Second
	}

	var outMu sync.Mutex
	unsubscribe := svc.Subscribe(func(feedsync.Event) {
		outMu.Lock()
		defer outMu.Unlock()
		Render(opts.Out, svc.Snapshot(), opts.Now())
	})
	defer unsubscribe()

	refresh(ctx, svc)

	if opts.DraftTitle != "" || opts.DraftContent != "" {
		submitDraft(ctx, svc, opts)
	}

	ticker := time.NewTicker(opts.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logg.Info("client", "Feed client stopped")
			return
		case <-ticker.C:
			refresh(ctx, svc)
		}
	}
}

func refresh(ctx context.Context, svc *feedsync.Service) {
	if err := svc.Refresh(ctx); err != nil && ctx.Err() == nil {
		logg.Warn("client", "Refresh failed, will retry on next tick", err)
	}
}

func submitDraft(ctx context.Context, svc *feedsync.Service, opts Options) {
	sub, err := svc.Submit(ctx, opts.DraftTitle, opts.DraftContent, opts.AuthorID)
	if err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			logg.Warn("client", "Draft rejected: "+string(verr.Reason), nil)
			return
		}
		logg.Error("client", "Draft submission failed", err)
		return
	}
	logg.Info("client", "Draft submitted, waiting for insertion")

	go func() {
		if err := sub.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Warn("client", "Draft did not reach the feed", err)
		}
	}()
}
