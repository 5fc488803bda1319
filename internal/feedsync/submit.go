package feedsync

import (
	"context"
	"errors"
	"sync"
	"time"

	"example.com/feedcore/internal/models"
	"example.com/feedcore/internal/validator"
	"github.com/google/uuid"
)

var ErrSubmissionCanceled = errors.New("submission canceled")

type submissionState int

const (
	scheduled submissionState = iota
	inserted
	canceled
)

// Submission is the handle of a deferred head insertion.
type Submission struct {
	id   string
	post models.Post
	done chan struct{}

	mu    sync.Mutex
	state submissionState
	timer *time.Timer
}

func (sub *Submission) ID() string { return sub.id }

// Post is the pending post that is, or will be, inserted.
func (sub *Submission) Post() models.Post { return sub.post }

// Done is closed once the submission is inserted or canceled.
func (sub *Submission) Done() <-chan struct{} { return sub.done }

func (sub *Submission) Inserted() bool {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	return sub.state == inserted
}

// Cancel stops the insertion if it has not started. It reports whether
// this call canceled the submission.
func (sub *Submission) Cancel() bool {
	sub.mu.Lock()
	defer sub.mu.Unlock()

	if sub.state != scheduled {
		return false
	}
	sub.state = canceled
	if sub.timer != nil {
		sub.timer.Stop()
	}
	close(sub.done)
	return true
}

// Wait blocks until the submission settles or ctx ends.
func (sub *Submission) Wait(ctx context.Context) error {
	select {
	case <-sub.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if sub.Inserted() {
		return nil
	}
	return ErrSubmissionCanceled
}

// claim moves a scheduled submission to inserted; false if it was canceled.
func (sub *Submission) claim() bool {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.state != scheduled {
		return false
	}
	sub.state = inserted
	return true
}

// Submit validates the draft and schedules its insertion at the head of the
// feed after the submit delay. Invalid input returns a
// *validator.ValidationError and touches nothing.
//
// Canceling ctx, or the returned handle, before the delay elapses drops the
// submission without mutating the feed or notifying listeners.
func (s *Service) Submit(ctx context.Context, title, content string, authorID int64) (*Submission, error) {
	if err := validator.Validate(title, content); err != nil {
		return nil, err
	}

	sub := &Submission{
		id: uuid.NewString(),
		post: models.Post{
			ID:        s.ids.Next(),
			Title:     title,
			Content:   content,
			AuthorID:  authorID,
			CreatedAt: s.now(),
			Pending:   true,
		},
		done: make(chan struct{}),
	}

	s.submitting.Add(1)
	go func() {
		<-sub.done
		s.submitting.Add(-1)
	}()

	sub.mu.Lock()
	sub.timer = time.AfterFunc(s.delay, func() { s.insert(sub) })
	sub.mu.Unlock()

	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				if sub.Cancel() {
					logg.Info("feedsync", "Submission canceled by caller context")
				}
			case <-sub.done:
			}
		}()
	}

	logg.Debug("feedsync", "Submission scheduled "+sub.id)
	return sub, nil
}

func (s *Service) insert(sub *Submission) {
	if !sub.claim() {
		return
	}
	s.feed.InsertAtHead(sub.post)
	post := sub.post
	s.notify(Event{Kind: Inserted, Post: &post, Count: 1, At: s.now()})
	close(sub.done)

	logg.Info("feedsync", "Locally authored post inserted at head")
}
