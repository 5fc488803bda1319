package appkafka

import (
	"context"
	"encoding/json"
	"time"

	"example.com/feedcore/internal/feedsync"
	"example.com/feedcore/internal/logger"
	"github.com/segmentio/kafka-go"
)

var logg = logger.New()

// FeedEventMessage is the payload published for every feed mutation.
type FeedEventMessage struct {
	Kind   string    `json:"kind"`
	PostID *int64    `json:"post_id,omitempty"`
	Count  int       `json:"count"`
	At     time.Time `json:"at"`
}

// EventPublisher forwards feed events to Kafka from a single goroutine so
// feed listeners never wait on the broker.
type EventPublisher struct {
	writer KafkaWriter
	queue  chan feedsync.Event
}

func NewEventPublisher(w KafkaWriter, queueSize int) *EventPublisher {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &EventPublisher{
		writer: w,
		queue:  make(chan feedsync.Event, queueSize),
	}
}

// Listener enqueues an event; it drops the event when the queue is full.
func (p *EventPublisher) Listener() feedsync.Listener {
	return func(ev feedsync.Event) {
		select {
		case p.queue <- ev:
		default:
			logg.Warn("broker", "Feed event queue full, dropping "+string(ev.Kind)+" event", nil)
		}
	}
}

// Run publishes queued events until ctx is done.
func (p *EventPublisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-p.queue:
			if err := p.publish(ctx, ev); err != nil {
				logg.Error("broker", "Failed to publish feed event", err)
			}
		}
	}
}

func (p *EventPublisher) publish(ctx context.Context, ev feedsync.Event) error {
	msg := FeedEventMessage{Kind: string(ev.Kind), Count: ev.Count, At: ev.At}
	if ev.Post != nil {
		id := ev.Post.ID
		msg.PostID = &id
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Kind),
		Value: data,
	})
}
