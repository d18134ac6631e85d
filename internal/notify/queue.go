package notify

import (
	"context"
	"errors"
	"fmt"

	"academy-service/internal/event"
)

// ErrNoBroker means queued mail was requested but the publisher is not
// connected to RabbitMQ.
var ErrNoBroker = errors.New("queued mail needs a RabbitMQ broker")

// connected reports whether p delivers to a broker. Publishers that cannot
// tell are trusted.
func connected(p event.Publisher) bool {
	if p == nil {
		return false
	}
	if b, ok := p.(interface{ Enabled() bool }); ok {
		return b.Enabled()
	}
	return true
}

// QueueMailer hands mail to the message broker; a Consumer delivers it.
type QueueMailer struct {
	publisher event.Publisher
}

func NewQueueMailer(publisher event.Publisher) *QueueMailer {
	return &QueueMailer{publisher: publisher}
}

func (q *QueueMailer) Send(ctx context.Context, msg Message) error {
	if !connected(q.publisher) {
		return fmt.Errorf("queue mail: %w", ErrNoBroker)
	}
	e := &event.MailRequestedEvent{
		BaseEvent: event.NewBaseEvent(event.EventTypeMailRequested),
		From:      msg.From,
		To:        msg.To,
		Subject:   msg.Subject,
		Body:      msg.Body,
	}
	if err := q.publisher.Publish(ctx, e); err != nil {
		return fmt.Errorf("queue mail: %w", err)
	}
	return nil
}
