// Package notify delivers e-mail to candidates, directly over SMTP or
// through the RabbitMQ mail queue.
package notify

import (
	"context"
	"fmt"

	"academy-service/internal/config"
	"academy-service/internal/event"

	"go.uber.org/zap"
)

const (
	TransportLog   = "log"
	TransportSMTP  = "smtp"
	TransportQueue = "queue"
)

type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Acceptance is the mail telling a candidate which Jedi took them.
func Acceptance(from, candidateName, candidateEmail, jediName string) Message {
	return Message{
		From:    from,
		To:      []string{candidateEmail},
		Subject: "Congratulations!",
		Body:    fmt.Sprintf("%s, you have been accepted as a padawan of Jedi %s!", candidateName, jediName),
	}
}

// LogMailer writes mail to the log instead of sending it.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (l *LogMailer) Send(_ context.Context, msg Message) error {
	l.logger.Info("mail",
		zap.String("from", msg.From),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}

// NewMailer picks the mail transport configured by cfg.Transport.
func NewMailer(cfg config.MailConfig, publisher event.Publisher, logger *zap.Logger) (Mailer, error) {
	switch cfg.Transport {
	case TransportLog, "":
		return NewLogMailer(logger), nil
	case TransportSMTP:
		return NewSMTPMailer(cfg.SMTP), nil
	case TransportQueue:
		if !connected(publisher) {
			return nil, fmt.Errorf("mail transport %q: %w", cfg.Transport, ErrNoBroker)
		}
		return NewQueueMailer(publisher), nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Transport)
	}
}
