package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/smtp"
	"testing"

	"academy-service/internal/config"
	"academy-service/internal/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingMailer struct {
	sent []Message
	err  error
}

func (r *recordingMailer) Send(_ context.Context, msg Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestAcceptance(t *testing.T) {
	msg := Acceptance("academy@jedi.example", "Luke", "luke@jedi.example", "Yoda")

	assert.Equal(t, "Congratulations!", msg.Subject)
	assert.Equal(t, "Luke, you have been accepted as a padawan of Jedi Yoda!", msg.Body)
	assert.Equal(t, []string{"luke@jedi.example"}, msg.To)
	assert.Equal(t, "academy@jedi.example", msg.From)
}

func TestSMTPMailer(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "mail.example", Port: "2525", Username: "u", Password: "p", From: "default@jedi.example"})

	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotBody string
	)
	m.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotBody = addr, from, to, string(msg)
		return nil
	}

	err := m.Send(context.Background(), Message{To: []string{"luke@jedi.example"}, Subject: "Hi", Body: "Welcome"})
	require.NoError(t, err)

	assert.Equal(t, "mail.example:2525", gotAddr)
	assert.Equal(t, "default@jedi.example", gotFrom)
	assert.Equal(t, []string{"luke@jedi.example"}, gotTo)
	assert.Contains(t, gotBody, "Subject: Hi\r\n")
	assert.Contains(t, gotBody, "\r\n\r\nWelcome\r\n")
}

func TestSMTPMailerFailure(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "mail.example", Port: "25"})
	m.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := m.Send(context.Background(), Message{To: []string{"a@b.c"}})
	assert.ErrorContains(t, err, "connection refused")
}

func TestQueueMailerPublishes(t *testing.T) {
	pub := event.NewMockPublisher()
	m := NewQueueMailer(pub)

	require.NoError(t, m.Send(context.Background(), Acceptance("f@x", "Luke", "luke@x", "Yoda")))

	require.Len(t, pub.Events, 1)
	e, ok := pub.Events[0].(*event.MailRequestedEvent)
	require.True(t, ok)
	assert.Equal(t, event.EventTypeMailRequested, e.Type)
	assert.Equal(t, []string{"luke@x"}, e.To)
}

func TestConsumerHandleDelivers(t *testing.T) {
	mailer := &recordingMailer{}
	c := &Consumer{mailer: mailer, logger: zap.NewNop()}

	body, err := json.Marshal(&event.MailRequestedEvent{
		BaseEvent: event.NewBaseEvent(event.EventTypeMailRequested),
		From:      "f@x",
		To:        []string{"luke@x"},
		Subject:   "Congratulations!",
		Body:      "hello",
	})
	require.NoError(t, err)

	require.NoError(t, c.handle(context.Background(), body))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Congratulations!", mailer.sent[0].Subject)

	err = c.handle(context.Background(), []byte("{"))
	assert.ErrorIs(t, err, errMalformed)
}

func TestDisabledConsumerStopsOnCancel(t *testing.T) {
	c, err := NewConsumer("", "academy.events", "academy.mail", &recordingMailer{}, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, c.Run(ctx))
	assert.NoError(t, c.Close())
}

func TestNewMailer(t *testing.T) {
	logger := zap.NewNop()
	pub := event.NewMockPublisher()

	m, err := NewMailer(config.MailConfig{Transport: TransportLog}, pub, logger)
	require.NoError(t, err)
	assert.IsType(t, &LogMailer{}, m)

	m, err = NewMailer(config.MailConfig{Transport: TransportSMTP}, pub, logger)
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	m, err = NewMailer(config.MailConfig{Transport: TransportQueue}, pub, logger)
	require.NoError(t, err)
	assert.IsType(t, &QueueMailer{}, m)

	_, err = NewMailer(config.MailConfig{Transport: "pigeon"}, pub, logger)
	assert.Error(t, err)
}

func TestQueueTransportNeedsBroker(t *testing.T) {
	logger := zap.NewNop()
	disabled, err := event.NewEventPublisher("", "academy.events", logger)
	require.NoError(t, err)

	_, err = NewMailer(config.MailConfig{Transport: TransportQueue}, disabled, logger)
	assert.ErrorIs(t, err, ErrNoBroker)

	_, err = NewMailer(config.MailConfig{Transport: TransportQueue}, nil, logger)
	assert.ErrorIs(t, err, ErrNoBroker)

	err = NewQueueMailer(disabled).Send(context.Background(), Acceptance("f@x", "Luke", "luke@x", "Yoda"))
	assert.ErrorIs(t, err, ErrNoBroker)
}
