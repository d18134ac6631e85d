package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"academy-service/internal/event"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var errMalformed = errors.New("malformed mail event")

// Consumer delivers mail queued by QueueMailer.
type Consumer struct {
	conn      *amqp091.Connection
	channel   *amqp091.Channel
	exchange  string
	queueName string
	mailer    Mailer
	logger    *zap.Logger
	enabled   bool
}

// NewConsumer connects to RabbitMQ. An empty URI yields a disabled
// consumer whose Run just waits for cancellation.
func NewConsumer(rabbitURI, exchange, queueName string, mailer Mailer, logger *zap.Logger) (*Consumer, error) {
	c := &Consumer{
		exchange:  exchange,
		queueName: queueName,
		mailer:    mailer,
		logger:    logger,
	}
	if rabbitURI == "" {
		logger.Warn("RabbitMQ URI is empty, mail consumption is disabled")
		return c, nil
	}

	conn, err := amqp091.Dial(rabbitURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	err = channel.Qos(
		10,    // prefetch count
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	c.conn = conn
	c.channel = channel
	c.enabled = true
	return c, nil
}

// Run consumes until ctx is cancelled or the broker closes the channel.
func (c *Consumer) Run(ctx context.Context) error {
	if !c.enabled {
		<-ctx.Done()
		return nil
	}

	if err := event.DeclareExchange(c.channel, c.exchange); err != nil {
		return err
	}
	_, err := c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	err = c.channel.QueueBind(
		c.queueName,                          // queue name
		string(event.EventTypeMailRequested), // routing key
		c.exchange,                           // exchange
		false,                                // no-wait
		nil,                                  // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", c.queueName, err)
	}

	msgs, err := c.channel.ConsumeWithContext(ctx,
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.logger.Info("mail consumer started", zap.String("queue", c.queueName))
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("mail delivery channel closed")
			}
			if err := c.handle(ctx, msg.Body); err != nil {
				c.logger.Error("error delivering mail", zap.Error(err))
				requeue := !errors.Is(err, errMalformed)
				if err := msg.Nack(false, requeue); err != nil {
					c.logger.Error("error NACKing message", zap.Error(err))
				}
				continue
			}
			if err := msg.Ack(false); err != nil {
				c.logger.Error("error ACKing message", zap.Error(err))
			}
		}
	}
}

func (c *Consumer) handle(ctx context.Context, body []byte) error {
	var e event.MailRequestedEvent
	if err := json.Unmarshal(body, &e); err != nil {
		return fmt.Errorf("%w: %w", errMalformed, err)
	}
	return c.mailer.Send(ctx, Message{From: e.From, To: e.To, Subject: e.Subject, Body: e.Body})
}

func (c *Consumer) Close() error {
	if !c.enabled {
		return nil
	}
	if err := c.channel.Close(); err != nil {
		c.logger.Warn("error closing RabbitMQ channel", zap.Error(err))
	}
	return c.conn.Close()
}
