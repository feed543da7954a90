package messaging

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ErrUnknownRoutingKey is returned by handlers for events they do not process.
// Such deliveries are acked and dropped.
var ErrUnknownRoutingKey = errors.New("unknown routing key")

// Handler processes one delivery body
type Handler interface {
	Handle(ctx context.Context, routingKey string, body []byte) error
}

type ConsumerConfig struct {
	URL         string
	Exchange    string
	Queue       string
	Bindings    []string
	Prefetch    int
	ConsumerTag string
}

// Consumer binds a durable queue to the event exchange and feeds deliveries
// to a Handler. Failed deliveries are nacked and requeued.
type Consumer struct {
	cfg     ConsumerConfig
	handler Handler
	logger  *zap.Logger

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg ConsumerConfig, handler Handler, logger *zap.Logger) *Consumer {
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 8
	}
	if len(cfg.Bindings) == 0 {
		cfg.Bindings = []string{"#"}
	}
	return &Consumer{cfg: cfg, handler: handler, logger: logger.Named("consumer")}
}

// Connect dials the broker and declares the exchange, queue and bindings
func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("rabbit dial failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel failed: %w", err)
	}

	fail := func(format string, err error) error {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf(format, err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fail("declare exchange failed: %w", err)
	}
	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil)
	if err != nil {
		return fail("declare queue failed: %w", err)
	}
	for _, key := range c.cfg.Bindings {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			return fail("bind queue failed: %w", err)
		}
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return fail("set qos failed: %w", err)
	}

	c.conn = conn
	c.ch = ch
	return nil
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Run consumes until ctx is cancelled or the channel closes
func (c *Consumer) Run(ctx context.Context) error {
	if c.ch == nil {
		return errors.New("consumer is not connected")
	}
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, c.cfg.ConsumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume failed: %w", err)
	}
	return c.Drain(ctx, msgs)
}

// Drain processes deliveries from msgs until ctx is done or msgs closes
func (c *Consumer) Drain(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			c.process(ctx, d)
		}
	}
}

func (c *Consumer) process(ctx context.Context, d amqp.Delivery) {
	err := c.handler.Handle(ctx, d.RoutingKey, d.Body)
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, ErrUnknownRoutingKey):
		c.logger.Info("skip unknown key", zap.String("key", d.RoutingKey))
		_ = d.Ack(false)
	default:
		c.logger.Warn("handle failed, requeue", zap.String("key", d.RoutingKey), zap.Error(err))
		_ = d.Nack(false, true)
	}
}
