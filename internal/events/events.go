package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"wscmeso/mesocycle-planner/internal/config"

	"github.com/streadway/amqp"
)

// MesocycleEvent is published after a lifecycle transition is stored.
type MesocycleEvent struct {
	MesocycleID string    `json:"mesocycleId"`
	UserID      string    `json:"userId"`
	Action      string    `json:"action"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// RoutingKey is "mesocycle.<action>".
func (e MesocycleEvent) RoutingKey() string {
	return "mesocycle." + e.Action
}

// Publisher delivers domain events to subscribers.
type Publisher interface {
	PublishMesocycleEvent(ctx context.Context, e MesocycleEvent) error
	Close() error
}

// AMQPPublisher publishes JSON messages to a durable topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex // amqp channels are not safe for concurrent publishing
	ch *amqp.Channel
}

// NewAMQPPublisher dials the broker, retrying cfg.Retries times, and declares
// the exchange.
func NewAMQPPublisher(cfg config.AMQPConfig) (*AMQPPublisher, error) {
	const op = "events.NewAMQPPublisher"

	conn, err := connect(cfg.URL, max(cfg.Retries, 1), cfg.Delay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: cfg.Exchange}, nil
}

func connect(url string, retries int, delay time.Duration) (*amqp.Connection, error) {
	var (
		conn *amqp.Connection
		err  error
	)
	for range retries {
		conn, err = amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		time.Sleep(delay)
	}
	return nil, err
}

// PublishMesocycleEvent publishes e as a persistent JSON message.
func (p *AMQPPublisher) PublishMesocycleEvent(_ context.Context, e MesocycleEvent) error {
	return p.publish(e.RoutingKey(), e)
}

func (p *AMQPPublisher) publish(routingKey string, message any) error {
	const op = "events.publish"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	chErr := p.ch.Close()
	if err := p.conn.Close(); err != nil {
		return err
	}
	return chErr
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishMesocycleEvent(context.Context, MesocycleEvent) error { return nil }

func (Nop) Close() error { return nil }
