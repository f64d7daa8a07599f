// Package queue is a thin RabbitMQ client for one durable work queue.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrPermanent marks a delivery that must not be requeued.
var ErrPermanent = errors.New("queue: permanent failure")

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

func New(url, queueName string) (*Client, error) {
	const op = "queue.New"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Client{conn: conn, channel: ch, queue: q}, nil
}

// Publish sends v as a persistent JSON message.
func (c *Client) Publish(ctx context.Context, v any) error {
	const op = "queue.Publish"

	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = c.channel.PublishWithContext(ctx, "", c.queue.Name, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Consume delivers messages to handle until ctx is cancelled or the channel
// closes. A nil error acks; ErrPermanent nacks without requeue; any other
// error nacks with requeue.
func (c *Client) Consume(ctx context.Context, consumer string, handle func(ctx context.Context, body []byte) error) error {
	const op = "queue.Consume"

	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	deliveries, err := c.channel.Consume(c.queue.Name, consumer, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("%s: delivery channel closed", op)
			}
			err := handle(ctx, d.Body)
			switch {
			case err == nil:
				_ = d.Ack(false)
			case errors.Is(err, ErrPermanent):
				_ = d.Nack(false, false)
			default:
				_ = d.Nack(false, true)
			}
		}
	}
}

func (c *Client) Close() {
	_ = c.channel.Close()
	_ = c.conn.Close()
}
