package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const saleRecordedQueue = "sale.recorded"

// AMQPPublisher publishes domain events to RabbitMQ. Connections are opened
// per publish; callers treat failures as non-fatal and only log them.
type AMQPPublisher struct {
	URL string
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{URL: url}
}

func (p *AMQPPublisher) PublishSaleRecorded(ctx context.Context, event SaleRecordedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	channel, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = channel.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := channel.QueueDeclare(saleRecordedQueue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return channel.PublishWithContext(ctx,
		"",
		saleRecordedQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
