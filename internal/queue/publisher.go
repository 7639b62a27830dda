package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"stockroom/internal/logger"
)

const stockQueueName = "stock.events"

// Publisher sends stock events to the broker. A nil Publisher (or one with
// an empty URL) silently drops events so the API keeps working without a
// broker in development.
type Publisher struct {
	URL string
}

func NewPublisher(url string) *Publisher { return &Publisher{URL: url} }

// Publish delivers a single event to the stock.events queue. The connection
// is established per publish and the message is marked persistent. Errors
// are logged and returned; callers treat publishing as fire-and-forget and
// never fail the originating request over it.
func (p *Publisher) Publish(ctx context.Context, ev StockEvent) error {
	if p == nil || p.URL == "" {
		return nil
	}
	log := logger.FromContext(ctx)

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Warn().Err(err).Msg("stock events: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Msg("stock events: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(stockQueueName, true, false, false, false, nil); err != nil {
		log.Warn().Err(err).Msg("stock events: queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", stockQueueName, false, false, pub); err != nil {
		log.Warn().Err(err).Msg("stock events: publish failed")
		return err
	}
	return nil
}
