package rabbitmq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/muhammadheryan/identity-service/model"
	"github.com/rabbitmq/amqp091-go"
)

// Publisher queues OTP deliveries for the worker. It satisfies notifier.Dispatcher.
type Publisher struct {
	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewPublisher(host string, port int, user, password string) (*Publisher, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, channel: channel}, nil
}

func (p *Publisher) Dispatch(ctx context.Context, d *model.OtpDelivery) error {
	body, err := json.Marshal(d)
	if err != nil {
		return err
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	}
	// a code that outlives its own expiry is useless to the recipient
	if ttl := time.Until(d.ExpiresAt); ttl > 0 {
		publishing.Expiration = formatMillis(ttl)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(
		ctx,
		otpDeliveryExchange,   // exchange
		otpDeliveryRoutingKey, // routing key
		false,                 // mandatory
		false,                 // immediate
		publishing,
	)
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
