package rabbitmq

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/muhammadheryan/identity-service/model"
	"github.com/muhammadheryan/identity-service/utils/logger"
	"github.com/muhammadheryan/identity-service/utils/metrics"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Sender is whatever actually delivers the code (normally notifier.Direct).
type Sender interface {
	Dispatch(ctx context.Context, d *model.OtpDelivery) error
}

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	sender  Sender
}

func NewConsumer(host string, port int, user, password string, sender Sender) (*Consumer, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}
	return &Consumer{conn: conn, channel: channel, sender: sender}, nil
}

func (c *Consumer) Start(ctx context.Context) error {
	// Set QoS to 1 - process one message at a time
	if err := c.channel.Qos(1, 0, false); err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		otpDeliveryQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c.handle(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *Consumer) handle(ctx context.Context, msg amqp091.Delivery) {
	outcome := HandleDelivery(ctx, c.sender, msg.Body, msg.Redelivered)
	switch outcome {
	case OutcomeRetry:
		_ = msg.Nack(false, true)
	default:
		_ = msg.Ack(false)
	}
}

type Outcome int

const (
	OutcomeDelivered Outcome = iota
	OutcomeDropped
	OutcomeRetry
)

// HandleDelivery decodes and sends one queued delivery. A failed send is retried once, then dropped.
func HandleDelivery(ctx context.Context, sender Sender, body []byte, redelivered bool) Outcome {
	var d model.OtpDelivery
	if err := json.Unmarshal(body, &d); err != nil {
		logger.Error("[OtpConsumer] err unmarshal message", zap.Error(err))
		return OutcomeDropped
	}

	if !d.ExpiresAt.IsZero() && time.Now().After(d.ExpiresAt) {
		logger.Warn("[OtpConsumer] dropping expired delivery",
			zap.String("account_id", d.AccountID), zap.String("channel", string(d.Channel)))
		return OutcomeDropped
	}

	if err := sender.Dispatch(ctx, &d); err != nil {
		metrics.DeliveryFailed(string(d.Channel))
		logger.Error("[OtpConsumer] err dispatch",
			zap.String("account_id", d.AccountID),
			zap.String("channel", string(d.Channel)),
			zap.Bool("redelivered", redelivered),
			zap.Error(err))
		if redelivered {
			return OutcomeDropped
		}
		return OutcomeRetry
	}

	logger.Info("[OtpConsumer] otp delivered",
		zap.String("account_id", d.AccountID), zap.String("channel", string(d.Channel)))
	return OutcomeDelivered
}

func formatMillis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
