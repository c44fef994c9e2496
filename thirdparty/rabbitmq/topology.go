package rabbitmq

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

const (
	otpDeliveryExchange   = "otp_delivery_exchange"
	otpDeliveryQueue      = "otp_delivery_queue"
	otpDeliveryRoutingKey = "otp_delivery"
)

func dial(host string, port int, user, password string) (*amqp091.Connection, *amqp091.Channel, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, password, host, port)
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return nil, nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, nil, err
	}
	return conn, channel, nil
}

// declareTopology is idempotent; publisher and consumer both run it on startup.
func declareTopology(channel *amqp091.Channel) error {
	err := channel.ExchangeDeclare(
		otpDeliveryExchange, // name
		"direct",            // type
		true,                // durable
		false,               // auto-delete
		false,               // internal
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		return err
	}

	_, err = channel.QueueDeclare(
		otpDeliveryQueue, // name
		true,             // durable
		false,            // auto-delete
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		return err
	}

	return channel.QueueBind(
		otpDeliveryQueue,      // queue name
		otpDeliveryRoutingKey, // routing key
		otpDeliveryExchange,   // exchange
		false,                 // no-wait
		nil,                   // arguments
	)
}
