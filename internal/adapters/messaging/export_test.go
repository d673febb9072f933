package messaging

import "github.com/sony/gobreaker"

// NewBrokerWithChannel builds a broker over an arbitrary channel for tests.
func NewBrokerWithChannel(ch amqpChannel, queueName string, cb *gobreaker.CircuitBreaker) *RabbitMQBroker {
	return &RabbitMQBroker{ch: ch, queueName: queueName, cb: cb}
}
