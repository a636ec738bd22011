package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const retryHeader = "x-retry-count"

// channel is the part of *amqp.Channel the queue uses.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// AMQPQueue publishes to and consumes from durable RabbitMQ queues named by topic.
type AMQPQueue struct {
	conn   *amqp.Connection
	ch     channel
	mu     sync.Mutex // amqp.Channel is not safe for concurrent publishing
	logger *zap.Logger

	MaxRetries int
}

func DialAMQP(url string, logger *zap.Logger) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	q := newAMQPQueue(ch, logger)
	q.conn = conn
	return q, nil
}

func newAMQPQueue(ch channel, logger *zap.Logger) *AMQPQueue {
	return &AMQPQueue{ch: ch, logger: logger, MaxRetries: DefaultMaxRetries}
}

func (q *AMQPQueue) declare(topic string) error {
	_, err := q.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	return err
}

func (q *AMQPQueue) Publish(_ context.Context, topic string, payload []byte) error {
	return q.publish(topic, payload, 0)
}

func (q *AMQPQueue) publish(topic string, payload []byte, retryCount int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.declare(topic); err != nil {
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}
	return q.ch.Publish("", topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Headers:      amqp.Table{retryHeader: int32(retryCount)},
		Body:         payload,
	})
}

// Subscribe consumes topic until the connection closes. A failed delivery is
// republished with an incremented x-retry-count and dropped after MaxRetries.
func (q *AMQPQueue) Subscribe(topic string, handler Handler) error {
	q.mu.Lock()
	if err := q.declare(topic); err != nil {
		q.mu.Unlock()
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}
	msgs, err := q.ch.Consume(
		topic,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	q.mu.Unlock()
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	go func() {
		for d := range msgs {
			q.deliver(topic, d, handler)
		}
		q.logger.Info("consumer stopped", zap.String("topic", topic))
	}()
	return nil
}

func (q *AMQPQueue) deliver(topic string, d amqp.Delivery, handler Handler) {
	err := handler(context.Background(), d.Body)
	if err == nil {
		d.Ack(false)
		return
	}

	retryCount := RetryCount(d.Headers)
	log := q.logger.With(zap.String("topic", topic), zap.Int("retry_count", retryCount), zap.Error(err))
	if retryCount >= q.MaxRetries {
		log.Error("job permanently failed")
		d.Ack(false)
		return
	}

	if perr := q.publish(topic, d.Body, retryCount+1); perr != nil {
		log.Error("requeue failed", zap.NamedError("publish_error", perr))
		d.Nack(false, true)
		return
	}
	log.Warn("job failed, requeued")
	d.Ack(false)
}

func (q *AMQPQueue) Close() error {
	err := q.ch.Close()
	if q.conn != nil {
		if cerr := q.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// RetryCount reads x-retry-count whatever integer type the broker decoded it as.
func RetryCount(headers amqp.Table) int {
	switch v := headers[retryHeader].(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	default:
		return 0
	}
}

var _ Queue = (*AMQPQueue)(nil)
