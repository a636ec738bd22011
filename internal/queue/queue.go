package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxRetries is how many times a failed job is redelivered before it is dropped.
const DefaultMaxRetries = 3

type Handler func(ctx context.Context, payload []byte) error

// Queue is implemented by the in-memory queue and by AMQPQueue.
type Queue interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(topic string, handler Handler) error
}

// InMemoryQueue delivers jobs to in-process subscribers with retry
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]Handler
	logger   *zap.Logger

	MaxRetries int
	Backoff    time.Duration
}

func NewInMemoryQueue(logger *zap.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]Handler),
		logger:     logger,
		MaxRetries: DefaultMaxRetries,
		Backoff:    500 * time.Millisecond,
	}
}

type job struct {
	topic      string
	payload    []byte
	retryCount int
}

// Publish hands payload to every subscriber of topic asynchronously.
func (q *InMemoryQueue) Publish(_ context.Context, topic string, payload []byte) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		go q.processJob(handler, job{topic: topic, payload: payload})
	}
	return nil
}

func (q *InMemoryQueue) processJob(handler Handler, j job) {
	log := q.logger.With(zap.String("topic", j.topic))
	for {
		err := handler(context.Background(), j.payload)
		if err == nil {
			log.Debug("job processed")
			return
		}

		j.retryCount++
		if j.retryCount > q.MaxRetries {
			log.Error("job permanently failed", zap.Int("attempts", j.retryCount), zap.Error(err))
			return
		}
		log.Warn("job failed, retrying", zap.Int("attempt", j.retryCount), zap.Error(err))

		// linear backoff
		time.Sleep(time.Duration(j.retryCount) * q.Backoff)
	}
}

func (q *InMemoryQueue) Subscribe(topic string, handler Handler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

var _ Queue = (*InMemoryQueue)(nil)
