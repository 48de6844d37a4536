package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	DefaultTopic = "chat.membership"

	defaultQueueSize    = 1024
	defaultWriteTimeout = 5 * time.Second
)

var (
	ErrPublisherClosed = errors.New("kafka: publisher closed")
	ErrQueueFull       = errors.New("kafka: event queue full")
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON, keyed by room id so that one room's
// events stay ordered within a partition. Publish only enqueues; a single
// background writer delivers the queue in order, so a broker outage never
// holds up the request that produced the event.
type KafkaPublisher struct {
	w       messageWriter
	logger  *slog.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan kafka.Message
	done   chan struct{}
}

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
	return newKafkaPublisher(w, logger, defaultQueueSize, defaultWriteTimeout)
}

func newKafkaPublisher(w messageWriter, logger *slog.Logger, queueSize int, timeout time.Duration) *KafkaPublisher {
	p := &KafkaPublisher{
		w:       w,
		logger:  logger,
		timeout: timeout,
		queue:   make(chan kafka.Message, queueSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish hands the event to the background writer. It fails only when the
// queue is full or the publisher is closed.
func (p *KafkaPublisher) Publish(_ context.Context, ev MembershipEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(ev.RoomID),
		Value: data,
		Time:  ev.At,
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	select {
	case p.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *KafkaPublisher) run() {
	defer close(p.done)

	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		err := p.w.WriteMessages(ctx, msg)
		cancel()

		if err != nil {
			p.logger.Error("failed to deliver membership event",
				slog.String("room_id", string(msg.Key)),
				slog.Any("error", err),
			)
		}
	}
}

// Close stops accepting events, drains the queue and closes the writer.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.w.Close()
}
