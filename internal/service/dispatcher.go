package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
	"github.com/prithvianilk/my-besto-friendo/internal/biz/repo"
	"github.com/prithvianilk/my-besto-friendo/internal/biz/usecase"
	"github.com/prithvianilk/my-besto-friendo/internal/wideevent"
)

// MessageHandler processes one inbound message inside a resolution cycle.
type MessageHandler interface {
	Name() string
	OnMessage(ctx context.Context, ec *wideevent.Context, msg domain.WhatsAppMessage) error
}

const defaultQueueSize = 64

// Dispatcher routes each participant's messages through a single
// consumer goroutine, so two resolution cycles for the same participant
// never overlap in-process. Each delivered message runs one wide-event
// scope: window append, then every registered handler in order.
type Dispatcher struct {
	windows  repo.WindowRepo
	handlers []MessageHandler
	sink     wideevent.Sink
	logger   *slog.Logger

	// Transient handler failures are retried before the message is
	// dropped, mirroring a broker's fixed-backoff redelivery policy.
	maxAttempts  int
	retryBackoff time.Duration

	mu     sync.Mutex
	queues map[string]chan domain.WhatsAppMessage
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher delivering to the given handlers
// in registration order.
func NewDispatcher(windows repo.WindowRepo, sink wideevent.Sink, logger *slog.Logger, handlers ...MessageHandler) *Dispatcher {
	return &Dispatcher{
		windows:      windows,
		handlers:     handlers,
		sink:         sink,
		logger:       logger,
		maxAttempts:  3,
		retryBackoff: time.Second,
		queues:       make(map[string]chan domain.WhatsAppMessage),
	}
}

// Dispatch enqueues the message on its participant's queue, creating
// the queue and its consumer on first use. Returns false after Close.
func (d *Dispatcher) Dispatch(msg domain.WhatsAppMessage) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	queue, ok := d.queues[msg.ParticipantID]
	if !ok {
		queue = make(chan domain.WhatsAppMessage, defaultQueueSize)
		d.queues[msg.ParticipantID] = queue
		d.wg.Add(1)
		go d.consume(msg.ParticipantID, queue)
	}
	d.mu.Unlock()

	queue <- msg
	return true
}

// Close stops accepting messages, drains every queue and waits for the
// consumers to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, queue := range d.queues {
		close(queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) consume(participantID string, queue <-chan domain.WhatsAppMessage) {
	defer d.wg.Done()
	for msg := range queue {
		d.process(msg)
	}
	d.logger.Debug("participant queue drained", slog.String("participant", participantID))
}

func (d *Dispatcher) process(msg domain.WhatsAppMessage) {
	receivedAt := time.Now()

	// The window grows once per delivery, not once per attempt.
	d.windows.Add(msg)

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		err := d.runCycle(msg, receivedAt)
		if err == nil {
			return
		}
		d.logger.Error("resolution cycle failed",
			slog.String("participant", msg.ParticipantID),
			slog.Int("attempt", attempt),
			slog.Any("error", err))
		if attempt < d.maxAttempts {
			time.Sleep(d.retryBackoff)
		}
	}
}

func (d *Dispatcher) runCycle(msg domain.WhatsAppMessage, receivedAt time.Time) error {
	cycleID := uuid.NewString()
	return wideevent.Run(d.sink, "message.resolve", func(ec *wideevent.Context) error {
		ec.Put("cycleId", cycleID)
		ec.Enrich(usecase.TraceKey, usecase.CommitmentTrace{
			ReceivedAt: &receivedAt,
		})

		for _, handler := range d.handlers {
			if err := handler.OnMessage(context.Background(), ec, msg); err != nil {
				return fmt.Errorf("%s: %w", handler.Name(), err)
			}
		}
		return nil
	})
}
