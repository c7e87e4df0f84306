// Package dispatch feeds inbound events to the orchestrator from a pool of
// workers. Cross-claimant events run concurrently; the orchestrator's key
// lock serializes same-claimant events, so the queue needs no ordering of
// its own.
package dispatch

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mkoval/claimflow/internal/ingest"
)

// Handler processes one inbound event. The orchestrator satisfies this.
type Handler interface {
	HandleEvent(ctx context.Context, ev ingest.Event) error
}

// Queue is a fixed-size worker pool over inbound events.
type Queue struct {
	workers    int
	events     chan ingest.Event
	handler    Handler
	log        *zap.Logger
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once

	// mu guards closed so a Submit racing with Drain never sends on the
	// closed channel.
	mu     sync.RWMutex
	closed bool
}

// NewQueue creates an event queue with the given worker count.
func NewQueue(workers int, handler Handler, log *zap.Logger) *Queue {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Queue{
		workers:    workers,
		events:     make(chan ingest.Event, workers*2),
		handler:    handler,
		log:        log,
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers.
func (q *Queue) Start() {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()

	for {
		select {
		case <-q.ctx.Done():
			return
		case ev, ok := <-q.events:
			if !ok {
				return
			}
			if err := q.handler.HandleEvent(q.ctx, ev); err != nil {
				q.log.Error("event processing failed",
					zap.String("sender", ev.Sender),
					zap.Error(err))
			}
		}
	}
}

// Submit enqueues one event. Blocks when the queue is full; drops the event
// after Drain or Shutdown.
func (q *Queue) Submit(ev ingest.Event) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return
	}
	select {
	case <-q.ctx.Done():
	case q.events <- ev:
	}
}

// Drain stops accepting events and waits for in-flight work to finish.
func (q *Queue) Drain() {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		close(q.events)
		q.mu.Unlock()
	})
	q.wg.Wait()
}

// Shutdown cancels in-flight work and returns once the workers exit.
func (q *Queue) Shutdown() {
	q.cancelFunc()
	q.wg.Wait()
}
