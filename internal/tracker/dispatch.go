package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
)

const (
	DefaultWorkers   = 2
	DefaultQueueSize = 256
	taskTimeout      = 10 * time.Second
)

// Task asks for the leaderboard entry of (UserID, Day) to be rebuilt.
type Task struct {
	UserID int64
	Day    calendar.Date
}

// Dispatcher runs recompute tasks on a fixed pool of workers fed by a
// bounded queue. Enqueue never blocks: when the queue is full the task is
// dropped and logged. Task errors are logged and never returned to callers.
type Dispatcher struct {
	mu      sync.RWMutex
	run     func(context.Context, Task) error
	queue   chan Task
	workers int
	logger  *slog.Logger
	stopped bool
	wg      sync.WaitGroup
}

func NewDispatcher(run func(context.Context, Task) error, workers, queueSize int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		run:     run,
		queue:   make(chan Task, queueSize),
		workers: workers,
		logger:  logger.With("component", "dispatcher"),
	}
}

// Start launches the workers. Tasks run detached from ctx's cancellation so
// that Stop can drain the queue during shutdown.
func (d *Dispatcher) Start(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for t := range d.queue {
				d.execute(base, t)
			}
		}()
	}
	d.logger.Info("dispatcher started", "workers", d.workers, "queue", cap(d.queue))
}

func (d *Dispatcher) execute(ctx context.Context, t Task) {
	ctx, cancel := context.WithTimeout(ctx, taskTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("recompute panicked", "user_id", t.UserID, "date", t.Day.String(), "panic", r)
		}
	}()

	if err := d.run(ctx, t); err != nil {
		d.logger.Error("recompute failed", "user_id", t.UserID, "date", t.Day.String(), "error", err)
	}
}

// Dispatch queues t without blocking. It reports whether t was accepted.
func (d *Dispatcher) Dispatch(t Task) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.logger.Warn("dispatcher stopped, dropping task", "user_id", t.UserID, "date", t.Day.String())
		return false
	}
	select {
	case d.queue <- t:
		return true
	default:
		d.logger.Warn("recompute queue full, dropping task", "user_id", t.UserID, "date", t.Day.String())
		return false
	}
}

// Enqueue implements RecomputeQueue.
func (d *Dispatcher) Enqueue(userID int64, day calendar.Date) {
	d.Dispatch(Task{UserID: userID, Day: day})
}

// Stop refuses new tasks, lets the workers finish everything already
// queued, and waits for them to exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	d.logger.Info("dispatcher stopped")
}
