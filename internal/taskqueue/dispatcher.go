package taskqueue

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sender delivers a notification to a device token.
type Sender interface {
	Send(ctx context.Context, token, title, body string) error
}

// HistoryWriter appends to the per-user notification history log.
type HistoryWriter interface {
	Append(ctx context.Context, userID, title, body, kind string) error
}

// DispatcherConfig configures the polling loop.
type DispatcherConfig struct {
	PollInterval time.Duration
	Logger       *zap.Logger
}

// Dispatcher polls the queue for due tasks and fires them. Each task gets at
// most one delivery attempt: the task is acked whether or not the push send
// succeeds, so a flaky downstream never causes repeat notifications.
type Dispatcher struct {
	queue    Queue
	sender   Sender
	history  HistoryWriter
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewDispatcher builds a dispatcher over the queue.
func NewDispatcher(queue Queue, sender Sender, history HistoryWriter, cfg DispatcherConfig) *Dispatcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 15 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Dispatcher{
		queue:    queue,
		sender:   sender,
		history:  history,
		interval: cfg.PollInterval,
		logger:   cfg.Logger,
	}
}

// Start begins polling. Safe to call once.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	ctx, d.cancel = context.WithCancel(ctx)
	d.done = make(chan struct{})
	d.started = true
	go d.loop(ctx)
	d.logger.Sugar().Infow("dispatcher started", "interval", d.interval)
}

// Stop cancels the loop and waits for it to exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		return
	}
	d.cancel()
	done := d.done
	d.mu.Unlock()
	<-done
	d.logger.Sugar().Infow("dispatcher stopped")
}

func (d *Dispatcher) loop(ctx context.Context) {
	defer close(d.done)
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Tick(ctx, time.Now())
		}
	}
}

// Tick processes everything due at now. Exported so tests and the admin
// surface can drive the dispatcher without waiting for the ticker.
func (d *Dispatcher) Tick(ctx context.Context, now time.Time) {
	due, err := d.queue.Due(ctx, now)
	if err != nil {
		d.logger.Sugar().Errorw("failed to list due tasks", "error", err)
		return
	}

	for _, task := range due {
		d.fire(ctx, task)
	}
}

func (d *Dispatcher) fire(ctx context.Context, task Task) {
	p := task.Payload

	if err := d.history.Append(ctx, p.UserID, p.Title, p.Body, "reminder"); err != nil {
		d.logger.Sugar().Errorw("failed to record notification history", "task", task.Name, "user", p.UserID, "error", err)
	}

	if err := d.sender.Send(ctx, p.DeliveryToken, p.Title, p.Body); err != nil {
		d.logger.Sugar().Errorw("push delivery failed", "task", task.Name, "user", p.UserID, "error", err)
	} else {
		d.logger.Sugar().Infow("notification delivered", "task", task.Name, "user", p.UserID)
	}

	// Ack regardless of the send outcome: at most one delivery attempt.
	if err := d.queue.Ack(ctx, task.Name); err != nil {
		d.logger.Sugar().Errorw("failed to ack task", "task", task.Name, "error", err)
	}
}
