// Package dispatch runs the background loop that fires due reminders at a
// pluggable notifier.
package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MonksterFX/fermentation-station/internal/query"
	"github.com/MonksterFX/fermentation-station/internal/store"
)

// Notifier receives a due reminder exactly once per process lifetime.
type Notifier interface {
	Notify(ctx context.Context, reminder query.FermentReminder) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, reminder query.FermentReminder) error

// Notify implements Notifier.
func (f NotifierFunc) Notify(ctx context.Context, reminder query.FermentReminder) error {
	return f(ctx, reminder)
}

// LogNotifier writes due reminders to the structured log. It is the default
// delivery channel; push or mail channels plug in behind the same interface.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that logs each due reminder.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log_notifier")}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(ctx context.Context, reminder query.FermentReminder) error {
	n.logger.Info("reminder due",
		"reminder_id", reminder.ID,
		"ferment_id", reminder.FermentID,
		"ferment_name", reminder.FermentName,
		"title", reminder.Title,
		"text", reminder.Text,
		"due", reminder.Date)
	return nil
}

// Dispatcher periodically scans the ferment collection for incomplete
// reminders whose due time has passed and hands each to the notifier once.
type Dispatcher struct {
	ferments   store.FermentStore
	notifier   Notifier
	interval   time.Duration
	logger     *slog.Logger
	timeFunc   func() time.Time // Injectable for testing
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup

	mu         sync.Mutex
	dispatched map[uuid.UUID]struct{}
}

// NewDispatcher creates a reminder dispatcher. A non-positive interval
// defaults to one minute.
func NewDispatcher(
	ferments store.FermentStore,
	notifier Notifier,
	interval time.Duration,
	logger *slog.Logger,
) *Dispatcher {
	if interval <= 0 {
		interval = time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		ferments:   ferments,
		notifier:   notifier,
		interval:   interval,
		logger:     logger.With("component", "dispatcher"),
		timeFunc:   time.Now,
		ctx:        ctx,
		cancelFunc: cancel,
		dispatched: make(map[uuid.UUID]struct{}),
	}
}

// Start begins the polling loop in a background goroutine.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.loop()
	d.logger.Info("dispatcher started", "interval", d.interval)
}

// Stop cancels the loop and waits for it to finish.
func (d *Dispatcher) Stop() {
	d.cancelFunc()
	d.wg.Wait()
	d.logger.Info("dispatcher stopped")
}

func (d *Dispatcher) loop() {
	defer d.wg.Done()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			return
		case <-ticker.C:
			d.RunOnce(d.ctx)
		}
	}
}

// RunOnce performs a single scan-and-notify pass. Exposed so callers can
// trigger a pass outside the timer, and for tests.
func (d *Dispatcher) RunOnce(ctx context.Context) {
	now := d.timeFunc()
	ferments := d.ferments.List(ctx)

	live := make(map[uuid.UUID]struct{})
	var due []query.FermentReminder

	for _, reminder := range query.AllReminders(ferments, now) {
		live[reminder.ID] = struct{}{}
		if reminder.Completed || reminder.Date.After(now) {
			continue
		}
		due = append(due, reminder)
	}

	d.mu.Lock()
	// Forget reminders that no longer exist so the set stays bounded.
	for id := range d.dispatched {
		if _, ok := live[id]; !ok {
			delete(d.dispatched, id)
		}
	}
	pending := due[:0]
	for _, reminder := range due {
		if _, done := d.dispatched[reminder.ID]; !done {
			pending = append(pending, reminder)
		}
	}
	d.mu.Unlock()

	for _, reminder := range pending {
		if err := d.notifier.Notify(ctx, reminder); err != nil {
			// Keep the reminder undelivered; the next pass retries.
			d.logger.Error("failed to deliver reminder",
				"error", err,
				"reminder_id", reminder.ID,
				"ferment_id", reminder.FermentID)
			continue
		}

		d.mu.Lock()
		d.dispatched[reminder.ID] = struct{}{}
		d.mu.Unlock()
	}
}
