// Package reminder announces entries that are about to start. A cron
// schedule drives the scan; reminder_log keeps each start announced once
// across restarts.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/alexanderramin/lichhen/internal/repository"
)

const (
	DefaultLead     = 15 * time.Minute
	DefaultSchedule = "@every 1m"
)

// EntryLister lists entries whose start lies in [from, to).
type EntryLister interface {
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.ScheduleEntry, error)
}

type Watcher struct {
	entries  EntryLister
	sent     repository.ReminderLogRepo
	notifier Notifier
	lead     time.Duration
	schedule string
	loc      *time.Location
	clock    func() time.Time
	logger   *slog.Logger
}

type Option func(*Watcher)

func WithLead(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.lead = d
		}
	}
}

// WithSchedule sets the cron spec; standard five-field specs and
// descriptors such as "@every 30s" are accepted.
func WithSchedule(spec string) Option {
	return func(w *Watcher) {
		if spec != "" {
			w.schedule = spec
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(w *Watcher) { w.loc = loc }
}

func WithClock(clock func() time.Time) Option {
	return func(w *Watcher) { w.clock = clock }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

func NewWatcher(entries EntryLister, sent repository.ReminderLogRepo, notifier Notifier, opts ...Option) *Watcher {
	w := &Watcher{
		entries:  entries,
		sent:     sent,
		notifier: notifier,
		lead:     DefaultLead,
		schedule: DefaultSchedule,
		loc:      time.Local,
		clock:    time.Now,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Scan notifies every entry starting within the lead time that has not been
// announced yet and returns how many were sent. An entry is recorded before
// it is delivered, so a failed delivery is not retried.
func (w *Watcher) Scan(ctx context.Context) (int, error) {
	now := w.clock()
	upcoming, err := w.entries.ListStartingBetween(ctx, now, now.Add(w.lead))
	if err != nil {
		return 0, fmt.Errorf("listing upcoming entries: %w", err)
	}

	sent := 0
	var errs []error
	for _, e := range upcoming {
		fresh, err := w.sent.MarkNotified(ctx, e.ID, e.StartTime, now)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !fresh {
			continue
		}
		r := Reminder{Entry: e, Until: e.StartTime.Sub(now), At: now}
		if err := w.notifier.Notify(ctx, r); err != nil {
			errs = append(errs, fmt.Errorf("notifying %s: %w", e.DisplayID(), err))
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}

// Run scans once immediately and then on every schedule tick until ctx is
// done.
func (w *Watcher) Run(ctx context.Context) error {
	c := cron.New(cron.WithLocation(w.loc))
	if _, err := c.AddFunc(w.schedule, func() { w.tick(ctx) }); err != nil {
		return fmt.Errorf("reminder schedule %q: %w", w.schedule, err)
	}

	w.logger.Info("reminder watcher started", "schedule", w.schedule, "lead", w.lead.String())
	w.tick(ctx)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	w.logger.Info("reminder watcher stopped")
	return nil
}

func (w *Watcher) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	n, err := w.Scan(ctx)
	if err != nil {
		w.logger.Error("reminder scan failed", "error", err)
	}
	if n > 0 {
		w.logger.Debug("reminders sent", "count", n)
	}
}
