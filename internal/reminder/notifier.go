package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
)

// Reminder announces that Entry starts in Until.
type Reminder struct {
	Entry *domain.ScheduleEntry
	Until time.Duration
	At    time.Time
}

// Notifier delivers reminders.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// LogNotifier writes each reminder as a structured log record.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, r Reminder) error {
	n.logger.InfoContext(ctx, "upcoming_entry",
		"id", r.Entry.DisplayID(),
		"title", r.Entry.Title,
		"start", r.Entry.StartTime.Format("02/01/2006 15:04"),
		"in_minutes", int(r.Until.Round(time.Minute).Minutes()),
	)
	return nil
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, r Reminder) error

func (f NotifierFunc) Notify(ctx context.Context, r Reminder) error { return f(ctx, r) }
