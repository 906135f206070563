package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lichhen/internal/contract"
	"github.com/alexanderramin/lichhen/internal/db"
	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/alexanderramin/lichhen/internal/repository"
	"github.com/google/uuid"
)

type scheduleService struct {
	entries  repository.EntryRepo
	uow      db.UnitOfWork
	advisor  Advisor
	loc      *time.Location
	observer UseCaseObserver
}

// NewScheduleService builds the schedule store. Writes validate and insert
// inside one uow transaction; reads go through entries. advisor may be nil
// when SmartAdd is not used.
func NewScheduleService(
	entries repository.EntryRepo,
	uow db.UnitOfWork,
	advisor Advisor,
	loc *time.Location,
	observers ...UseCaseObserver,
) ScheduleService {
	if loc == nil {
		loc = time.Local
	}
	return &scheduleService{
		entries:  entries,
		uow:      uow,
		advisor:  advisor,
		loc:      loc,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) Add(ctx context.Context, e *domain.ScheduleEntry) (err error) {
	done := observe(ctx, s.observer, "add-entry", map[string]any{"title": e.Title})
	defer func() { done(err) }()

	if err = validateEntry(e); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Source == "" {
		e.Source = domain.SourceManual
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx, s.loc)
		if err := checkFree(ctx, txEntries, e); err != nil {
			return err
		}
		return txEntries.Create(ctx, e)
	})
}

func (s *scheduleService) Update(ctx context.Context, e *domain.ScheduleEntry) (err error) {
	done := observe(ctx, s.observer, "update-entry", map[string]any{"id": e.ID})
	defer func() { done(err) }()

	if err = validateEntry(e); err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx, s.loc)
		current, err := txEntries.GetByID(ctx, e.ID)
		if err != nil {
			return err
		}
		if err := checkFree(ctx, txEntries, e); err != nil {
			return err
		}
		e.Source = current.Source
		e.CreatedAt = current.CreatedAt
		e.UpdatedAt = time.Now().UTC()
		return txEntries.Update(ctx, e)
	})
}

func (s *scheduleService) Delete(ctx context.Context, id string) (err error) {
	done := observe(ctx, s.observer, "delete-entry", map[string]any{"id": id})
	defer func() { done(err) }()

	return s.entries.Delete(ctx, id)
}

func (s *scheduleService) Get(ctx context.Context, id string) (*domain.ScheduleEntry, error) {
	return s.entries.GetByID(ctx, id)
}

func (s *scheduleService) List(ctx context.Context) ([]*domain.ScheduleEntry, error) {
	return s.entries.List(ctx)
}

func (s *scheduleService) ListByDate(ctx context.Context, day time.Time) ([]*domain.ScheduleEntry, error) {
	from := domain.StartOfDay(day.In(s.loc))
	return s.entries.Overlapping(ctx, from, from.AddDate(0, 0, 1), "")
}

func (s *scheduleService) ListByMonth(ctx context.Context, year int, month time.Month) ([]*domain.ScheduleEntry, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	return s.entries.ListBetween(ctx, from, from.AddDate(0, 1, 0))
}

func (s *scheduleService) ListByYear(ctx context.Context, year int) ([]*domain.ScheduleEntry, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
	return s.entries.ListBetween(ctx, from, from.AddDate(1, 0, 0))
}

func (s *scheduleService) ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.ScheduleEntry, error) {
	return s.entries.ListBetween(ctx, from, to)
}

// SmartAdd advises on req and stores an entry at the recommended time. A
// need-more-info advice is returned without writing. The slot is checked
// again inside the write transaction, so a concurrent insert surfaces as
// ErrOverlap.
func (s *scheduleService) SmartAdd(ctx context.Context, req contract.AdviceRequest, title string) (result *SmartAddResult, err error) {
	fields := map[string]any{"text": req.Text}
	done := observe(ctx, s.observer, "smart-add", fields)
	defer func() { done(err) }()

	if s.advisor == nil {
		return nil, errors.New("smart add: no advisor configured")
	}
	req.RequireSlot = true
	advice := s.advisor.Advise(ctx, req)
	fields["status"] = string(advice.Status)
	result = &SmartAddResult{Advice: advice}

	switch advice.Status {
	case contract.StatusNeedMoreInfo:
		return result, nil
	case contract.StatusError:
		if advice.Failure.Code == contract.ErrNoSlot {
			return result, fmt.Errorf("%s: %w", advice.Failure.Message, ErrNoTime)
		}
		return result, fmt.Errorf("advising: %w", advice.Failure)
	}

	rec := advice.Recommendation
	entry := &domain.ScheduleEntry{
		Title:       domain.CoalesceStr(strings.TrimSpace(title), strings.TrimSpace(req.Text)),
		Description: rec.CategoryLabel,
		StartTime:   rec.RecommendedTime,
		EndTime:     rec.EndTime(),
		Source:      domain.SourceAdvised,
	}
	if err = s.Add(ctx, entry); err != nil {
		return result, err
	}
	result.Entry = entry
	fields["entry_id"] = entry.ID
	return result, nil
}

func validateEntry(e *domain.ScheduleEntry) error {
	if !e.StartTime.IsZero() && !e.EndTime.IsZero() && !e.StartTime.Before(e.EndTime) {
		return fmt.Errorf("%s - %s: %w",
			e.StartTime.Format(time.RFC3339), e.EndTime.Format(time.RFC3339), ErrInvalidInterval)
	}
	if err := e.Validate(); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}
	return nil
}

func checkFree(ctx context.Context, entries repository.EntryRepo, e *domain.ScheduleEntry) error {
	clashes, err := entries.Overlapping(ctx, e.StartTime, e.EndTime, e.ID)
	if err != nil {
		return err
	}
	if len(clashes) == 0 {
		return nil
	}
	titles := make([]string, len(clashes))
	for i, c := range clashes {
		titles[i] = fmt.Sprintf("%q (%s-%s)", c.Title, c.StartTime.Format("02/01 15:04"), c.EndTime.Format("15:04"))
	}
	return fmt.Errorf("%s: %w", strings.Join(titles, ", "), ErrOverlap)
}
