package service

import (
	"context"
	"time"

	"github.com/alexanderramin/lichhen/internal/contract"
	"github.com/alexanderramin/lichhen/internal/domain"
)

type ScheduleService interface {
	Add(ctx context.Context, e *domain.ScheduleEntry) error
	Update(ctx context.Context, e *domain.ScheduleEntry) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.ScheduleEntry, error)
	List(ctx context.Context) ([]*domain.ScheduleEntry, error)
	// ListByDate returns every entry that overlaps the local day, including
	// ones that started the evening before.
	ListByDate(ctx context.Context, day time.Time) ([]*domain.ScheduleEntry, error)
	ListByMonth(ctx context.Context, year int, month time.Month) ([]*domain.ScheduleEntry, error)
	ListByYear(ctx context.Context, year int) ([]*domain.ScheduleEntry, error)
	// ListStartingBetween returns entries whose start lies in [from, to).
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.ScheduleEntry, error)
	SmartAdd(ctx context.Context, req contract.AdviceRequest, title string) (*SmartAddResult, error)
}

// Advisor is the advice engine SmartAdd consults.
type Advisor interface {
	Advise(ctx context.Context, req contract.AdviceRequest) *contract.AdviceResult
}

// SmartAddResult carries the advice that drove a smart add. Entry is nil when
// the advice asked for more information.
type SmartAddResult struct {
	Advice *contract.AdviceResult
	Entry  *domain.ScheduleEntry
}
