package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/lichhen/internal/contract"
	"github.com/alexanderramin/lichhen/internal/repository"
	"github.com/alexanderramin/lichhen/internal/testutil"
)

func setupService(t *testing.T, advisor Advisor, observers ...UseCaseObserver) (ScheduleService, repository.EntryRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(database, testutil.ICT)
	return NewScheduleService(entries, testutil.NewTestUoW(database), advisor, testutil.ICT, observers...), entries
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Name
	}
	return out
}

// cannedAdvisor returns the same result for every request.
type cannedAdvisor struct {
	result *contract.AdviceResult
	last   contract.AdviceRequest
}

func (c *cannedAdvisor) Advise(_ context.Context, req contract.AdviceRequest) *contract.AdviceResult {
	c.last = req
	return c.result
}

func successAt(start time.Time, minutes int) *contract.AdviceResult {
	return contract.NewSuccessResult("họp", testutil.Wednesday13Aug, &contract.Recommendation{
		OriginalTime:    start,
		RecommendedTime: start,
		DurationMin:     minutes,
		Category:        "meeting",
		CategoryLabel:   "Họp",
		Secured:         true,
	})
}
