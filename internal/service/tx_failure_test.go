package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/lichhen/internal/contract"
	"github.com/alexanderramin/lichhen/internal/repository"
	"github.com/alexanderramin/lichhen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// setupFailingService returns a service whose first write in every
// transaction fails, plus a healthy service over the same database.
func setupFailingService(t *testing.T, advisor Advisor, observers ...UseCaseObserver) (failing, healthy ScheduleService) {
	t.Helper()
	database := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(database, testutil.ICT)
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: errDiskFull}
	failing = NewScheduleService(entries, uow, advisor, testutil.ICT, observers...)
	healthy = NewScheduleService(entries, testutil.NewTestUoW(database), advisor, testutil.ICT)
	return failing, healthy
}

func countEntries(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM schedule_entries`).Scan(&n))
	return n
}

func TestScheduleService_Add_FailedInsertLeavesNothing(t *testing.T) {
	obs := &recordingObserver{}
	failing, healthy := setupFailingService(t, nil, obs)
	ctx := context.Background()

	e := testutil.NewTestEntry("Họp", testutil.At(2025, 8, 14, 9, 0))
	err := failing.Add(ctx, e)
	require.ErrorIs(t, err, errDiskFull)

	list, err := healthy.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "add-entry", obs.events[0].Name)
	assert.False(t, obs.events[0].Success)
	assert.ErrorIs(t, obs.events[0].Err, errDiskFull)

	// The slot was never taken.
	require.NoError(t, healthy.Add(ctx, testutil.NewTestEntry("Họp lại", testutil.At(2025, 8, 14, 9, 0))))
}

func TestScheduleService_Update_FailedWriteKeepsOriginal(t *testing.T) {
	failing, healthy := setupFailingService(t, nil)
	ctx := context.Background()

	e := testutil.NewTestEntry("Họp", testutil.At(2025, 8, 14, 9, 0))
	require.NoError(t, healthy.Add(ctx, e))

	moved := *e
	moved.Title = "Họp dời"
	moved.StartTime = testutil.At(2025, 8, 14, 15, 0)
	moved.EndTime = testutil.At(2025, 8, 14, 16, 0)
	require.ErrorIs(t, failing.Update(ctx, &moved), errDiskFull)

	got, err := healthy.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Họp", got.Title)
	assert.True(t, testutil.At(2025, 8, 14, 9, 0).Equal(got.StartTime))
}

func TestScheduleService_SmartAdd_FailedInsertReturnsNoEntry(t *testing.T) {
	database := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(database, testutil.ICT)
	advisor := &cannedAdvisor{result: successAt(testutil.At(2025, 8, 14, 14, 0), 60)}
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: errDiskFull}
	svc := NewScheduleService(entries, uow, advisor, testutil.ICT)

	res, err := svc.SmartAdd(context.Background(), contract.NewAdviceRequest("họp chiều mai"), "")
	require.ErrorIs(t, err, errDiskFull)
	require.NotNil(t, res)
	assert.Nil(t, res.Entry)
	assert.Equal(t, 0, countEntries(t, database))
}
