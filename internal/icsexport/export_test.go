package icsexport

import (
	"bytes"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/alexanderramin/lichhen/internal/testutil"
)

func TestWrite_RoundTripsThroughParser(t *testing.T) {
	meeting := testutil.NewTestEntry("Họp team", testutil.At(2025, 8, 22, 14, 0), testutil.WithDescription("Họp"))
	interview := testutil.NewTestEntry("Phỏng vấn", testutil.At(2025, 8, 25, 9, 30), testutil.WithDuration(45*time.Minute))
	deletedAt := testutil.Wednesday13Aug
	removed := testutil.NewTestEntry("Đã hủy", testutil.At(2025, 8, 26, 9, 0))
	removed.DeletedAt = &deletedAt

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []*domain.ScheduleEntry{meeting, interview, removed}, testutil.Wednesday13Aug))

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.NotContains(t, out, "Đã hủy")

	cal, err := ical.ParseCalendar(&buf)
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, UID(meeting), first.Id())
	assert.Equal(t, "Họp team", first.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "Họp", first.GetProperty(ical.ComponentPropertyDescription).Value)

	start, err := first.GetStartAt()
	require.NoError(t, err)
	assert.True(t, meeting.StartTime.Equal(start), "start %s", start)
	end, err := first.GetEndAt()
	require.NoError(t, err)
	assert.True(t, meeting.EndTime.Equal(end), "end %s", end)

	second := events[1]
	assert.Nil(t, second.GetProperty(ical.ComponentPropertyDescription))
	end, err = second.GetEndAt()
	require.NoError(t, err)
	assert.True(t, testutil.At(2025, 8, 25, 10, 15).Equal(end))
}

func TestBuild_Empty(t *testing.T) {
	cal := Build(nil, testutil.Wednesday13Aug)
	assert.Empty(t, cal.Events())
	assert.Contains(t, cal.Serialize(), "PRODID:"+productID)
}
