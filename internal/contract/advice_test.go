package contract

import (
	"testing"
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewAdviceRequest_OnlyText(t *testing.T) {
	req := NewAdviceRequest("họp team chiều mai")

	assert.Equal(t, "họp team chiều mai", req.Text)
	assert.Nil(t, req.Now)
	assert.Nil(t, req.DurationMin)
	assert.Empty(t, req.PreferredDate)
	assert.Empty(t, req.PreferredWeekday)
	assert.Empty(t, req.TimeOfDay)
	assert.Empty(t, req.Priority)
	assert.False(t, req.RequireSlot)
}

func TestAdviceResult_Constructors(t *testing.T) {
	at := time.Date(2025, 8, 13, 10, 0, 0, 0, time.UTC)

	ok := NewSuccessResult("x", at, &Recommendation{DurationMin: 60})
	assert.Equal(t, StatusSuccess, ok.Status)
	assert.NotNil(t, ok.Recommendation)
	assert.Nil(t, ok.NeedMoreInfo)
	assert.Nil(t, ok.Failure)

	need := NewNeedMoreInfoResult("x", at, &NeedMoreInfo{MissingFields: []domain.MissingField{domain.MissingTime}})
	assert.Equal(t, StatusNeedMoreInfo, need.Status)
	assert.True(t, need.NeedMoreInfo.Has(domain.MissingTime))
	assert.False(t, need.NeedMoreInfo.Has(domain.MissingDuration))

	failed := NewErrorResult("x", at, ErrInternal, "boom")
	assert.Equal(t, StatusError, failed.Status)
	assert.Equal(t, "INTERNAL_ERROR: boom", failed.Failure.Error())
}

func TestRecommendation_EndTime(t *testing.T) {
	start := time.Date(2025, 8, 22, 14, 0, 0, 0, time.UTC)
	rec := Recommendation{RecommendedTime: start, DurationMin: 45}
	assert.Equal(t, start.Add(45*time.Minute), rec.EndTime())
}
