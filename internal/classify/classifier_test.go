package classify

import (
	"testing"

	"github.com/alexanderramin/lichhen/internal/config"
	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	cfg := config.Default()
	return New(cfg.Categories, cfg.Urgency.High, cfg.Urgency.Low)
}

func TestClassify_Categories(t *testing.T) {
	c := newDefaultClassifier(t)

	tests := []struct {
		text     string
		category string
		minutes  int
		priority domain.Priority
		window   domain.HourWindow
	}{
		{"họp team chiều thứ 6 tuần sau", "meeting", 60, domain.PriorityNormal, domain.HourWindow{Start: 9, End: 16}},
		{"Phỏng vấn ứng viên backend", "interview", 45, domain.PriorityHigh, domain.HourWindow{Start: 9, End: 11}},
		{"gặp khách ở quận 1", "client_meeting", 90, domain.PriorityHigh, domain.HourWindow{Start: 9, End: 16}},
		{"nộp bài tiểu luận", "deadline", 120, domain.PriorityHigh, domain.HourWindow{Start: 8, End: 11}},
		{"workshop kubernetes", "training", 180, domain.PriorityNormal, domain.HourWindow{Start: 9, End: 15}},
		{"đi bác sĩ răng", "personal", 30, domain.PriorityHigh, domain.HourWindow{Start: 8, End: 10}},
		{"đi siêu thị", domain.DefaultCategoryName, 60, domain.PriorityNormal, domain.HourWindow{Start: 9, End: 17}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			info := c.Classify(tt.text)
			assert.Equal(t, tt.category, info.Category)
			assert.Equal(t, tt.minutes, info.DurationMinutes)
			assert.Equal(t, tt.priority, info.Priority)
			assert.Equal(t, tt.window, info.BestWindow)
			assert.Equal(t, tt.category != domain.DefaultCategoryName, info.CategoryMatched)
		})
	}
}

func TestClassify_FirstCategoryWins(t *testing.T) {
	c := newDefaultClassifier(t)

	// "họp" (meeting) precedes "khách hàng" (client_meeting) in the table.
	info := c.Classify("họp với khách hàng")
	assert.Equal(t, "meeting", info.Category)
}

func TestClassify_UrgencyOverridesCategory(t *testing.T) {
	c := newDefaultClassifier(t)

	tests := []struct {
		text     string
		priority domain.Priority
		fromText bool
	}{
		{"họp gấp với team", domain.PriorityHigh, true},
		{"họp KHẨN CẤP", domain.PriorityHigh, true},
		{"phỏng vấn, không gấp", domain.PriorityLow, true},
		{"đi bác sĩ, tùy ý", domain.PriorityLow, true},
		{"họp không gấp nhưng quan trọng", domain.PriorityHigh, true},
		{"họp team", domain.PriorityNormal, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			info := c.Classify(tt.text)
			assert.Equal(t, tt.priority, info.Priority)
			assert.Equal(t, tt.fromText, info.PriorityFromText)
		})
	}
}

func TestClassify_ExplicitDurationOverridesCategory(t *testing.T) {
	c := newDefaultClassifier(t)

	info := c.Classify("họp team 2 tiếng chiều mai")
	assert.Equal(t, "meeting", info.Category)
	assert.Equal(t, 120, info.DurationMinutes)
	assert.True(t, info.DurationFromText)
}

func TestClassify_ReturnsFreshValues(t *testing.T) {
	categories := config.Default().Categories
	c := New(categories, []string{"gấp"}, nil)

	first := c.Classify("họp gấp")
	require.Equal(t, domain.PriorityHigh, first.Priority)

	second := c.Classify("họp")
	assert.Equal(t, domain.PriorityNormal, second.Priority, "urgency must not leak into the table")

	categories[0].DurationMinutes = 999
	categories[0].Keywords[0] = "xyz"
	third := c.Classify("họp")
	assert.Equal(t, "meeting", third.Category)
	assert.Equal(t, 60, third.DurationMinutes, "caller mutation must not reach the classifier")

	cats := c.Categories()
	cats[0].Label = "changed"
	assert.Equal(t, "Cuộc họp", c.Classify("họp").CategoryLabel)
}

func TestUrgency_NoKeywords(t *testing.T) {
	c := newDefaultClassifier(t)

	_, ok := c.Urgency("đi chợ")
	assert.False(t, ok)
}

func TestExtractDuration(t *testing.T) {
	tests := []struct {
		text    string
		minutes int
		ok      bool
	}{
		{"họp 2 tiếng", 120, true},
		{"học 1 tiếng rưỡi", 90, true},
		{"1 tiếng 15 phút", 75, true},
		{"trong 30 phút", 30, true},
		{"kéo dài 1.5 giờ", 90, true},
		{"mất 2,5 giờ", 150, true},
		{"khoảng 3h", 180, true},
		{"họp lúc 14 giờ", 0, false},
		{"9 giờ 30 phút", 0, false},
		{"trong 0 phút", 0, false},
		{"kéo dài 30 giờ", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			minutes, ok := ExtractDuration(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.minutes, minutes)
		})
	}
}
