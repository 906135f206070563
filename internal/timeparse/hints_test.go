package timeparse

import (
	"testing"
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/alexanderramin/lichhen/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	p := New(testutil.ICT)
	now := testutil.Wednesday13Aug

	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"22/8", testutil.At(2025, 8, 22, 0, 0), true},
		{"13/8", testutil.At(2025, 8, 13, 0, 0), true},
		{"1/3", testutil.At(2026, 3, 1, 0, 0), true},
		{"15/8/2025", testutil.At(2025, 8, 15, 0, 0), true},
		{"05-09-2025", testutil.At(2025, 9, 5, 0, 0), true},
		{"2025-09-02", testutil.At(2025, 9, 2, 0, 0), true},
		{"31/2", time.Time{}, false},
		{"mai", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := p.ParseDate(tt.in, now)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}

func TestParseWeekday_Exported(t *testing.T) {
	idx, ok := ParseWeekday("Thứ Sáu")
	assert.True(t, ok)
	assert.Equal(t, 4, idx)

	idx, ok = ParseWeekday("CN")
	assert.True(t, ok)
	assert.Equal(t, 6, idx)

	_, ok = ParseWeekday("thứ 9")
	assert.False(t, ok)
}

func TestClockIn(t *testing.T) {
	tests := []struct {
		text   string
		hour   int
		minute int
		ok     bool
	}{
		{"họp lúc 15h30", 15, 30, true},
		{"chiều lúc 3", 15, 0, true},
		{"buổi tối", 19, 0, true},
		{"sáng", 8, 0, true},
		{"họp trong 2 giờ", 0, 0, false},
		{"họp team", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			h, m, ok := ClockIn(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.hour, h)
			assert.Equal(t, tt.minute, m)
		})
	}
}

func TestTimeOfDayIn(t *testing.T) {
	tod, ok := TimeOfDayIn("họp CHIỀU mai")
	assert.True(t, ok)
	assert.Equal(t, domain.Afternoon, tod)

	_, ok = TimeOfDayIn("họp mai")
	assert.False(t, ok)
}
