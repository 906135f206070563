package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

var weekdayNames = [7]string{"Thứ Hai", "Thứ Ba", "Thứ Tư", "Thứ Năm", "Thứ Sáu", "Thứ Bảy", "Chủ Nhật"}

// WeekdayName returns the Vietnamese weekday, e.g. "Thứ Sáu".
func WeekdayName(t time.Time) string {
	return weekdayNames[domain.WeekdayIndex(t)]
}

// DateTime renders "14:00 Thứ Sáu, 22/08/2025".
func DateTime(t time.Time) string {
	return fmt.Sprintf("%s %s, %s", t.Format("15:04"), WeekdayName(t), t.Format("02/01/2006"))
}

// TimeRange renders "14:00-15:00 22/08", naming the end date when it differs.
func TimeRange(start, end time.Time) string {
	if start.Format("2006-01-02") == end.Format("2006-01-02") {
		return fmt.Sprintf("%s-%s %s", start.Format("15:04"), end.Format("15:04"), start.Format("02/01"))
	}
	return fmt.Sprintf("%s %s - %s %s", start.Format("15:04"), start.Format("02/01"), end.Format("15:04"), end.Format("02/01"))
}

// RelativeDayFrom names the calendar-day distance between t and now.
func RelativeDayFrom(t, now time.Time) string {
	days := int(domain.StartOfDay(t.In(now.Location())).Sub(domain.StartOfDay(now)).Hours() / 24)
	switch {
	case days == 0:
		return "Hôm nay"
	case days == 1:
		return "Ngày mai"
	case days == 2:
		return "Ngày kia"
	case days == -1:
		return "Hôm qua"
	case days > 0:
		return fmt.Sprintf("%d ngày nữa", days)
	default:
		return fmt.Sprintf("%d ngày trước", -days)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes renders a duration in Vietnamese, e.g. "1 giờ 30 phút".
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0 phút"
	}
	h := min / 60
	m := min % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%d giờ %d phút", h, m)
	case h > 0:
		return fmt.Sprintf("%d giờ", h)
	default:
		return fmt.Sprintf("%d phút", m)
	}
}
