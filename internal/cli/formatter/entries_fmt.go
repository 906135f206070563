package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
)

// FormatEntries renders entries as a table under title, in the given order.
func FormatEntries(title string, entries []*domain.ScheduleEntry) string {
	var b strings.Builder
	b.WriteString(Header(title))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(Dim("Không có lịch hẹn nào."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			TruncID(e.ID),
			WeekdayName(e.StartTime),
			TimeRange(e.StartTime, e.EndTime),
			StyleFg.Render(e.Title),
			sourceBadge(e.Source),
		})
	}
	b.WriteString(RenderTable([]string{"ID", "Thứ", "Thời gian", "Tiêu đề", "Nguồn"}, rows))
	b.WriteString(Dim(fmt.Sprintf("%d lịch hẹn", len(entries))))
	b.WriteString("\n")
	return b.String()
}

// FormatEntry renders one entry with its full id and description.
func FormatEntry(e *domain.ScheduleEntry) string {
	var b strings.Builder
	line(&b, "ID", e.ID)
	line(&b, "Tiêu đề", Bold(e.Title))
	line(&b, "Bắt đầu", DateTime(e.StartTime))
	line(&b, "Kết thúc", DateTime(e.EndTime))
	line(&b, "Thời lượng", FormatMinutes(int(e.Duration()/time.Minute)))
	if e.Description != "" {
		line(&b, "Mô tả", e.Description)
	}
	line(&b, "Nguồn", sourceBadge(e.Source))
	return RenderBox("Lịch hẹn", strings.TrimRight(b.String(), "\n"))
}

func sourceBadge(s domain.EntrySource) string {
	if s == domain.SourceAdvised {
		return StyleGreen.Render("tư vấn")
	}
	return Dim("thủ công")
}
