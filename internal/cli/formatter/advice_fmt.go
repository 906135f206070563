package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lichhen/internal/contract"
	"github.com/alexanderramin/lichhen/internal/domain"
)

// FormatAdvice renders an advice result for the terminal. Every field of the
// result appears in the output.
func FormatAdvice(res *contract.AdviceResult) string {
	if res == nil {
		return StyleRed.Render("✖ Không có kết quả tư vấn") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header("Tư vấn lịch hẹn"))
	b.WriteString("\n")
	if res.Text != "" {
		line(&b, "Yêu cầu", StyleFg.Render(res.Text))
	}

	switch res.Status {
	case contract.StatusSuccess:
		formatRecommendation(&b, res)
	case contract.StatusNeedMoreInfo:
		formatNeedMoreInfo(&b, res.NeedMoreInfo)
	default:
		formatFailure(&b, res.Failure)
	}

	if !res.GeneratedAt.IsZero() {
		b.WriteString("\n")
		b.WriteString(Dim("Tư vấn lúc " + DateTime(res.GeneratedAt)))
		b.WriteString("\n")
	}
	return b.String()
}

func formatRecommendation(b *strings.Builder, res *contract.AdviceResult) {
	rec := res.Recommendation
	if rec == nil {
		formatFailure(b, &contract.AdviceError{Code: contract.ErrInternal, Message: "thiếu đề xuất"})
		return
	}

	line(b, "Thời gian đề xuất", Bold(DateTime(rec.RecommendedTime))+" "+
		Dim("("+RelativeDayFrom(rec.RecommendedTime, res.GeneratedAt)+")"))
	if !rec.OriginalTime.Equal(rec.RecommendedTime) {
		line(b, "Thời gian ban đầu", DateTime(rec.OriginalTime))
	}
	line(b, "Kết thúc", DateTime(rec.EndTime()))
	line(b, "Thời lượng", StyleBlue.Render(FormatMinutes(rec.DurationMin)))
	line(b, "Loại công việc", categoryText(rec.CategoryLabel, rec.Category))
	line(b, "Độ ưu tiên", PriorityBadge(rec.Priority))
	if rec.ResolvedBy != "" {
		line(b, "Nhận diện theo", Dim(rec.ResolvedBy))
	}

	if len(rec.Warnings) > 0 {
		b.WriteString("\n" + StyleYellow.Render("⚠ Lưu ý:") + "\n")
		for _, w := range rec.Warnings {
			fmt.Fprintf(b, "  - %s %s\n", w.Message, Dim("["+w.Code+"]"))
		}
	}

	if rec.HasConflict {
		b.WriteString("\n" + StyleRed.Render("✖ Trùng lịch với:") + "\n")
		for _, c := range rec.Conflicts {
			fmt.Fprintf(b, "  - %q %s %s\n", c.Title, TimeRange(c.Start, c.End), TruncID(c.ID))
		}
	}

	b.WriteString("\n")
	if rec.Secured {
		b.WriteString(StyleGreen.Render("✔ Khung giờ đề xuất đang trống"))
	} else {
		b.WriteString(StyleRed.Render("⚠ Chưa tìm được khung giờ trống, vui lòng kiểm tra lại"))
	}
	b.WriteString("\n")

	if len(rec.Alternatives) > 0 {
		b.WriteString("\n" + Bold("Khung giờ khác:") + "\n")
		for i, alt := range rec.Alternatives {
			fmt.Fprintf(b, "  %d. %s\n", i+1, DateTime(alt))
		}
	}
}

func formatNeedMoreInfo(b *strings.Builder, info *contract.NeedMoreInfo) {
	if info == nil {
		return
	}
	b.WriteString("\n" + StyleYellow.Render("? "+info.Question) + "\n\n")

	labels := make([]string, len(info.MissingFields))
	for i, f := range info.MissingFields {
		labels[i] = f.Label()
	}
	line(b, "Còn thiếu", strings.Join(labels, ", "))
	if info.Category != "" {
		line(b, "Loại công việc", categoryText(info.CategoryLabel, info.Category))
	}
	if info.DurationMin > 0 {
		line(b, "Thời lượng dự kiến", FormatMinutes(info.DurationMin))
	}
	if info.Priority != "" {
		line(b, "Độ ưu tiên", PriorityBadge(info.Priority))
	}
	source := "mẫu câu hỏi"
	if info.QuestionSource == contract.QuestionFromLLM {
		source = "mô hình ngôn ngữ"
	}
	line(b, "Câu hỏi từ", Dim(source))
}

func formatFailure(b *strings.Builder, f *contract.AdviceError) {
	if f == nil {
		f = &contract.AdviceError{Code: contract.ErrInternal, Message: "lỗi không xác định"}
	}
	fmt.Fprintf(b, "\n%s %s\n", StyleRed.Render("✖ "+string(f.Code)), f.Message)
}

func line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", Dim(label+":"), value)
}

func categoryText(label, name string) string {
	if name == "" || name == domain.DefaultCategoryName {
		return StylePurple.Render(domain.CoalesceStr(label, "Công việc chung"))
	}
	return StylePurple.Render(label) + " " + Dim("("+name+")")
}
