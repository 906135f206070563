package intelligence

import (
	"strings"

	"github.com/alexanderramin/lichhen/internal/domain"
)

// Examples appended to every templated question.
var clarifyExamples = []string{"ngày mai lúc 9h", "thứ 3 tuần sau", "chiều thứ 5", "15/8 lúc 14h"}

// TemplateQuestion builds the clarifying question without an LLM.
func TemplateQuestion(missing []domain.MissingField) string {
	if len(missing) == 0 {
		missing = []domain.MissingField{domain.MissingTime}
	}
	labels := make([]string, len(missing))
	for i, f := range missing {
		labels[i] = f.Label()
	}

	var b strings.Builder
	b.WriteString("Để tư vấn chính xác, tôi cần thêm: ")
	b.WriteString(strings.Join(labels, ", "))
	b.WriteString(". Ví dụ: ")
	for i, ex := range clarifyExamples {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("'" + ex + "'")
	}
	b.WriteString(".")
	return b.String()
}
