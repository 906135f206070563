package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lichhen/internal/domain"
)

const clarifySystemPrompt = `You help a Vietnamese scheduling assistant ask ONE short follow-up question.

The user asked to schedule something, but some details are missing. Write a single friendly question in Vietnamese that asks for exactly the missing details listed, and give one or two example answers such as "ngày mai lúc 9h" or "chiều thứ 5".

You must output ONLY a JSON object:
{"question": "..."}

RULES:
1. Write in Vietnamese.
2. Ask only about the listed missing details.
3. At most two sentences.
4. Output ONLY the JSON object, no markdown fences, no text before or after.`

func buildClarifyUserPrompt(missing []domain.MissingField, text string) string {
	labels := make([]string, len(missing))
	for i, f := range missing {
		labels[i] = f.Label()
	}
	return fmt.Sprintf("Yêu cầu của người dùng: %q\nThông tin còn thiếu: %s", text, strings.Join(labels, ", "))
}
