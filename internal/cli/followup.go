package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/lichhen/internal/cli/formatter"
	"github.com/alexanderramin/lichhen/internal/contract"
	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// FollowUpFunc asks the user for the details info reports missing and
// stores the answers as hints on req.
type FollowUpFunc func(info *contract.NeedMoreInfo, req *contract.AdviceRequest) error

// followUpAnswers holds raw form values before they become request hints.
type followUpAnswers struct {
	Date      string
	Weekday   string
	TimeOfDay string
	Duration  string
	Priority  string
}

func lichhenHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// followUpFields builds one form field per missing detail. The question
// itself is shown as a note above them.
func followUpFields(app *App, info *contract.NeedMoreInfo, ans *followUpAnswers) []huh.Field {
	fields := []huh.Field{huh.NewNote().Title(info.Question)}

	if info.Has(domain.MissingTime) {
		fields = append(fields,
			huh.NewInput().
				Title("Ngày (DD/MM hoặc YYYY-MM-DD, để trống nếu chọn thứ)").
				Placeholder("22/08").
				Value(&ans.Date).
				Validate(func(s string) error { return validateOptionalDate(app, s) }),
			huh.NewSelect[string]().
				Title("Hoặc thứ trong tuần").
				Options(weekdayOptions()...).
				Value(&ans.Weekday),
		)
	}
	if info.Has(domain.MissingTimeOfDay) {
		fields = append(fields, huh.NewSelect[string]().
			Title("Buổi").
			Options(
				huh.NewOption("Sáng", string(domain.Morning)),
				huh.NewOption("Chiều", string(domain.Afternoon)),
				huh.NewOption("Tối", string(domain.Evening)),
			).
			Value(&ans.TimeOfDay))
	}
	if info.Has(domain.MissingDuration) {
		fields = append(fields, huh.NewInput().
			Title("Thời lượng (phút)").
			Placeholder(strconv.Itoa(max(info.DurationMin, 60))).
			Value(&ans.Duration).
			Validate(validatePositiveInt))
	}
	if info.Has(domain.MissingPriority) {
		fields = append(fields, huh.NewSelect[string]().
			Title("Độ ưu tiên").
			Options(
				huh.NewOption(domain.PriorityHigh.Label(), string(domain.PriorityHigh)),
				huh.NewOption(domain.PriorityNormal.Label(), string(domain.PriorityNormal)),
				huh.NewOption(domain.PriorityLow.Label(), string(domain.PriorityLow)),
			).
			Value(&ans.Priority))
	}
	return fields
}

func weekdayOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("(không chọn)", "")}
	for _, d := range []string{"thứ 2", "thứ 3", "thứ 4", "thứ 5", "thứ 6", "thứ 7", "chủ nhật"} {
		opts = append(opts, huh.NewOption(d, d))
	}
	return opts
}

// AskFollowUp runs an interactive huh form for the missing details.
func AskFollowUp(app *App) FollowUpFunc {
	return func(info *contract.NeedMoreInfo, req *contract.AdviceRequest) error {
		var ans followUpAnswers
		form := huh.NewForm(huh.NewGroup(followUpFields(app, info, &ans)...)).
			WithTheme(lichhenHuhTheme()).
			WithShowHelp(false)
		if err := form.Run(); err != nil {
			return fmt.Errorf("follow-up form: %w", err)
		}
		ans.apply(req)
		return nil
	}
}

// apply copies non-empty answers onto req as hints.
func (a followUpAnswers) apply(req *contract.AdviceRequest) {
	if d := strings.TrimSpace(a.Date); d != "" {
		req.PreferredDate = d
	}
	if a.Weekday != "" {
		req.PreferredWeekday = a.Weekday
	}
	if a.TimeOfDay != "" {
		req.TimeOfDay = a.TimeOfDay
	}
	if v, err := strconv.Atoi(strings.TrimSpace(a.Duration)); err == nil && v > 0 {
		req.DurationMin = &v
	}
	if a.Priority != "" {
		req.Priority = a.Priority
	}
}

func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("nhập một số dương")
	}
	return nil
}

func validateOptionalDate(app *App, s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, ok := app.Parser.ParseDate(s, app.now()); !ok {
		return fmt.Errorf("dùng định dạng DD/MM hoặc YYYY-MM-DD")
	}
	return nil
}
