package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/lichhen/internal/cli/formatter"
	"github.com/alexanderramin/lichhen/internal/contract"
	"github.com/alexanderramin/lichhen/internal/service"
	"github.com/spf13/cobra"
)

// adviceFlags are the optional hints shared by advise and smart-add.
type adviceFlags struct {
	date      string
	weekday   string
	timeOfDay string
	duration  int
	priority  string
}

func (f *adviceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Preferred date (DD/MM, DD/MM/YYYY or YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.weekday, "weekday", "", "Preferred weekday (e.g. \"thứ 3\", \"chủ nhật\")")
	cmd.Flags().StringVar(&f.timeOfDay, "time-of-day", "", "Preferred period: sáng|chiều|tối")
	cmd.Flags().IntVar(&f.duration, "duration", 0, "Duration in minutes")
	cmd.Flags().StringVar(&f.priority, "priority", "", "Priority: high|normal|low (cao|bình thường|thấp)")
}

func (f *adviceFlags) request(app *App, args []string) contract.AdviceRequest {
	req := contract.NewAdviceRequest(strings.Join(args, " "))
	now := app.now()
	req.Now = &now
	req.PreferredDate = f.date
	req.PreferredWeekday = f.weekday
	req.TimeOfDay = f.timeOfDay
	req.Priority = f.priority
	if f.duration > 0 {
		d := f.duration
		req.DurationMin = &d
	}
	return req
}

func newAdviseCmd(app *App) *cobra.Command {
	var flags adviceFlags
	var requireSlot bool

	cmd := &cobra.Command{
		Use:   "advise TEXT...",
		Short: "Suggest a time for a free-text request",
		Example: `  lichhen advise "họp team chiều thứ 6 tuần sau"
  lichhen advise phỏng vấn ứng viên --date 22/08 --time-of-day sáng`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := flags.request(app, args)
			req.RequireSlot = requireSlot
			res := adviseInteractive(contextOf(cmd), app, cmd.OutOrStdout(), req)
			if res.Status == contract.StatusError {
				return res.Failure
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&requireSlot, "require-slot", false, "Fail when no conflict-free slot is found")
	return cmd
}

// adviseInteractive prints the advice and, in an interactive terminal, asks
// for missing details once and advises again.
func adviseInteractive(ctx context.Context, app *App, out io.Writer, req contract.AdviceRequest) *contract.AdviceResult {
	res := app.Advisor.Advise(ctx, req)
	fmt.Fprint(out, formatter.FormatAdvice(res))

	if res.Status != contract.StatusNeedMoreInfo || !app.interactive() {
		return res
	}
	if err := app.FollowUp(res.NeedMoreInfo, &req); err != nil {
		fmt.Fprintln(out, formatter.StyleYellow.Render(err.Error()))
		return res
	}
	fmt.Fprintln(out)
	res = app.Advisor.Advise(ctx, req)
	fmt.Fprint(out, formatter.FormatAdvice(res))
	return res
}

func newSmartAddCmd(app *App) *cobra.Command {
	var flags adviceFlags
	var title string

	cmd := &cobra.Command{
		Use:   "smart-add TEXT...",
		Short: "Advise on a request and store it at the recommended time",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextOf(cmd)
			out := cmd.OutOrStdout()
			req := flags.request(app, args)

			result, err := app.Schedule.SmartAdd(ctx, req, title)
			if err == nil && result.Entry == nil && app.interactive() {
				fmt.Fprint(out, formatter.FormatAdvice(result.Advice))
				if ferr := app.FollowUp(result.Advice.NeedMoreInfo, &req); ferr != nil {
					return ferr
				}
				result, err = app.Schedule.SmartAdd(ctx, req, title)
			}
			if result != nil && result.Advice != nil {
				fmt.Fprint(out, formatter.FormatAdvice(result.Advice))
			}
			switch {
			case errors.Is(err, service.ErrNoTime):
				return fmt.Errorf("không tìm được khung giờ trống: %w", err)
			case err != nil:
				return err
			case result.Entry == nil:
				fmt.Fprintln(out, formatter.Dim("Chưa lưu lịch hẹn: cần thêm thông tin."))
				return nil
			}

			fmt.Fprintf(out, "\n%s %s\n", formatter.StyleGreen.Render("✔ Đã lưu"), formatter.FormatEntry(result.Entry))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&title, "title", "", "Entry title (defaults to the request text)")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
