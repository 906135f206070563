package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/lichhen/internal/cli/formatter"
	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var title, description, start, end string
	var minutes int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store an entry at an explicit time",
		Example: `  lichhen add --title "Họp team" --start "2025-08-22 14:00" --duration 90
  lichhen add --title "Gặp khách" --start "ngày mai lúc 9h" --end 10:30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			startAt, err := parseDateTime(app, start)
			if err != nil {
				return err
			}
			endAt, err := entryEnd(app, startAt, end, minutes)
			if err != nil {
				return err
			}

			e := &domain.ScheduleEntry{
				Title:       title,
				Description: description,
				StartTime:   startAt,
				EndTime:     endAt,
				Source:      domain.SourceManual,
			}
			if err := app.Schedule.Add(contextOf(cmd), e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", formatter.StyleGreen.Render("✔ Đã lưu"), formatter.FormatEntry(e))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Entry title")
	cmd.Flags().StringVar(&description, "description", "", "Entry description")
	cmd.Flags().StringVar(&start, "start", "", "Start time (YYYY-MM-DD HH:MM, DD/MM/YYYY HH:MM or Vietnamese text)")
	cmd.Flags().StringVar(&end, "end", "", "End time (same formats, or HH:MM on the start day)")
	cmd.Flags().IntVar(&minutes, "duration", 60, "Duration in minutes when --end is not given")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var date, month, year string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, optionally for one day, month or year",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextOf(cmd)
			var (
				entries []*domain.ScheduleEntry
				title   string
				err     error
			)

			switch {
			case date != "":
				day, ok := app.Parser.ParseDate(date, app.now())
				if !ok {
					if t, perr := parseDateTime(app, date); perr == nil {
						day, ok = t, true
					}
				}
				if !ok {
					return fmt.Errorf("invalid date %q (use DD/MM, YYYY-MM-DD or e.g. \"ngày mai\")", date)
				}
				title = fmt.Sprintf("Lịch %s, %s", formatter.WeekdayName(day), day.Format("02/01/2006"))
				entries, err = app.Schedule.ListByDate(ctx, day)
			case month != "":
				y, m, perr := parseMonth(month)
				if perr != nil {
					return perr
				}
				title = fmt.Sprintf("Lịch tháng %d/%d", int(m), y)
				entries, err = app.Schedule.ListByMonth(ctx, y, m)
			case year != "":
				y, perr := parseYear(year)
				if perr != nil {
					return perr
				}
				title = fmt.Sprintf("Lịch năm %d", y)
				entries, err = app.Schedule.ListByYear(ctx, y)
			default:
				title = "Tất cả lịch hẹn"
				entries, err = app.Schedule.List(ctx)
			}
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEntries(title, entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to list (DD/MM, YYYY-MM-DD, \"hôm nay\", \"ngày mai\")")
	cmd.Flags().StringVar(&month, "month", "", "Month to list (YYYY-MM)")
	cmd.Flags().StringVar(&year, "year", "", "Year to list (YYYY)")
	cmd.MarkFlagsMutuallyExclusive("date", "month", "year")

	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextOf(cmd)
			id, err := resolveEntryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Schedule.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEntry(e))
			return nil
		},
	}
}

func newUpdateCmd(app *App) *cobra.Command {
	var title, description, start, end string
	var minutes int

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change an entry's title, description or time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextOf(cmd)
			id, err := resolveEntryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Schedule.Get(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				e.Title = title
			}
			if flags.Changed("description") {
				e.Description = description
			}
			duration := e.Duration()
			if flags.Changed("start") {
				if e.StartTime, err = parseDateTime(app, start); err != nil {
					return err
				}
				e.EndTime = e.StartTime.Add(duration)
			}
			switch {
			case flags.Changed("end"):
				if e.EndTime, err = entryEnd(app, e.StartTime, end, 0); err != nil {
					return err
				}
			case flags.Changed("duration"):
				e.EndTime = e.StartTime.Add(time.Duration(minutes) * time.Minute)
			}

			if err := app.Schedule.Update(ctx, e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", formatter.StyleGreen.Render("✔ Đã cập nhật"), formatter.FormatEntry(e))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&start, "start", "", "New start time; the duration is kept")
	cmd.Flags().StringVar(&end, "end", "", "New end time")
	cmd.Flags().IntVar(&minutes, "duration", 0, "New duration in minutes")
	cmd.MarkFlagsMutuallyExclusive("end", "duration")

	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextOf(cmd)
			id, err := resolveEntryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Schedule.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("✔ Đã xóa"), formatter.TruncID(id))
			return nil
		},
	}
}
