package cli

import (
	"time"

	"github.com/alexanderramin/lichhen/internal/reminder"
	"github.com/alexanderramin/lichhen/internal/service"
	"github.com/alexanderramin/lichhen/internal/timeparse"
	"github.com/spf13/cobra"
)

// App holds the services CLI commands run against.
type App struct {
	Schedule  service.ScheduleService
	Advisor   service.Advisor
	Reminders *reminder.Watcher
	Parser    *timeparse.Parser

	// Now is the reference time for relative dates; defaults to time.Now.
	Now func() time.Time
	// IsInteractive reports whether follow-up questions may be asked.
	IsInteractive func() bool
	// FollowUp collects answers for missing details into req. It is only
	// called when IsInteractive reports true.
	FollowUp FollowUpFunc
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().In(a.Parser.Location())
	}
	return time.Now().In(a.Parser.Location())
}

func (a *App) interactive() bool {
	return a.FollowUp != nil && a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "lichhen" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "lichhen",
		Short:         "Tư vấn và quản lý lịch hẹn bằng tiếng Việt",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAdviseCmd(app),
		newSmartAddCmd(app),
		newAddCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newUpdateCmd(app),
		newDeleteCmd(app),
		newExportCmd(app),
		newRemindCmd(app),
	)

	return root
}
