package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newRemindCmd(app *App) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Watch for entries about to start and announce them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Reminders == nil {
				return fmt.Errorf("reminders are not configured")
			}
			if once {
				n, err := app.Reminders.Scan(contextOf(cmd))
				fmt.Fprintf(cmd.OutOrStdout(), "Đã nhắc %d lịch hẹn\n", n)
				return err
			}

			ctx, stop := signal.NotifyContext(contextOf(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.Reminders.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Scan once and exit")
	return cmd
}

