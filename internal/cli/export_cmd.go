package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/lichhen/internal/icsexport"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all entries as an iCalendar (.ics) file",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Schedule.List(contextOf(cmd))
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := icsexport.Write(w, entries, app.now()); err != nil {
				return err
			}
			if output != "" && output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Đã xuất %d lịch hẹn ra %s\n", len(entries), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
