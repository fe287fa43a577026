package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"toggldash/internal/store"
	"toggldash/internal/sync"
	"toggldash/internal/tui"
)

// newReportCmd prints the grouped totals for a range to stdout, without the
// TUI. Useful for piping into invoices or shell pipelines.
func newReportCmd(dir string) *cobra.Command {
	var (
		from      string
		to        string
		yesterday bool
		refresh   bool
		rollups   bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print totals for a date range and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			span, err := resolveRange(from, to, yesterday)
			if err != nil {
				return err
			}

			token, ok := store.ReadToken(dir)
			if !ok {
				return errors.New("no API token stored; run toggldash and log in first")
			}

			settings := store.ReadSettings(dir)
			engine := connect(dir, token)

			// Cache-only by default so scripts never burn budget by accident.
			intent := sync.IntentCacheOnly
			if refresh {
				intent = sync.IntentForceAPI
			}
			outcome, err := engine.Refresh(cmd.Context(), sync.Request{
				Intent:      intent,
				Range:       span,
				WorkspaceID: settings.WorkspaceID,
				Rounding:    settings.Rounding,
				WeekStart:   settings.Rollups.WeekStart,
			})
			if err != nil {
				var choice *sync.WorkspaceChoiceError
				if errors.As(err, &choice) {
					return errors.New("multiple workspaces; pick one in the TUI first")
				}
				return err
			}

			out := cmd.OutOrStdout()
			if rollups {
				fmt.Fprint(out, tui.FormatRollups(span.Label, outcome.Rollups.Weekly, settings.TargetConfig()))
			} else {
				fmt.Fprint(out, tui.FormatGrouped(span.Label, outcome.Grouped))
			}
			if outcome.FromCache && outcome.Status != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "note: %s\n", outcome.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "range end (YYYY-MM-DD), defaults to --from")
	cmd.Flags().BoolVar(&yesterday, "yesterday", false, "shorthand for yesterday's date")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch live data instead of serving from cache")
	cmd.Flags().BoolVar(&rollups, "rollups", false, "print weekly rollups instead of grouped totals")
	return cmd
}
