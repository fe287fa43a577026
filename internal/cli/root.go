// Package cli defines the toggldash command tree: the default interactive
// dashboard plus a headless report subcommand for scripts.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"toggldash/internal/domain"
	"toggldash/internal/quota"
	"toggldash/internal/store"
	"toggldash/internal/sync"
	"toggldash/internal/toggl"
	"toggldash/internal/tui"
)

// connect builds a ready refresh engine for one credential. The cache is
// keyed to the token hash, so a new token starts from an empty cache.
func connect(dir, token string) *sync.Engine {
	cache := store.OpenCache(dir, store.HashToken(token))
	ledger := quota.NewLedger(dir, nil)
	client := toggl.NewClient(toggl.Config{Token: token})
	return sync.NewEngine(dir, cache, ledger, client, nil)
}

// NewRootCmd creates the top-level "toggldash" command.
func NewRootCmd(dir string) *cobra.Command {
	var login bool

	root := &cobra.Command{
		Use:   "toggldash",
		Short: "Terminal dashboard for Toggl time tracking",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("toggldash needs an interactive terminal; use 'toggldash report' in scripts")
			}
			if login {
				store.ClearToken(dir)
			}
			model := tui.New(dir, func(token string) tui.Refresher {
				return connect(dir, token)
			})
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	root.Flags().BoolVar(&login, "login", false, "discard the stored token and prompt for a new one")
	root.AddCommand(newReportCmd(dir))
	return root
}

// resolveRange turns the shared date flags into a concrete range.
func resolveRange(from, to string, yesterday bool) (domain.DateRange, error) {
	switch {
	case yesterday:
		return domain.Yesterday(), nil
	case from == "" && to == "":
		return domain.Today(), nil
	}

	if from == "" {
		return domain.DateRange{}, fmt.Errorf("--to requires --from")
	}
	start, err := domain.ParseDate(from)
	if err != nil {
		return domain.DateRange{}, err
	}
	end := start
	if to != "" {
		if end, err = domain.ParseDate(to); err != nil {
			return domain.DateRange{}, err
		}
	}
	if end.Before(start) {
		return domain.DateRange{}, fmt.Errorf("range end %s precedes start %s", to, from)
	}
	return domain.RangeFromBounds(start, end), nil
}
