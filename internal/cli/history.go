package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/jiractl/internal/store"
	"github.com/nhle/jiractl/internal/theme"
)

var errHistoryDisabled = errors.New("history is disabled (history_db is off)")

func (a *App) historyCommand() *cobra.Command {
	var (
		limit int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show issues created from this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.cfg.HistoryEnabled() {
				return fail("Error reading history", errHistoryDisabled)
			}

			s, err := a.openHistory(a.cfg.HistoryDB)
			if err != nil {
				return fail("Error reading history", err)
			}
			defer s.Close()

			filter := store.HistoryFilter{Limit: limit}
			if !all {
				filter.ProjectKey = a.cfg.ProjectKey
			}
			entries, err := s.ListCreated(cmd.Context(), filter)
			if err != nil {
				return fail("Error reading history", err)
			}

			if len(entries) == 0 {
				fmt.Fprintln(a.out, "No issues created yet.")
				return nil
			}

			styles := theme.New(a.out)
			for _, e := range entries {
				fmt.Fprintf(a.out, "%s  %s: %s  %s\n",
					styles.Muted.Render(e.CreatedAt.Local().Format("2006-01-02 15:04")),
					styles.Key.Render(e.Key),
					e.Summary,
					styles.Muted.Render(e.URL),
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries (0 for all)")
	cmd.Flags().BoolVar(&all, "all", false, "include every project, not just the configured one")
	return cmd
}
