package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/jiractl/internal/export"
	"github.com/nhle/jiractl/internal/jira"
	"github.com/nhle/jiractl/internal/model"
	"github.com/nhle/jiractl/internal/theme"
)

func (a *App) listCommand() *cobra.Command {
	var maxResults int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues in the project, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, project, err := a.client()
			if err != nil {
				return err
			}

			issues, err := client.ListIssues(cmd.Context(), project, jira.ListOptions{
				Max:      maxResults,
				PageSize: a.cfg.PageSize,
			})
			if err != nil {
				return fail("Error listing issues", err)
			}

			styles := theme.New(a.out)
			for _, r := range issues {
				status := styles.StatusStyle(r.StatusName(), r.StatusCategory()).Render(r.StatusName())
				fmt.Fprintf(a.out, "%s: %s [Status: %s]\n", styles.Key.Render(r.Key()), r.Summary(), status)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxResults, "max", jira.NoLimit, "maximum number of issues to list (default all)")
	return cmd
}

func (a *App) createCommand() *cobra.Command {
	var summary, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a Task in the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, project, err := a.client()
			if err != nil {
				return err
			}

			var questions []Question
			if !cmd.Flags().Changed("summary") {
				questions = append(questions, Question{Title: "Summary", Value: &summary, Required: true})
			}
			if !cmd.Flags().Changed("description") {
				questions = append(questions, Question{Title: "Description", Value: &description, Required: true, Multiline: true})
			}
			if err := a.prompter.Ask(cmd.Context(), questions...); err != nil {
				return fail("Error creating issue", err)
			}

			ref, err := client.CreateIssue(cmd.Context(), summary, description, project)
			if err != nil {
				return fail("Error creating issue", err)
			}

			var url string
			if ref.Key != "" {
				url = client.BrowseURL(ref.Key)
			}
			fmt.Fprintf(a.out, "Created issue %s: %s\n", ref.Key, url)

			a.recordCreated(cmd.Context(), model.CreatedIssue{
				Key:        ref.Key,
				ProjectKey: project,
				Summary:    summary,
				URL:        url,
				BaseURL:    client.BaseURL(),
				CreatedAt:  time.Now(),
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&summary, "summary", "", "summary for the new issue")
	cmd.Flags().StringVar(&description, "description", "", "description for the new issue")
	return cmd
}

// recordCreated appends to the history ledger. The issue already exists
// remotely, so a ledger failure is only logged.
func (a *App) recordCreated(ctx context.Context, issue model.CreatedIssue) {
	if !a.cfg.HistoryEnabled() || issue.Key == "" {
		return
	}

	s, err := a.openHistory(a.cfg.HistoryDB)
	if err != nil {
		a.logger.Warn("opening history", "path", a.cfg.HistoryDB, "error", err)
		return
	}
	defer s.Close()

	if err := s.RecordCreated(ctx, issue); err != nil {
		a.logger.Warn("recording created issue", "key", issue.Key, "error", err)
	}
}

func (a *App) exportCommand() *cobra.Command {
	var (
		maxResults int
		out        string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the project's issues to a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, project, err := a.client()
			if err != nil {
				return err
			}

			issues, err := client.ListIssues(cmd.Context(), project, jira.ListOptions{
				Max:      maxResults,
				PageSize: a.cfg.PageSize,
			})
			if err != nil {
				return fail("Error exporting issues", err)
			}

			if err := export.WriteFile(out, export.DefaultTable, issues); err != nil {
				return fail("Error exporting issues", err)
			}
			fmt.Fprintf(a.out, "Exported %d issues to %s\n", len(issues), out)
			return nil
		},
	}
	cmd.Flags().IntVar(&maxResults, "max", jira.NoLimit, "maximum number of issues to export (default all)")
	cmd.Flags().StringVar(&out, "out", "output.csv", "CSV file to write")
	return cmd
}
