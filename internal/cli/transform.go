package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nhle/jiractl/internal/export"
	"github.com/nhle/jiractl/internal/theme"
)

// RunTransform runs the issuecsv command with args and returns the process
// exit code.
func RunTransform(args []string, out, errOut io.Writer) int {
	cmd := TransformCommand()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	if err := cmd.Execute(); err != nil {
		styles := theme.New(errOut)
		fmt.Fprintf(errOut, "%s %s\n", styles.Error.Render("Error:"), err)
		return 1
	}
	return 0
}

// TransformCommand converts exported issue JSON into the fixed CSV layout.
func TransformCommand() *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:           "issuecsv",
		Short:         "Flatten exported Jira issue JSON into CSV",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := export.ReadFile(in)
			if err != nil {
				return err
			}
			return export.WriteFile(out, export.DefaultTable, records)
		},
	}
	cmd.Flags().StringVar(&in, "in", "issues.json", "issue JSON to read")
	cmd.Flags().StringVar(&out, "out", "output.csv", "CSV file to write")
	return cmd
}
