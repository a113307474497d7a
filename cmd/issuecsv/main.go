// Command issuecsv flattens exported Jira issue JSON into a CSV file.
package main

import (
	"os"

	"github.com/nhle/jiractl/internal/cli"
)

func main() {
	os.Exit(cli.RunTransform(os.Args[1:], os.Stdout, os.Stderr))
}
