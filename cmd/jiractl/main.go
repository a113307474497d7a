// Command jiractl lists, creates and exports issues in a Jira Cloud project.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nhle/jiractl/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.New(cli.WithDotEnv(".env")).Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
