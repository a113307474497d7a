// Package cli wires configuration, the Jira client, the CSV exporter and the
// local history ledger into the jiractl command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/jiractl/internal/config"
	"github.com/nhle/jiractl/internal/credential"
	"github.com/nhle/jiractl/internal/jira"
	"github.com/nhle/jiractl/internal/store"
	"github.com/nhle/jiractl/internal/theme"
)

// TokenStore keeps API tokens outside the environment.
type TokenStore interface {
	config.TokenSource
	SetToken(email, token string) error
	DeleteToken(email string) error
}

// App holds the collaborators of one jiractl invocation.
type App struct {
	out    io.Writer
	errOut io.Writer

	prompter    Prompter
	openTokens  func() (TokenStore, error)
	openHistory func(path string) (store.Store, error)
	httpClient  *http.Client
	dotEnv      string

	// Set while a command runs.
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

// Option configures an App.
type Option func(*App)

// WithOutput sets the writers for regular output and for errors and logs.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) {
		a.out = out
		a.errOut = errOut
	}
}

// WithPrompter replaces the interactive prompter.
func WithPrompter(p Prompter) Option {
	return func(a *App) {
		a.prompter = p
	}
}

// WithTokenStore replaces the OS keyring.
func WithTokenStore(open func() (TokenStore, error)) Option {
	return func(a *App) {
		a.openTokens = open
	}
}

// WithHTTPClient sets the HTTP client used for Jira requests.
func WithHTTPClient(c *http.Client) Option {
	return func(a *App) {
		a.httpClient = c
	}
}

// WithDotEnv names a .env file loaded before configuration is read.
func WithDotEnv(path string) Option {
	return func(a *App) {
		a.dotEnv = path
	}
}

// New returns an App writing to stdout and stderr, prompting on the terminal
// and reading tokens from the OS keyring.
func New(opts ...Option) *App {
	a := &App{
		out:    os.Stdout,
		errOut: os.Stderr,
		openTokens: func() (TokenStore, error) {
			return credential.Open()
		},
		openHistory: func(path string) (store.Store, error) {
			return store.NewSQLiteStore(path)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.prompter == nil {
		a.prompter = &huhPrompter{out: a.errOut}
	}
	return a
}

// Run executes the command tree with args and reports any failure on the
// error writer. It returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	cmd := a.rootCommand()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		a.report(err)
		return 1
	}
	return 0
}

func (a *App) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "jiractl",
		Short:         "List, create and export Jira issues",
		Long:          "jiractl lists and creates issues in a Jira Cloud project and exports them to CSV.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	flags := cmd.PersistentFlags()
	flags.String("project", "", "Jira project key (overrides "+config.EnvProjectKey+")")
	flags.StringVar(&a.configPath, "config", "", "config file (default "+config.DefaultConfigPath()+")")
	flags.Bool("debug", false, "log HTTP requests to stderr")

	cmd.AddCommand(
		a.listCommand(),
		a.createCommand(),
		a.exportCommand(),
		a.historyCommand(),
		a.authCommand(),
	)
	return cmd
}

// setup loads configuration and builds the logger for the running command.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.LoadOptions{
		ConfigPath: a.configPath,
		Flags:      cmd.Flags(),
		DotEnv:     a.dotEnv,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(a.errOut, cfg.Debug)
	return nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// tokens opens the token store, or returns nil when it is unavailable.
func (a *App) tokens() TokenStore {
	if a.openTokens == nil {
		return nil
	}
	ts, err := a.openTokens()
	if err != nil {
		a.logger.Debug("token store unavailable", "error", err)
		return nil
	}
	return ts
}

// client resolves the project key and credentials and returns a Jira
// client. Both checks happen before any network I/O.
func (a *App) client() (*jira.Client, string, error) {
	project, err := a.cfg.Project()
	if err != nil {
		return nil, "", err
	}

	var source config.TokenSource
	if a.cfg.APIToken == "" {
		if ts := a.tokens(); ts != nil {
			source = ts
		}
	}
	creds, err := a.cfg.Credentials(source)
	if err != nil {
		return nil, "", err
	}

	client := jira.NewClient(creds,
		jira.WithHTTPClient(a.httpClient),
		jira.WithTimeout(a.cfg.HTTPTimeout),
		jira.WithLogger(a.logger),
	)
	return client, project, nil
}

// commandError tags a failure with the message a command reports it under.
type commandError struct {
	prefix string
	err    error
}

func (e *commandError) Error() string {
	return e.prefix + ": " + e.err.Error()
}

func (e *commandError) Unwrap() error {
	return e.err
}

func fail(prefix string, err error) error {
	return &commandError{prefix: prefix, err: err}
}

// report writes err to the error writer as "<prefix>: <err>".
func (a *App) report(err error) {
	styles := theme.New(a.errOut)

	prefix, cause := "Error", err
	var ce *commandError
	if errors.As(err, &ce) {
		prefix, cause = ce.prefix, ce.err
	}
	fmt.Fprintf(a.errOut, "%s %s\n", styles.Error.Render(prefix+":"), cause)
}
