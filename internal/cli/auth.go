package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/jiractl/internal/config"
)

var errNoTokenStore = errors.New("no credential store available")

func (a *App) authCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the API token kept in the OS keyring",
	}
	cmd.AddCommand(a.loginCommand(), a.logoutCommand())
	return cmd
}

func (a *App) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store an API token for the configured email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, ts, err := a.authTarget()
			if err != nil {
				return fail("Error logging in", err)
			}

			var token string
			err = a.prompter.Ask(cmd.Context(), Question{
				Title:    "API token for " + email,
				Value:    &token,
				Required: true,
				Secret:   true,
			})
			if err != nil {
				return fail("Error logging in", err)
			}

			if err := ts.SetToken(email, token); err != nil {
				return fail("Error logging in", err)
			}
			fmt.Fprintf(a.out, "Saved API token for %s\n", email)
			return nil
		},
	}
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token for the configured email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, ts, err := a.authTarget()
			if err != nil {
				return fail("Error logging out", err)
			}

			if err := ts.DeleteToken(email); err != nil {
				return fail("Error logging out", err)
			}
			fmt.Fprintf(a.out, "Removed API token for %s\n", email)
			return nil
		},
	}
}

// authTarget returns the configured email and an open token store.
func (a *App) authTarget() (string, TokenStore, error) {
	if a.cfg.Email == "" {
		return "", nil, &config.MissingError{Vars: []string{config.EnvEmail}}
	}
	if a.openTokens == nil {
		return "", nil, errNoTokenStore
	}
	ts, err := a.openTokens()
	if err != nil {
		return "", nil, err
	}
	return a.cfg.Email, ts, nil
}
