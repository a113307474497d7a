package config

import (
	"errors"
	"strings"
)

// ErrMissingConfig matches every *MissingError.
var ErrMissingConfig = errors.New("jira configuration is missing")

// ErrProjectRequired is returned when neither --project nor
// JIRA_PROJECT_KEY is set.
var ErrProjectRequired = errors.New(
	"jira project key not specified: use --project or set " + EnvProjectKey,
)

// Credentials identify and authenticate the caller against one Jira
// instance. All three values are required.
type Credentials struct {
	BaseURL  string
	Email    string
	APIToken string
}

// TokenSource supplies an API token for an account when none is configured,
// typically from the OS keyring.
type TokenSource interface {
	Token(email string) (string, error)
}

// MissingError lists the environment variables that had no value.
type MissingError struct {
	Vars []string
}

func (e *MissingError) Error() string {
	return "jira configuration is missing: set " + strings.Join(e.Vars, ", ")
}

// Is lets errors.Is(err, ErrMissingConfig) match.
func (e *MissingError) Is(target error) bool {
	return target == ErrMissingConfig
}

// Credentials validates and returns the credentials. When the API token is
// unset and tokens is non-nil, the token stored for the configured email is
// used instead. A lookup failure counts as absent.
func (c *Config) Credentials(tokens TokenSource) (Credentials, error) {
	creds := Credentials{
		BaseURL:  c.BaseURL,
		Email:    c.Email,
		APIToken: c.APIToken,
	}
	if creds.APIToken == "" && creds.Email != "" && tokens != nil {
		if tok, err := tokens.Token(creds.Email); err == nil {
			creds.APIToken = tok
		}
	}

	var missing []string
	if creds.BaseURL == "" {
		missing = append(missing, EnvBaseURL)
	}
	if creds.Email == "" {
		missing = append(missing, EnvEmail)
	}
	if creds.APIToken == "" {
		missing = append(missing, EnvAPIToken)
	}
	if len(missing) > 0 {
		return Credentials{}, &MissingError{Vars: missing}
	}
	return creds, nil
}

// Project returns the project key or ErrProjectRequired.
func (c *Config) Project() (string, error) {
	if c.ProjectKey == "" {
		return "", ErrProjectRequired
	}
	return c.ProjectKey, nil
}
