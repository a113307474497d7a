// Package config resolves jiractl settings from flags, the environment,
// an optional .env file and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Environment variables read by jiractl.
const (
	EnvBaseURL     = "JIRA_BASE_URL"
	EnvEmail       = "JIRA_EMAIL"
	EnvAPIToken    = "JIRA_API_TOKEN"
	EnvProjectKey  = "JIRA_PROJECT_KEY"
	EnvPageSize    = "JIRA_PAGE_SIZE"
	EnvHTTPTimeout = "JIRA_HTTP_TIMEOUT"
	EnvHistoryDB   = "JIRA_HISTORY_DB"
	EnvDebug       = "JIRA_DEBUG"
)

// HistoryDisabled turns the created-issue ledger off when used as the
// history_db setting.
const HistoryDisabled = "off"

// keyEnv maps each config key to its environment variable.
var keyEnv = map[string]string{
	"base_url":     EnvBaseURL,
	"email":        EnvEmail,
	"api_token":    EnvAPIToken,
	"project_key":  EnvProjectKey,
	"page_size":    EnvPageSize,
	"http_timeout": EnvHTTPTimeout,
	"history_db":   EnvHistoryDB,
	"debug":        EnvDebug,
}

// flagKey maps CLI flag names to config keys.
var flagKey = map[string]string{
	"project": "project_key",
	"debug":   "debug",
}

// Config is the settings for a single invocation. It is built once by Load
// and passed down explicitly; nothing here is process-wide state.
type Config struct {
	BaseURL     string        `mapstructure:"base_url"`
	Email       string        `mapstructure:"email"`
	APIToken    string        `mapstructure:"api_token"`
	ProjectKey  string        `mapstructure:"project_key"`
	PageSize    int           `mapstructure:"page_size"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	HistoryDB   string        `mapstructure:"history_db"`
	Debug       bool          `mapstructure:"debug"`
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// ConfigPath is an explicit YAML file. It must exist when set.
	// When empty, DefaultConfigPath is used if present.
	ConfigPath string

	// Flags, when non-nil, override every other source for the flags
	// named in flagKey that the user actually set.
	Flags *pflag.FlagSet

	// DotEnv is a .env file loaded into the environment before reading it.
	// Variables already set in the environment are not overwritten.
	// A missing file is ignored.
	DotEnv string
}

// DefaultConfigPath returns ~/.config/jiractl/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultHistoryPath returns ~/.config/jiractl/history.db.
func DefaultHistoryPath() string {
	return filepath.Join(configDir(), "history.db")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "jiractl")
}

// Load reads configuration with precedence flag > env > file > default.
func Load(opts LoadOptions) (*Config, error) {
	if opts.DotEnv != "" {
		if err := godotenv.Load(opts.DotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", opts.DotEnv, err)
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("page_size", 100)
	v.SetDefault("http_timeout", time.Duration(0))
	v.SetDefault("history_db", DefaultHistoryPath())
	v.SetDefault("debug", false)

	for key, env := range keyEnv {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKey {
			f := opts.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	path := opts.ConfigPath
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &pathErr) || errors.As(err, &notFound)
		if !missing || explicit {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.ProjectKey = strings.TrimSpace(cfg.ProjectKey)
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}

	return cfg, nil
}

// HistoryEnabled reports whether created issues should be recorded locally.
func (c *Config) HistoryEnabled() bool {
	return c.HistoryDB != "" && !strings.EqualFold(c.HistoryDB, HistoryDisabled)
}
