// Package credential keeps Jira API tokens in the OS keyring so they do not
// have to live in the environment or a config file.
package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "jiractl"

// ErrNotFound is returned when no token is stored for an account.
var ErrNotFound = errors.New("credential not found")

// Store reads and writes API tokens keyed by account email.
type Store struct {
	ring keyring.Keyring
}

// Open returns a Store backed by the first available system keyring.
func Open() (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/jiractl/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("jiractl-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return NewStore(ring), nil
}

// NewStore wraps an already opened keyring.
func NewStore(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

func tokenKey(email string) string {
	return "jira-token:" + email
}

// Token returns the API token stored for email.
func (s *Store) Token(email string) (string, error) {
	item, err := s.ring.Get(tokenKey(email))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("token for %q: %w", email, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("getting token for %q: %w", email, err)
	}
	return string(item.Data), nil
}

// SetToken stores token for email, replacing any previous value.
func (s *Store) SetToken(email, token string) error {
	err := s.ring.Set(keyring.Item{
		Key:         tokenKey(email),
		Data:        []byte(token),
		Label:       "Jira API token (" + email + ")",
		Description: "jiractl",
	})
	if err != nil {
		return fmt.Errorf("setting token for %q: %w", email, err)
	}
	return nil
}

// DeleteToken removes the token stored for email.
func (s *Store) DeleteToken(email string) error {
	err := s.ring.Remove(tokenKey(email))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("token for %q: %w", email, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("deleting token for %q: %w", email, err)
	}
	return nil
}
