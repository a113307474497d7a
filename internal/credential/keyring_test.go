package credential

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/jiractl/internal/config"
)

var _ config.TokenSource = (*Store)(nil)

func TestStore(t *testing.T) {
	s := NewStore(keyring.NewArrayKeyring(nil))

	_, err := s.Token("me@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.SetToken("me@example.com", "first"))
	require.NoError(t, s.SetToken("me@example.com", "second"))
	require.NoError(t, s.SetToken("other@example.com", "other"))

	tok, err := s.Token("me@example.com")
	require.NoError(t, err)
	assert.Equal(t, "second", tok)

	require.NoError(t, s.DeleteToken("me@example.com"))
	_, err = s.Token("me@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	tok, err = s.Token("other@example.com")
	require.NoError(t, err)
	assert.Equal(t, "other", tok)
}
