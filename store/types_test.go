package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTheme(t *testing.T) {
	theme, err := ParseTheme(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)

	_, err = ParseTheme("blue")
	assert.ErrorIs(t, err, ErrInvalidTheme)

	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
}

func TestParseProvider(t *testing.T) {
	tests := map[string]Provider{
		"password":   ProviderPassword,
		"google":     ProviderGoogle,
		"google.com": ProviderGoogle,
		"GOOGLE":     ProviderGoogle,
		"github":     ProviderOther,
		"":           ProviderOther,
	}
	for input, want := range tests {
		assert.Equal(t, want, ParseProvider(input), input)
	}
}

func TestSession(t *testing.T) {
	t.Run("display name", func(t *testing.T) {
		assert.Equal(t, "ada", Session{Email: "ada@example.com"}.DisplayName())
		assert.Equal(t, "User", Session{Email: "@example.com"}.DisplayName())
		assert.Equal(t, "A", Session{Email: "ada@example.com"}.Initial())
	})

	t.Run("unknown provider decodes as other", func(t *testing.T) {
		var s Session
		require.NoError(t, json.Unmarshal([]byte(`{"email":"a@b.c","provider":"facebook"}`), &s))
		assert.Equal(t, ProviderOther, s.Provider)
	})

	t.Run("validate", func(t *testing.T) {
		assert.ErrorIs(t, Session{Email: "  "}.Validate(), ErrInvalidSession)
		assert.NoError(t, Session{Email: "a@b.c"}.Validate())
	})
}
