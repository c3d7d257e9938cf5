package store

import (
	"fmt"
	"strings"
)

// Theme is the display theme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used until a preference is stored
const DefaultTheme = ThemeLight

// ParseTheme parses a theme name, case-insensitively
func ParseTheme(s string) (Theme, error) {
	theme := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !theme.Valid() {
		return "", fmt.Errorf("%w: %q (must be light or dark)", ErrInvalidTheme, s)
	}
	return theme, nil
}

// Valid reports whether t is light or dark
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the opposite theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Provider is the identity provider that authenticated the session
type Provider string

const (
	ProviderPassword Provider = "password"
	ProviderGoogle   Provider = "google"
	ProviderOther    Provider = "other"
)

// ParseProvider maps a provider tag to a Provider; unknown tags become ProviderOther
func ParseProvider(s string) Provider {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "password", "email":
		return ProviderPassword
	case "google", "google.com":
		return ProviderGoogle
	default:
		return ProviderOther
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Provider) UnmarshalText(text []byte) error {
	*p = ParseProvider(string(text))
	return nil
}

// Session is the locally cached record of the signed-in user
type Session struct {
	Email    string   `json:"email"`
	Provider Provider `json:"provider"`
}

// Validate checks that the session identifies a user
func (s Session) Validate() error {
	if strings.TrimSpace(s.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidSession)
	}
	return nil
}

// DisplayName is the local part of the email address
func (s Session) DisplayName() string {
	name, _, _ := strings.Cut(s.Email, "@")
	if name == "" {
		return "User"
	}
	return name
}

// Initial is the upper-cased first letter of the display name
func (s Session) Initial() string {
	for _, r := range s.DisplayName() {
		return strings.ToUpper(string(r))
	}
	return ""
}
