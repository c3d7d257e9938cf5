package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL: "https://api.themoviedb.org/3",
			Timeout: 10 * time.Second,
		},
		Storage: StorageConfig{Dir: "/tmp/cinemaxx"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.TMDB.BaseURL = "" },
			wantErr: "tmdb.base_url is required",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.TMDB.Timeout = 0 },
			wantErr: "tmdb.timeout must be positive",
		},
		{
			name:    "negative cache size",
			mutate:  func(c *Config) { c.TMDB.CacheSize = -1 },
			wantErr: "tmdb.cache_size",
		},
		{
			name:    "negative cache ttl",
			mutate:  func(c *Config) { c.TMDB.CacheTTL = -time.Second },
			wantErr: "tmdb.cache_ttl",
		},
		{
			name:    "missing storage dir",
			mutate:  func(c *Config) { c.Storage.Dir = "" },
			wantErr: "storage.dir is required",
		},
		{
			name:    "empty preset",
			mutate:  func(c *Config) { c.Filter.Presets = map[string]string{"acclaimed": " "} },
			wantErr: `filter preset "acclaimed"`,
		},
		{
			name:    "invalid level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "invalid format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFs(t *testing.T) {
	t.Run("defaults without a config file", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		cfg, err := LoadFs(afero.NewMemMapFs(), "")
		require.NoError(t, err)

		assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
		assert.Equal(t, 5*time.Minute, cfg.TMDB.CacheTTL)
		assert.Equal(t, 128, cfg.TMDB.CacheSize)
		assert.Equal(t, "w500", cfg.TMDB.ImageSize)
		assert.False(t, cfg.TMDB.HasCredentials())
		assert.NotContains(t, cfg.Storage.Dir, "~")
		assert.Equal(t, "s0up4200/cinemaxx", cfg.Update.Repository)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("config file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/etc/cinemaxx.yaml", []byte(`
tmdb:
  bearer_token: file-token
  language: de-DE
  timeout: 3s
  cache_ttl: 0s
storage:
  dir: /var/lib/cinemaxx
display:
  show_details: true
filter:
  presets:
    acclaimed: "Rating >= 8"
logging:
  level: debug
  format: json
`), 0o644))

		cfg, err := LoadFs(fs, "/etc/cinemaxx.yaml")
		require.NoError(t, err)

		assert.Equal(t, "file-token", cfg.TMDB.BearerToken)
		assert.Equal(t, "de-DE", cfg.TMDB.Language)
		assert.Equal(t, 3*time.Second, cfg.TMDB.Timeout)
		assert.Equal(t, time.Duration(0), cfg.TMDB.CacheTTL)
		assert.Equal(t, "/var/lib/cinemaxx", cfg.Storage.Dir)
		assert.True(t, cfg.Display.ShowDetails)
		assert.Equal(t, map[string]string{"acclaimed": "Rating >= 8"}, cfg.Filter.Presets)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("CINEMAXX_TMDB_API_KEY", "env-key")
		t.Setenv("CINEMAXX_TMDB_TIMEOUT", "7s")
		t.Setenv("CINEMAXX_LOGGING_LEVEL", "warn")

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/cfg.yaml", []byte("tmdb:\n  api_key: file-key\n"), 0o644))

		cfg, err := LoadFs(fs, "/cfg.yaml")
		require.NoError(t, err)

		assert.Equal(t, "env-key", cfg.TMDB.APIKey)
		assert.Equal(t, 7*time.Second, cfg.TMDB.Timeout)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := LoadFs(afero.NewMemMapFs(), "/missing.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config")
	})

	t.Run("invalid values", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/cfg.yaml", []byte("logging:\n  level: loud\n"), 0o644))

		_, err := LoadFs(fs, "/cfg.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, home+"/.cinemaxx/state", expandHome("~/.cinemaxx/state"))
	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
	assert.Equal(t, "~user/x", expandHome("~user/x"))
}
