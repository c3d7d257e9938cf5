package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinemaxx/config"
	"github.com/s0up4200/cinemaxx/filter"
	"github.com/s0up4200/cinemaxx/store"
	"github.com/s0up4200/cinemaxx/tmdb"
)

var (
	cfgFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	appStore *store.Store
	filters  *filter.Manager

	// Created by initCatalog for commands that talk to TMDB
	tmdbClient *tmdb.Client
	catalog    *tmdb.Catalog

	// Command flags
	filterExpr  string
	preset      string
	language    string
	page        int
	showDetails bool

	// fs backs the state directory
	fs = afero.NewOsFs()
)

// ErrNotLoggedIn is returned by commands that need a session when there is none
var ErrNotLoggedIn = errors.New("not logged in: run 'cinemaxx login --email <address>' first")

// Commands annotated with annotationSession: sessionOptional run without a session
const (
	annotationSession = "session"
	sessionOptional   = "optional"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cinemaxx",
	Short: "Browse TMDB movie catalogs from your terminal",
	Long: `cinemaxx lets you browse popular, now playing, upcoming and top rated
movies from The Movie Database, search by title, keep a list of favorites
and view movie details, either as plain output or in an interactive browser.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.SilenceErrors = true
}

// initializeApp loads configuration, logging, the local store and filter presets,
// and enforces the session requirement
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	appStore = store.New(store.NewFileStorage(fs, cfg.Storage.Dir), logger)

	filters = filter.NewManager(filter.WithCompiler(filter.NewExprCompiler(
		filter.WithCache(64),
		filter.WithFavorites(appStore.IsFavorite),
	)))
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter presets: %w", err)
	}

	tmdbClient, catalog = nil, nil

	if cmd.Annotations[annotationSession] != sessionOptional {
		if _, ok := appStore.Session(); !ok {
			return ErrNotLoggedIn
		}
	}

	return nil
}

// initCatalog creates the TMDB client; used as PreRunE by catalog commands
func initCatalog(cmd *cobra.Command, args []string) error {
	if catalog != nil {
		return nil
	}

	opts := []tmdb.Option{
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithLanguage(cfg.TMDB.Language),
	}
	if cfg.TMDB.BearerToken != "" {
		opts = append(opts, tmdb.WithBearerToken(cfg.TMDB.BearerToken))
	}
	if cfg.TMDB.APIKey != "" {
		opts = append(opts, tmdb.WithAPIKey(cfg.TMDB.APIKey))
	}
	if cfg.TMDB.CacheTTL > 0 {
		opts = append(opts, tmdb.WithCache(cfg.TMDB.CacheTTL, cfg.TMDB.CacheSize))
	}

	client, err := tmdb.NewClient(cfg.TMDB.BaseURL, logger, opts...)
	if err != nil {
		if errors.Is(err, tmdb.ErrInvalidConfig) && !cfg.TMDB.HasCredentials() {
			return fmt.Errorf("%w (set tmdb.bearer_token or CINEMAXX_TMDB_BEARER_TOKEN)", err)
		}
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	tmdbClient = client
	catalog = tmdb.NewCatalog(client)
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; no color when stderr is redirected
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// formatOptions builds the console formatter options for the current store and config
func formatOptions() tmdb.FormatOptions {
	return tmdb.FormatOptions{
		ShowDetails: showDetails || cfg.Display.ShowDetails,
		ImageSize:   cfg.TMDB.ImageSize,
		IsFavorite:  appStore.IsFavorite,
	}
}

// addFilterFlags registers the filter flags shared by listing commands
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression, e.g. 'Rating >= 7 and Year > 2000'")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	cmd.Flags().BoolVar(&showDetails, "details", false, "show id, release date and poster for each movie")
}

// addQueryFlags registers the paging and language flags of catalog commands
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&page, "page", 1, "page to fetch")
	cmd.Flags().StringVar(&language, "language", "", "override tmdb.language for this request")
}
