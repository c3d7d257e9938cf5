package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinemaxx/tui"
)

// browseLogFile receives log output while the browser owns the terminal
const browseLogFile = "browse.log"

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse catalogs, search and favorites interactively",
	Long: `Open the interactive browser.

Switch between catalog tabs and your favorites with tab, search with /,
open details with enter, toggle a favorite with f and the theme with t.
Logs are written to browse.log in the storage directory.`,
	Example: `  cinemaxx browse
  cinemaxx browse --language de-DE --filter 'Rating >= 7'`,
	Args:    cobra.NoArgs,
	PreRunE: initCatalog,
	RunE:    runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)

	addQueryFlags(browseCmd)
	browseCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression, e.g. 'Rating >= 7 and Year > 2000'")
	browseCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		return errors.New("browse needs an interactive terminal; use list, search or details instead")
	}

	f, err := filters.Resolve(filterExpr, preset)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	browseLog, closeLog, err := openBrowseLog()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := tui.Options{
		Page:      page,
		Filter:    f,
		ImageSize: cfg.TMDB.ImageSize,
		Refresh:   tmdbClient.ClearCache,
	}
	if language != "" {
		opts.Params = map[string]any{"language": language}
	}

	return tui.Run(cmd.Context(), catalog, appStore, browseLog, opts)
}

// openBrowseLog opens the browse log in the storage directory
func openBrowseLog() (zerolog.Logger, func(), error) {
	if err := fs.MkdirAll(cfg.Storage.Dir, 0o700); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	path := filepath.Join(cfg.Storage.Dir, browseLogFile)
	file, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	l := zerolog.New(file).With().Timestamp().Str("command", "browse").Logger()
	return l, func() { file.Close() }, nil
}
