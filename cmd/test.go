package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinemaxx/tmdb"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:         "test",
	Short:       "Test connection to TMDB",
	Long:        `Test the connection and credentials against the TMDB API.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSession: sessionOptional},
	PreRunE:     initCatalog,
	RunE:        runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to TMDB at %s...\n", cfg.TMDB.BaseURL)

	if err := tmdbClient.TestConnection(cmd.Context()); err != nil {
		var remoteErr *tmdb.RemoteError
		if errors.As(err, &remoteErr) && remoteErr.IsUnauthorized() {
			return fmt.Errorf("credentials rejected, check tmdb.bearer_token or tmdb.api_key: %w", err)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Connection successful!")

	auth := "API key"
	if cfg.TMDB.BearerToken != "" {
		auth = "bearer token"
	}
	fmt.Fprintf(out, "\nSettings:\n")
	fmt.Fprintf(out, "- Authentication: %s\n", auth)
	fmt.Fprintf(out, "- Language: %s\n", cfg.TMDB.Language)
	fmt.Fprintf(out, "- Response cache: %s\n", cacheStatus())
	fmt.Fprintf(out, "- State directory: %s\n", cfg.Storage.Dir)

	if presets := filters.ListFilters(); len(presets) > 0 {
		fmt.Fprintf(out, "\nFilter presets:\n")
		for _, name := range presets {
			f, _ := filters.GetFilter(name)
			fmt.Fprintf(out, "  • %s: %s\n", name, f.Expression())
		}
	}

	return nil
}

func cacheStatus() string {
	if cfg.TMDB.CacheTTL <= 0 {
		return "Disabled"
	}
	return fmt.Sprintf("%d entries for %s", cfg.TMDB.CacheSize, cfg.TMDB.CacheTTL)
}
