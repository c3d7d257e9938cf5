package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinemaxx/tmdb"
	"github.com/s0up4200/cinemaxx/viewmodel"
)

// detailsCmd represents the details command
var detailsCmd = &cobra.Command{
	Use:     "details <movie-id>",
	Short:   "Show the details of a movie",
	Example: `  cinemaxx details 603`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initCatalog,
	RunE:    runDetails,
}

func init() {
	rootCmd.AddCommand(detailsCmd)
}

func runDetails(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	vm := viewmodel.NewDetailsViewModel(catalog, logger)
	state := vm.Open(cmd.Context(), id)
	if state.Status == viewmodel.StatusFailure {
		return errors.New(state.Message)
	}

	fmt.Fprint(cmd.OutOrStdout(), tmdb.NewConsoleFormatter().FormatDetails(state.Data, appStore.IsFavorite(id), cfg.TMDB.ImageSize))
	return nil
}

func parseMovieID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id %q: must be a positive number", s)
	}
	return id, nil
}
