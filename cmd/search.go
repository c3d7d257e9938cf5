package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinemaxx/viewmodel"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search movies by title",
	Example: `  cinemaxx search blade runner
  cinemaxx search alien --filter 'Year < 1990'`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initCatalog,
	RunE:    runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	addQueryFlags(searchCmd)
	addFilterFlags(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	f, err := filters.Resolve(filterExpr, preset)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	query := strings.Join(args, " ")

	vm := viewmodel.NewSearchViewModel(catalog, logger, viewOptions()...)
	defer vm.Subscribe(traceStates(logger, "search"))()
	state, ok := vm.Submit(cmd.Context(), query)
	if !ok {
		return errors.New("search query must not be blank")
	}

	return printListState(cmd.OutOrStdout(), fmt.Sprintf("Results for %q", state.Query), state, f)
}
