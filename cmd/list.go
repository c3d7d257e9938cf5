package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/cinemaxx/filter"
	"github.com/s0up4200/cinemaxx/tmdb"
	"github.com/s0up4200/cinemaxx/viewmodel"
)

var listAll bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List movies of a catalog category",
	Long: `List one page of a TMDB catalog category.

Categories: popular (default), now_playing, upcoming, top_rated.
Use --all to fetch every category at once.`,
	Example: `  cinemaxx list
  cinemaxx list top_rated --page 2
  cinemaxx list upcoming --filter 'releasedWithin(30)'
  cinemaxx list --all --preset acclaimed`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: categoryNames(),
	PreRunE:   initCatalog,
	RunE:      runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "list every category")
	addQueryFlags(listCmd)
	addFilterFlags(listCmd)
}

func categoryNames() []string {
	categories := tmdb.Categories()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return names
}

// viewOptions translates the query flags into view model options
func viewOptions() []viewmodel.Option {
	opts := []viewmodel.Option{viewmodel.WithPage(page)}
	if language != "" {
		opts = append(opts, viewmodel.WithParams(tmdb.Params{"language": language}))
	}
	return opts
}

func runList(cmd *cobra.Command, args []string) error {
	f, err := filters.Resolve(filterExpr, preset)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	if listAll {
		if len(args) > 0 {
			return errors.New("--all cannot be combined with a category")
		}
		return runListAll(cmd, f)
	}

	category := tmdb.CategoryPopular
	if len(args) == 1 {
		if category, err = tmdb.ParseCategory(args[0]); err != nil {
			return err
		}
	}

	logger.Debug().Str("category", string(category)).Int("page", page).Msg("Listing category")

	vm := viewmodel.NewListViewModel(catalog, category, logger, viewOptions()...)
	defer vm.Subscribe(traceStates(logger, string(category)))()
	state := vm.Load(cmd.Context())

	return printListState(cmd.OutOrStdout(), category.Title(), state, f)
}

// runListAll loads every category concurrently and prints them in display order
func runListAll(cmd *cobra.Command, f filter.Filter) error {
	categories := tmdb.Categories()
	states := make([]viewmodel.State[tmdb.ResultSet], len(categories))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(len(categories))

	for i, category := range categories {
		g.Go(func() error {
			vm := viewmodel.NewListViewModel(catalog, category, logger, viewOptions()...)
			defer vm.Subscribe(traceStates(logger, string(category)))()
			// Failures are kept in the state so the other categories still print
			states[i] = vm.Load(ctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	var failed int
	for i, category := range categories {
		if err := printListState(cmd.OutOrStdout(), category.Title(), states[i], f); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", category.Title(), err)
			failed++
		}
	}

	if failed == len(categories) {
		return errors.New(states[0].Message)
	}
	return nil
}

// traceStates logs every state a list or search view model moves through
func traceStates(l zerolog.Logger, view string) func(viewmodel.State[tmdb.ResultSet]) {
	return func(s viewmodel.State[tmdb.ResultSet]) {
		event := l.Debug().
			Str("view", view).
			Stringer("status", s.Status).
			Uint64("generation", s.Generation)
		switch s.Status {
		case viewmodel.StatusSuccess:
			event = event.Ints("ids", s.Data.IDs())
		case viewmodel.StatusFailure:
			event = event.Str("message", s.Message)
		}
		event.Msg("View state changed")
	}
}

// printListState prints a resolved list or search state. A Failure becomes the
// returned error carrying the user facing message.
func printListState(w io.Writer, title string, state viewmodel.State[tmdb.ResultSet], f filter.Filter) error {
	if state.Status == viewmodel.StatusFailure {
		return errors.New(state.Message)
	}

	movies := filter.Apply(f, state.Data)
	fmt.Fprint(w, tmdb.NewConsoleFormatter().FormatMovieList(title, movies, formatOptions()))
	return nil
}
