package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinemaxx/filter"
	"github.com/s0up4200/cinemaxx/tmdb"
)

// favoritesCmd represents the favorites command group
var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage your favorite movies",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your favorite movies",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:     "add <movie-id>",
	Short:   "Add a movie to your favorites",
	Args:    cobra.ExactArgs(1),
	PreRunE: initCatalog,
	RunE:    runFavoritesAdd,
}

var favoritesToggleCmd = &cobra.Command{
	Use:     "toggle <movie-id>",
	Short:   "Add a movie to your favorites, or remove it if it is already there",
	Args:    cobra.ExactArgs(1),
	PreRunE: initCatalog,
	RunE:    runFavoritesToggle,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "remove <movie-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a movie from your favorites",
	Args:    cobra.ExactArgs(1),
	RunE:    runFavoritesRemove,
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesListCmd, favoritesAddCmd, favoritesToggleCmd, favoritesRemoveCmd)

	addFilterFlags(favoritesListCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	f, err := filters.Resolve(filterExpr, preset)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	movies := filter.Apply(f, appStore.Favorites())
	fmt.Fprint(cmd.OutOrStdout(), tmdb.NewConsoleFormatter().FormatFavorites(movies, formatOptions()))
	return nil
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	if appStore.IsFavorite(id) {
		fmt.Fprintf(cmd.OutOrStdout(), "Movie %d is already a favorite\n", id)
		return nil
	}

	movie, err := lookupMovie(cmd.Context(), id)
	if err != nil {
		return err
	}

	if _, err := appStore.ToggleFavorite(movie); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "♥ Added %s to favorites\n", movie.Title)
	return nil
}

func runFavoritesToggle(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	movie := tmdb.Movie{ID: id}
	if !appStore.IsFavorite(id) {
		if movie, err = lookupMovie(cmd.Context(), id); err != nil {
			return err
		}
	}

	added, err := appStore.ToggleFavorite(movie)
	if err != nil {
		return err
	}

	if added {
		fmt.Fprintf(cmd.OutOrStdout(), "♥ Added %s to favorites\n", movie.Title)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed movie %d from favorites\n", id)
	}
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	removed, err := appStore.RemoveFavorite(tmdb.Movie{ID: id})
	if err != nil {
		return err
	}

	if !removed {
		fmt.Fprintf(cmd.OutOrStdout(), "Movie %d is not a favorite\n", id)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed movie %d from favorites\n", id)
	return nil
}

// lookupMovie fetches the listing snapshot of a movie for the favorites store
func lookupMovie(ctx context.Context, id int) (tmdb.Movie, error) {
	details, err := catalog.Details(ctx, id)
	if err != nil {
		var remoteErr *tmdb.RemoteError
		if errors.As(err, &remoteErr) && remoteErr.IsNotFound() {
			return tmdb.Movie{}, fmt.Errorf("movie %d not found", id)
		}
		return tmdb.Movie{}, err
	}
	return details.Movie, nil
}
