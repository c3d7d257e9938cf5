package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/cinemaxx/tmdb"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
	isFavorite func(id int) bool
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithFavorites exposes the Favorite variable, backed by lookup
func WithFavorites(lookup func(id int) bool) ExprCompilerOption {
	return func(c *exprCompiler) {
		c.isFavorite = lookup
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	isFavorite  func(id int) bool
	cache       *lruCache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Type-check against a zero movie so unknown names and type errors fail here
	program, err := expr.Compile(expression,
		expr.Env(c.environment(tmdb.Movie{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
		isFavorite: c.isFavorite,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

func (c *exprCompiler) environment(movie tmdb.Movie) map[string]any {
	env := make(map[string]any, len(c.helperFuncs)+16)
	maps.Copy(env, c.helperFuncs)
	addMovieEnvironment(env, movie, c.isFavorite)
	return env
}

// Evaluate evaluates the filter against a movie. Movies that fail to
// evaluate do not match.
func (f *exprFilter) Evaluate(movie tmdb.Movie) bool {
	ok, err := f.Match(movie)
	return err == nil && ok
}

// Match evaluates the filter against a movie
func (f *exprFilter) Match(movie tmdb.Movie) (bool, error) {
	env := make(map[string]any, len(f.helpers)+16)
	maps.Copy(env, f.helpers)
	addMovieEnvironment(env, movie, f.isFavorite)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			MovieID:    movie.ID,
			MovieTitle: movie.Title,
			Err:        err,
		}
	}

	// AsBool guarantees a bool result
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the movie independent helper functions
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 32)

	// Date helpers
	funcs["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	funcs["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	funcs["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	funcs["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	funcs["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse(time.DateOnly, dateStr)
		return t
	}
	// String helpers, case insensitive. contains, startsWith and endsWith are
	// expr operators, so the function forms use other names.
	funcs["containsText"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["startsWithText"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	funcs["endsWithText"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	funcs["lower"] = strings.ToLower
	funcs["upper"] = strings.ToUpper
	// Current time
	funcs["now"] = time.Now

	return funcs
}

// addMovieEnvironment adds the movie fields and movie bound helpers to env
func addMovieEnvironment(env map[string]any, movie tmdb.Movie, isFavorite func(int) bool) {
	released := movie.Released()
	var rating float64
	if movie.VoteAverage != nil {
		rating = *movie.VoteAverage
	}

	env["Movie"] = movie
	env["ID"] = movie.ID
	env["Title"] = movie.Title
	env["ReleaseDate"] = movie.ReleaseDate
	env["Released"] = released
	env["Year"] = movie.Year()
	env["VoteAverage"] = rating
	env["Rating"] = rating
	env["Rated"] = movie.VoteAverage != nil
	env["HasPoster"] = movie.HasPoster()
	env["Favorite"] = isFavorite != nil && movie.ID > 0 && isFavorite(movie.ID)

	env["releasedAfter"] = func(t time.Time) bool {
		return !released.IsZero() && released.After(t)
	}
	env["releasedBefore"] = func(t time.Time) bool {
		return !released.IsZero() && released.Before(t)
	}
	env["releasedWithin"] = func(days int) bool {
		return !released.IsZero() && !released.Before(time.Now().AddDate(0, 0, -days)) && !released.After(time.Now())
	}
	env["ratedAbove"] = func(min float64) bool {
		return movie.VoteAverage != nil && *movie.VoteAverage > min
	}
}
