// Package tmdb provides a client for the TMDB movie metadata API.
//
// The package is organized into several components:
//
//   - Client: the remote catalog client (auth, timeout, error normalization, caching)
//   - Catalog: typed category fetchers (popular, now playing, upcoming, top rated, search)
//   - Types: Movie, ResultSet and MovieDetails as returned by the service
//   - ConsoleFormatter: plain-text rendering of result sets for the CLI
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient(
//		tmdb.DefaultBaseURL,
//		logger,
//		tmdb.WithBearerToken(token),
//		tmdb.WithCache(5*time.Minute, 128),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	catalog := tmdb.NewCatalog(client)
//	movies, err := catalog.Popular(ctx, 1, nil)
//
// # Error Handling
//
// Every failure returned by the client is a *RemoteError carrying a
// user-safe message and a kind:
//
//   - NetworkFailure: transport failure or timeout; the message is always
//     GenericFailureMessage
//   - ServiceError: the service answered with an error; the message is the
//     service's status_message when present
//
// A missing or empty results list is not an error: it yields an empty ResultSet.
//
//	var remoteErr *tmdb.RemoteError
//	if errors.As(err, &remoteErr) && remoteErr.IsNetwork() {
//		// offer a retry
//	}
package tmdb
