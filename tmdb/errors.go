package tmdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// GenericFailureMessage is the user-facing message for failures without a service-provided reason
const GenericFailureMessage = "Failed to fetch data from TMDB. Please try again later."

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")
	// ErrNetworkFailure matches every RemoteError of kind NetworkFailure
	ErrNetworkFailure = errors.New("tmdb network failure")
	// ErrServiceError matches every RemoteError of kind ServiceError
	ErrServiceError = errors.New("tmdb service error")
	// ErrEmptyQuery is returned by Search when the query is blank
	ErrEmptyQuery = errors.New("search query must not be empty")
	// ErrInvalidMovieID is returned by Details for non-positive ids
	ErrInvalidMovieID = errors.New("invalid movie id")
)

// ErrorKind classifies a RemoteError
type ErrorKind int

const (
	// KindNetworkFailure is a transport failure or timeout reaching the service
	KindNetworkFailure ErrorKind = iota + 1
	// KindServiceError is an error reported by the service itself
	KindServiceError
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindNetworkFailure:
		return "NetworkFailure"
	case KindServiceError:
		return "ServiceError"
	default:
		return "Unknown"
	}
}

// RemoteError is the normalized failure of a TMDB call.
// Message is always safe to show to the user.
type RemoteError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Payload    string
	Err        error
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is matches ErrNetworkFailure and ErrServiceError by kind
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrNetworkFailure:
		return e.Kind == KindNetworkFailure
	case ErrServiceError:
		return e.Kind == KindServiceError
	}
	return false
}

// IsNetwork checks if the error is a transport-level failure
func (e *RemoteError) IsNetwork() bool {
	return e.Kind == KindNetworkFailure
}

// IsService checks if the error was reported by the service
func (e *RemoteError) IsService() bool {
	return e.Kind == KindServiceError
}

// IsUnauthorized checks if the service rejected the credentials
func (e *RemoteError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsNotFound checks if the requested resource does not exist
func (e *RemoteError) IsNotFound() bool {
	return e.StatusCode == 404
}

// Detail describes the failure for logs, including the upstream cause
func (e *RemoteError) Detail() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, " (status %d)", e.StatusCode)
	}
	if e.Payload != "" {
		fmt.Fprintf(&sb, ": %s", e.Payload)
	} else if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

// normalizeError converts a failed exchange into a RemoteError.
// A transport error takes precedence over any status code.
func normalizeError(statusCode int, body []byte, cause error) *RemoteError {
	if cause != nil {
		return &RemoteError{
			Kind:       KindNetworkFailure,
			Message:    GenericFailureMessage,
			StatusCode: statusCode,
			Payload:    string(body),
			Err:        cause,
		}
	}

	remoteErr := &RemoteError{
		Kind:       KindServiceError,
		Message:    GenericFailureMessage,
		StatusCode: statusCode,
		Payload:    string(body),
		Err:        fmt.Errorf("unexpected status code: %d", statusCode),
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && strings.TrimSpace(parsed.StatusMessage) != "" {
		remoteErr.Message = parsed.StatusMessage
	}

	return remoteErr
}
