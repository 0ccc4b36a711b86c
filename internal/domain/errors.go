package domain

import "errors"

var (
	// ErrNoData is returned by a provider adapter when it has no usable
	// result for the query (empty result set, non-success status, or a
	// transport failure). The resolver treats it as "try the next source".
	ErrNoData = errors.New("no nutrition data available")

	// ErrMissingCredentials is returned by a provider adapter when its API
	// key is not configured. No network call is attempted.
	ErrMissingCredentials = errors.New("provider credentials not configured")

	// ErrProviderFailure is returned when a provider request fails in a way
	// worth surfacing in logs (timeout, non-success status, malformed body).
	ErrProviderFailure = errors.New("provider request failed")

	// ErrNoRecognition is returned when the vision collaborator cannot find
	// a food in the supplied image.
	ErrNoRecognition = errors.New("no food detected in image")
)
