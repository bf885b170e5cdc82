package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrInvalidOption means the service was started with a broken configuration.
	ErrInvalidOption = goerr.New("invalid option")

	// ErrValidationFailed is returned before any network call for malformed input.
	ErrValidationFailed = goerr.New("validation failed")

	ErrUnauthorized = goerr.New("unauthorized")
	ErrForbidden    = goerr.New("forbidden")
	ErrNotFound     = goerr.New("not found")
	ErrConflict     = goerr.New("conflict")

	// ErrNoActiveRepository is returned by content operations when the session has no connected repository.
	ErrNoActiveRepository = goerr.New("no active repository")

	// ErrUpstream wraps transient failures of GitHub or other collaborators. The user may retry.
	ErrUpstream = goerr.New("upstream service error")

	ErrInvalidGitHubData = goerr.New("invalid GitHub data")

	// ErrNotConfigured is returned when an optional collaborator (OAuth, Vercel, Google APIs) is not set up.
	ErrNotConfigured = goerr.New("feature not configured")
)
