package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidMaxLinks is returned when the link cap is not positive.
	ErrInvalidMaxLinks = errors.New("invalid max links: must be positive")

	// ErrInvalidEngine is returned for a render engine other than browser or http.
	ErrInvalidEngine = errors.New("invalid render engine: must be \"browser\" or \"http\"")

	// ErrInvalidTimeout is returned when the navigation timeout is not positive
	// or the settle delay is negative.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRate is returned when the request rate is negative.
	// Zero means unlimited.
	ErrInvalidRate = errors.New("invalid rate: must be non-negative")

	// ErrInvalidBaseURL is returned when the site base URL is not an absolute
	// http or https URL.
	ErrInvalidBaseURL = errors.New("invalid base url: must be an absolute http(s) url")

	// ErrInvalidOutput is returned when the output path is empty.
	ErrInvalidOutput = errors.New("invalid output: path must not be empty")

	// ErrConflictingSummaryFormats is returned when both --json and
	// --markdown are specified.
	ErrConflictingSummaryFormats = errors.New("conflicting summary formats: --json and --markdown cannot be used together")

	// ErrConflictingProxy is returned when an explicit proxy and the embedded
	// Tor daemon are both requested.
	ErrConflictingProxy = errors.New("conflicting proxy settings: --proxy and --tor cannot be used together")

	// ErrConfigNotFound is returned when an explicitly named config file
	// does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
