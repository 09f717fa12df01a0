package config

import "errors"

// Validation errors returned by Config.Validate. Callers match them with errors.Is.
var (
	// ErrNoURL is returned when neither the command line nor the config file names a listing page.
	ErrNoURL = errors.New("no listing url specified")

	// ErrInvalidURL is returned when the listing url is not absolute http(s).
	ErrInvalidURL = errors.New("invalid listing url: must be an absolute http or https url")

	// ErrInvalidInterval is returned when the scroll interval is not positive.
	ErrInvalidInterval = errors.New("invalid scroll interval: must be positive")

	// ErrInvalidStopAfter is returned when the scheduled stop is negative. Use 0 to disable it.
	ErrInvalidStopAfter = errors.New("invalid stop-after: must be non-negative")

	// ErrUnknownEmitMode is returned for an emit mode other than file or browser.
	ErrUnknownEmitMode = errors.New("unknown emit mode: must be file or browser")

	// ErrUnknownFormat is returned for an export format that has no encoder.
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrEmptySelector is returned when one of the article selectors is blank.
	ErrEmptySelector = errors.New("empty selector")
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")
