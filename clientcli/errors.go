package clientcli

import "errors"

// Errors for profile operations.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoProfiles      = errors.New("no profiles configured")
)

// Errors for configuration validation.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrInvalidEndpoint = errors.New("endpoint must be an http or https URL")
)

// Errors for input validation.
var (
	ErrNoIDs     = errors.New("no ids provided")
	ErrEmptyID   = errors.New("id is required")
	ErrBadPrefix = errors.New("prefix must be a single path segment")
)
