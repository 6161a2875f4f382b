package errors

import "errors"

// Configuration errors indicate the tool cannot talk to GitHub yet.
var (
	// ErrMissingToken indicates no API token was found in the environment or on the terminal.
	ErrMissingToken = errors.New("API_TOKEN is not set")

	// ErrMissingConfig indicates a required setting (organization, enterprise, input file) is empty.
	ErrMissingConfig = errors.New("required setting is missing")

	// ErrInvalidConfig indicates the configuration file could not be parsed.
	ErrInvalidConfig = errors.New("configuration file is invalid")
)

// Provisioning errors are scoped to a single directive. They never abort a batch.
var (
	// ErrKeyFetch indicates the public key for a secret scope could not be retrieved.
	ErrKeyFetch = errors.New("failed to fetch public key")

	// ErrEncryption indicates the secret value could not be sealed, usually because of malformed key material.
	ErrEncryption = errors.New("failed to encrypt secret value")

	// ErrUpsert indicates the create-or-update call did not answer 201 or 204.
	ErrUpsert = errors.New("failed to create or update secret")

	// ErrInvalidDirective indicates a row of the secrets file cannot be dispatched.
	ErrInvalidDirective = errors.New("invalid secret directive")
)

// Input errors indicate problems with files handed to a command.
var (
	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidFileType indicates the file is not of the expected type.
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrInvalidArchive indicates a migration archive entry could not be decoded.
	ErrInvalidArchive = errors.New("invalid archive contents")

	// ErrMissingColumn indicates a CSV input lacks one of the expected columns.
	ErrMissingColumn = errors.New("missing CSV column")
)

// API errors indicate GitHub answered, but not with what a report needs.
var (
	// ErrNotFound indicates the enterprise or organization does not exist or is not visible to the token.
	ErrNotFound = errors.New("not found on GitHub")
)
