// Package errors provides typed error values for ghadmin.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Configuration errors: the tool is not set up (ErrMissingToken, ErrMissingConfig)
//   - Provisioning errors: one secret directive failed (ErrKeyFetch, ErrEncryption, ErrUpsert, ErrInvalidDirective)
//   - Input errors: a file handed to a command is unusable (ErrFileNotFound, ErrInvalidArchive)
//   - API errors: GitHub did not return what a report needs (ErrNotFound)
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: %s/%s: %v", errors.ErrKeyFetch, org, repo, err)
//
// Provisioning errors are carried inside a per-directive result rather than
// returned, so one bad row never stops the remaining rows:
//
//	if errors.Is(result.Err, kerrors.ErrKeyFetch) {
//	    // Show a permission hint
//	}
package errors
