// Package workflows provides high-level orchestration for ghadmin commands.
//
// Workflows coordinate configuration, GitHub access, report writing and
// the audit trail to implement complete user-facing features. Each
// workflow handles a single command's business logic, independent of CLI
// concerns like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Builds the configuration and the GitHub client
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Validating that required settings are present
//   - Performing the core operation
//   - Writing report files
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Provision: creates or updates secrets listed in a CSV file
//   - ExportSecrets: writes the organization secrets inventory
//   - NetworkReport: writes the enterprise repository network report
//   - UserMapping: extracts users from a migration archive
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching. Use errors.Is() to check for specific error conditions:
//
//	result, err := workflows.Provision(ctx, opts)
//	if errors.Is(err, kerrors.ErrMissingConfig) {
//	    // Tell the user which setting to provide
//	}
//
// Per-secret failures are not errors: Provision reports them in its
// result and always processes the whole file.
package workflows
