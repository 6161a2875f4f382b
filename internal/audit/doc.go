// Package audit records what ghadmin changed or exported.
//
// # Log Format
//
// The audit log is a JSON Lines file (one JSON object per line) at the
// path given by --audit-log, GHADMIN_AUDIT_LOG or audit_log in ghadmin.toml.
// Logging is off when no path is configured.
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Run id, shared by every entry of one invocation
//   - Operation name
//   - Operation-specific details (secret name and target, report path, etc.)
//
// Secret values and ciphertexts are never written.
//
// # Usage
//
//	runID := audit.NewRunID()
//	err := audit.Log(cfg.AuditLog, audit.Entry{RunID: runID, Operation: audit.OpSecretsCreate, Name: "TOKEN"})
//
// # Failure Handling
//
// Audit logging is best-effort. Callers warn about a failed write and
// carry on.
package audit
