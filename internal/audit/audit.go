package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Operation names.
const (
	OpSecretsCreate     = "secrets.create"
	OpSecretsExport     = "secrets.export"
	OpReportNetwork     = "report.network"
	OpMigrationsMapping = "migrations.user-mapping"
)

// Entry represents a single audit log entry. It never carries a secret
// value or ciphertext.
type Entry struct {
	Timestamp string `json:"ts"`     // RFC3339 with microseconds.
	RunID     string `json:"run_id"` // Shared by every entry of one invocation.
	Operation string `json:"op"`

	// Optional fields depending on operation.
	Name       string `json:"name,omitempty"`        // Secret name.
	Level      string `json:"level,omitempty"`       // Organization or Repository.
	Kind       string `json:"kind,omitempty"`        // Action or Dependabot.
	Target     string `json:"target,omitempty"`      // "org" or "org/repo".
	Status     string `json:"status,omitempty"`      // created, updated, failed or planned.
	HTTPStatus int    `json:"http_status,omitempty"` // Status of the upsert call.
	Error      string `json:"error,omitempty"`
	OutputPath string `json:"output_path,omitempty"` // For reports.
	Count      int    `json:"count,omitempty"`       // Rows, organizations or users written.
}

// NewRunID returns a fresh identifier for one invocation.
func NewRunID() string {
	return uuid.NewString()
}

// Log appends an entry to the audit log at path. An empty path disables
// logging. Callers should warn on error rather than fail the operation.
func Log(path string, entry Entry) error {
	if path == "" {
		return nil
	}

	// Set timestamp if not already set.
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating audit log directory: %w", err)
		}
	}

	// #nosec G302 G304 -- the audit log is chosen by the user and holds no secret values.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	_, err = f.Write(append(data, '\n'))
	return err
}
