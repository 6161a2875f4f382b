package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ReportTimeFormat is the timestamp prefix of generated report names.
const ReportTimeFormat = "2006-01-02T15:04:05"

// ReportFileName returns "{timestamp}-{subject}-{suffix}", e.g.
// "2024-05-01T10:00:00-acme-organization-secrets-report.csv".
func ReportFileName(t time.Time, subject, suffix string) string {
	return fmt.Sprintf("%s-%s-%s", t.Format(ReportTimeFormat), subject, suffix)
}

// CreateFile creates or truncates path, making missing parent directories.
func CreateFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// #nosec G304 -- path comes from the user's own flags.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}
