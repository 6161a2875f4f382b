package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/PolarWolf314/ghadmin/internal/audit"
	"github.com/PolarWolf314/ghadmin/internal/configs"
	"github.com/PolarWolf314/ghadmin/internal/inventory"
	logger "github.com/PolarWolf314/ghadmin/internal/logging"
	"github.com/PolarWolf314/ghadmin/internal/utils"
)

// ExportSecretsOptions configures the secrets inventory workflow.
type ExportSecretsOptions struct {
	Config *configs.Config
	Source inventory.Source
	Logger logger.Logger

	// Now stamps the report name. Defaults to the current time.
	Now time.Time
}

// ExportSecretsResult contains the outcome of an inventory export.
type ExportSecretsResult struct {
	OutputPath string
	RowCount   int
}

// ExportSecrets writes every organization and repository secret of
// Config.Organization to a timestamped CSV report.
//
// Returns ErrMissingConfig if the organization is not set.
func ExportSecrets(ctx context.Context, opts ExportSecretsOptions) (*ExportSecretsResult, error) {
	cfg := opts.Config
	if err := cfg.Require(configs.FieldOrganization); err != nil {
		return nil, err
	}

	rows, err := inventory.Collect(ctx, opts.Source, cfg.Organization, opts.Logger)
	if err != nil {
		return nil, err
	}

	outputPath := cfg.OutputPath(utils.ReportFileName(now(opts.Now), cfg.Organization, "organization-secrets-report.csv"))
	f, err := utils.CreateFile(outputPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := inventory.WriteCSV(f, rows); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outputPath, err)
	}

	logAudit(cfg, audit.Entry{
		RunID:      audit.NewRunID(),
		Operation:  audit.OpSecretsExport,
		Target:     cfg.Organization,
		OutputPath: outputPath,
		Count:      len(rows),
	}, opts.Logger)

	return &ExportSecretsResult{OutputPath: outputPath, RowCount: len(rows)}, nil
}

func now(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
