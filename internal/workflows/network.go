package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/PolarWolf314/ghadmin/internal/audit"
	"github.com/PolarWolf314/ghadmin/internal/configs"
	logger "github.com/PolarWolf314/ghadmin/internal/logging"
	"github.com/PolarWolf314/ghadmin/internal/network"
	"github.com/PolarWolf314/ghadmin/internal/utils"
)

// NetworkReportOptions configures the enterprise network report workflow.
type NetworkReportOptions struct {
	Config *configs.Config
	Source network.Source
	Logger logger.Logger

	// Now stamps the report name. Defaults to the current time.
	Now time.Time
}

// NetworkReportResult contains the outcome of a network report.
type NetworkReportResult struct {
	OutputPath        string
	OrganizationCount int
	RepositoryCount   int
}

// NetworkReport writes the repository network of every organization in
// Config.Enterprise to a timestamped JSON report.
//
// Returns ErrMissingConfig if the enterprise is not set.
func NetworkReport(ctx context.Context, opts NetworkReportOptions) (*NetworkReportResult, error) {
	cfg := opts.Config
	if err := cfg.Require(configs.FieldEnterprise); err != nil {
		return nil, err
	}

	report, err := network.Build(ctx, opts.Source, cfg.Enterprise, opts.Logger)
	if err != nil {
		return nil, err
	}

	outputPath := cfg.OutputPath(utils.ReportFileName(now(opts.Now), cfg.Enterprise, "enterprise-network-report.json"))
	f, err := utils.CreateFile(outputPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := network.WriteJSON(f, report); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outputPath, err)
	}

	result := &NetworkReportResult{OutputPath: outputPath, OrganizationCount: len(report)}
	for _, org := range report {
		result.RepositoryCount += len(org.Repos)
	}

	logAudit(cfg, audit.Entry{
		RunID:      audit.NewRunID(),
		Operation:  audit.OpReportNetwork,
		Target:     cfg.Enterprise,
		OutputPath: outputPath,
		Count:      result.OrganizationCount,
	}, opts.Logger)

	return result, nil
}
