package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/ghadmin/internal/audit"
	"github.com/PolarWolf314/ghadmin/internal/configs"
	logger "github.com/PolarWolf314/ghadmin/internal/logging"
	"github.com/PolarWolf314/ghadmin/internal/migrations"
	"github.com/PolarWolf314/ghadmin/internal/utils"
)

// UserMappingOptions configures the user mapping workflow.
type UserMappingOptions struct {
	Config *configs.Config
	Logger logger.Logger
}

// UserMappingResult contains the outcome of a user mapping extraction.
type UserMappingResult struct {
	OutputPath string
	UserCount  int
}

// UserMapping reads the migration archive at Config.ArchivePath and writes
// user-mapping.csv to the output directory. It does not contact GitHub.
//
// Returns ErrMissingConfig if no archive is set, ErrFileNotFound if it does
// not exist and ErrInvalidArchive if a users file cannot be decoded.
func UserMapping(ctx context.Context, opts UserMappingOptions) (*UserMappingResult, error) {
	cfg := opts.Config
	if err := cfg.Require(configs.FieldArchivePath); err != nil {
		return nil, err
	}

	users, err := migrations.ExtractUserMappingsFile(cfg.ArchivePath)
	if err != nil {
		return nil, err
	}
	opts.Logger.Infof("Found %d users in %s", len(users), cfg.ArchivePath)

	outputPath := cfg.OutputPath(migrations.UserMappingFile)
	f, err := utils.CreateFile(outputPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := migrations.WriteUserMappingCSV(f, users); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outputPath, err)
	}

	logAudit(cfg, audit.Entry{
		RunID:      audit.NewRunID(),
		Operation:  audit.OpMigrationsMapping,
		Target:     cfg.ArchivePath,
		OutputPath: outputPath,
		Count:      len(users),
	}, opts.Logger)

	return &UserMappingResult{OutputPath: outputPath, UserCount: len(users)}, nil
}
