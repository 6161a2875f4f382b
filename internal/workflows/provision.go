package workflows

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/PolarWolf314/ghadmin/internal/audit"
	"github.com/PolarWolf314/ghadmin/internal/configs"
	logger "github.com/PolarWolf314/ghadmin/internal/logging"
	"github.com/PolarWolf314/ghadmin/internal/secrets"
)

// ProvisionOptions configures the provision workflow.
type ProvisionOptions struct {
	Config *configs.Config

	// API is the GitHub client. It is not used, and may be nil, in a dry run.
	API secrets.API

	// DryRun validates every directive and reports the calls it would
	// make without contacting GitHub.
	DryRun bool

	Logger logger.Logger
}

// PlannedCall is what a dry run would have sent for one directive.
type PlannedCall struct {
	Line   int
	Name   string
	Method string
	// Path is empty when the directive is invalid.
	Path string
	Err  error
}

// ProvisionResult contains the outcome of a provision run.
type ProvisionResult struct {
	RunID string

	// Results has one entry per directive, in file order. Empty in a dry run.
	Results []secrets.Result

	// Planned has one entry per directive in a dry run.
	Planned []PlannedCall

	Created int
	Updated int
	Failed  int
}

// Provision creates or updates every secret listed in Config.SecretsFile
// in Config.Organization.
//
// Returns ErrMissingConfig if the organization or secrets file is not set.
// Returns ErrFileNotFound or ErrMissingColumn if the file cannot be read.
// Failures of individual secrets are counted in the result, not returned.
func Provision(ctx context.Context, opts ProvisionOptions) (*ProvisionResult, error) {
	cfg := opts.Config
	if err := cfg.Require(configs.FieldOrganization, configs.FieldSecretsFile); err != nil {
		return nil, err
	}
	if !opts.DryRun && opts.API == nil {
		return nil, errors.New("provision needs a GitHub client")
	}

	directives, err := secrets.LoadDirectives(cfg.SecretsFile)
	if err != nil {
		return nil, err
	}
	opts.Logger.Infof("Loaded %d secrets from %s", len(directives), cfg.SecretsFile)

	result := &ProvisionResult{RunID: audit.NewRunID()}
	provisioner := secrets.NewProvisioner(opts.API, cfg.Organization, opts.Logger)

	if opts.DryRun {
		for _, d := range directives {
			call := PlannedCall{Line: d.Line, Name: d.Name, Method: http.MethodPut}
			route, err := provisioner.Route(d)
			if err != nil {
				call.Err = err
				result.Failed++
			} else {
				call.Path = "/" + route.SecretPath
			}
			result.Planned = append(result.Planned, call)
		}
		return result, nil
	}

	result.Results = provisioner.Provision(ctx, directives)
	for _, r := range result.Results {
		switch r.Status {
		case secrets.Created:
			result.Created++
		case secrets.Updated:
			result.Updated++
		default:
			result.Failed++
		}

		entry := audit.Entry{
			RunID:      result.RunID,
			Operation:  audit.OpSecretsCreate,
			Name:       r.Name,
			Level:      string(r.Level),
			Kind:       string(r.Kind),
			Target:     r.Target,
			Status:     r.Status.String(),
			HTTPStatus: r.HTTPStatus,
		}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		logAudit(cfg, entry, opts.Logger)
	}

	return result, nil
}

func logAudit(cfg *configs.Config, entry audit.Entry, log logger.Logger) {
	if err := audit.Log(cfg.AuditLog, entry); err != nil {
		log.Warnf("Could not write audit log %s: %v", cfg.AuditLog, err)
	}
}

// String summarises the counts, e.g. "2 created, 1 updated, 0 failed".
func (r *ProvisionResult) String() string {
	return fmt.Sprintf("%d created, %d updated, %d failed", r.Created, r.Updated, r.Failed)
}
