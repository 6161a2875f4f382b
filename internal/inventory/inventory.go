package inventory

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/PolarWolf314/ghadmin/internal/ghapi"
	logger "github.com/PolarWolf314/ghadmin/internal/logging"

	"github.com/google/go-github/v81/github"
)

// Source is what the inventory reads from GitHub. *ghapi.Client implements it.
type Source interface {
	OrganizationRepositories(ctx context.Context, org string) ([]ghapi.Repository, error)
	ListOrgSecrets(ctx context.Context, ns ghapi.Namespace, org string) ([]*github.Secret, error)
	ListRepoSecrets(ctx context.Context, ns ghapi.Namespace, owner, repo string) ([]*github.Secret, error)
	ListSelectedRepos(ctx context.Context, ns ghapi.Namespace, org, name string) ([]*github.Repository, error)
}

const (
	LevelOrganization = "Organization"
	LevelRepository   = "Repository"

	// AccessRepo marks secrets stored on a repository.
	AccessRepo = "repo"

	allRepositories = "all_repositories"
	notApplicable   = "NA"
)

// Header is the first row of the report.
var Header = []string{"SecretLevel", "SecretType", "SecretName", "SecretAccess", "RepositoryName", "RepositoryID"}

// Row is one secret made available to one repository (or to all of them).
type Row struct {
	Level          string
	Kind           string
	Name           string
	Access         string
	RepositoryName string
	RepositoryID   string
}

func (r Row) record() []string {
	return []string{r.Level, r.Kind, r.Name, r.Access, r.RepositoryName, r.RepositoryID}
}

// Collect lists every organization and repository secret of org.
//
// Organization secrets expand to one row per repository that can read them.
// A repository whose secrets cannot be listed is reported through log and
// skipped; any other failure aborts the inventory.
func Collect(ctx context.Context, src Source, org string, log logger.Logger) ([]Row, error) {
	repos, err := src.OrganizationRepositories(ctx, org)
	if err != nil {
		return nil, fmt.Errorf("listing repositories of %s: %w", org, err)
	}
	log.Infof("Found %d repositories in %s", len(repos), org)

	var rows []Row
	for _, ns := range ghapi.SecretNamespaces {
		log.Infof("Gathering %s secrets", ns.Label())

		secrets, err := src.ListOrgSecrets(ctx, ns, org)
		if err != nil {
			return nil, fmt.Errorf("listing %s secrets of %s: %w", ns.Label(), org, err)
		}
		for _, secret := range secrets {
			expanded, err := expandOrgSecret(ctx, src, org, ns, secret, repos)
			if err != nil {
				return nil, err
			}
			rows = append(rows, expanded...)
		}
	}

	log.Infof("Gathering repository specific secrets")
	for _, repo := range repos {
		id := strconv.FormatInt(repo.DatabaseID, 10)
		for _, ns := range ghapi.SecretNamespaces {
			secrets, err := src.ListRepoSecrets(ctx, ns, org, repo.Name)
			if err != nil {
				log.Warnf("Skipping %s secrets of %s/%s: %v", ns.Label(), org, repo.Name, err)
				continue
			}
			for _, secret := range secrets {
				rows = append(rows, Row{
					Level:          LevelRepository,
					Kind:           ns.Label(),
					Name:           secret.Name,
					Access:         AccessRepo,
					RepositoryName: repo.Name,
					RepositoryID:   id,
				})
			}
		}
	}

	return rows, nil
}

func expandOrgSecret(ctx context.Context, src Source, org string, ns ghapi.Namespace, secret *github.Secret, repos []ghapi.Repository) ([]Row, error) {
	row := func(repoName, repoID string) Row {
		return Row{
			Level:          LevelOrganization,
			Kind:           ns.Label(),
			Name:           secret.Name,
			Access:         secret.Visibility,
			RepositoryName: repoName,
			RepositoryID:   repoID,
		}
	}

	var rows []Row
	switch secret.Visibility {
	case "selected":
		selected, err := src.ListSelectedRepos(ctx, ns, org, secret.Name)
		if err != nil {
			return nil, fmt.Errorf("listing repositories of %s secret %s: %w", ns.Label(), secret.Name, err)
		}
		for _, repo := range selected {
			rows = append(rows, row(repo.GetName(), strconv.FormatInt(repo.GetID(), 10)))
		}
	case "private":
		for _, repo := range repos {
			if repo.Visibility == "PRIVATE" || repo.Visibility == "INTERNAL" {
				rows = append(rows, row(repo.Name, strconv.FormatInt(repo.DatabaseID, 10)))
			}
		}
	default:
		rows = append(rows, row(allRepositories, notApplicable))
	}
	return rows, nil
}

// WriteCSV writes Header followed by rows.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
