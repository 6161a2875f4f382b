package network

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/PolarWolf314/ghadmin/internal/ghapi"
	logger "github.com/PolarWolf314/ghadmin/internal/logging"

	"github.com/google/go-github/v81/github"
)

// Source is what the report reads from GitHub. *ghapi.Client implements it.
type Source interface {
	EnterpriseOrganizations(ctx context.Context, slug string) ([]string, error)
	OrganizationRepositories(ctx context.Context, org string) ([]ghapi.Repository, error)
	LastCommitAuthor(ctx context.Context, owner, repo string) (*github.CommitAuthor, error)
	CountBranches(ctx context.Context, owner, repo string) (int, error)
	ListForks(ctx context.Context, owner, repo string) ([]*github.Repository, error)
}

type Organization struct {
	Name  string       `json:"org_name"`
	Repos []Repository `json:"repos"`
}

type Repository struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
	// LastCommit is nil for empty repositories.
	LastCommit  *Commit `json:"last_commit"`
	NumBranches int     `json:"num_branches"`
	Forks       []Fork  `json:"forks"`
}

// Commit is the author of a commit.
type Commit struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

type ForkInfo struct {
	Name       string `json:"name"`
	FullName   string `json:"full_name"`
	OwnerLogin string `json:"owner_login"`
	ForkCount  int    `json:"fork_count"`
}

// Fork is a direct fork and, one level down, its own forks.
type Fork struct {
	ForkInfo
	Children []ForkInfo `json:"fork_children_info"`
}

// Build walks every organization of the enterprise. Only a failure to list
// the organizations is fatal; anything narrower is logged and leaves the
// affected field empty.
func Build(ctx context.Context, src Source, enterprise string, log logger.Logger) ([]Organization, error) {
	orgs, err := src.EnterpriseOrganizations(ctx, enterprise)
	if err != nil {
		return nil, fmt.Errorf("listing organizations of enterprise %s: %w", enterprise, err)
	}
	log.Infof("Found %d organizations in the %s enterprise", len(orgs), enterprise)

	report := make([]Organization, 0, len(orgs))
	for _, org := range orgs {
		report = append(report, buildOrganization(ctx, src, org, log))
	}
	return report, nil
}

func buildOrganization(ctx context.Context, src Source, org string, log logger.Logger) Organization {
	out := Organization{Name: org, Repos: []Repository{}}

	repos, err := src.OrganizationRepositories(ctx, org)
	if err != nil {
		log.Warnf("Skipping organization %s: %v", org, err)
		return out
	}
	log.Infof("Scanning %d repositories in %s", len(repos), org)

	for _, repo := range repos {
		out.Repos = append(out.Repos, buildRepository(ctx, src, org, repo, log))
	}
	return out
}

func buildRepository(ctx context.Context, src Source, org string, repo ghapi.Repository, log logger.Logger) Repository {
	out := Repository{Name: repo.Name, UpdatedAt: repo.UpdatedAt, Forks: []Fork{}}
	full := org + "/" + repo.Name

	author, err := src.LastCommitAuthor(ctx, org, repo.Name)
	if err != nil {
		log.Warnf("Could not read the last commit of %s: %v", full, err)
	} else if author != nil {
		out.LastCommit = &Commit{
			Name:  author.GetName(),
			Email: author.GetEmail(),
			Date:  author.GetDate().Time,
		}
	}

	out.NumBranches, err = src.CountBranches(ctx, org, repo.Name)
	if err != nil {
		log.Warnf("Could not count the branches of %s: %v", full, err)
	}

	forks, err := src.ListForks(ctx, org, repo.Name)
	if err != nil {
		log.Warnf("Could not list the forks of %s: %v", full, err)
		return out
	}
	for _, f := range forks {
		fork := Fork{ForkInfo: forkInfo(f), Children: []ForkInfo{}}
		if fork.ForkCount > 0 {
			children, err := src.ListForks(ctx, fork.OwnerLogin, fork.Name)
			if err != nil {
				log.Warnf("Could not list the forks of %s: %v", fork.FullName, err)
			}
			for _, c := range children {
				fork.Children = append(fork.Children, forkInfo(c))
			}
		}
		out.Forks = append(out.Forks, fork)
	}
	return out
}

func forkInfo(r *github.Repository) ForkInfo {
	return ForkInfo{
		Name:       r.GetName(),
		FullName:   r.GetFullName(),
		OwnerLogin: r.GetOwner().GetLogin(),
		ForkCount:  r.GetForksCount(),
	}
}

// WriteJSON writes the report indented by four spaces.
func WriteJSON(w io.Writer, report []Organization) error {
	if report == nil {
		report = []Organization{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}
