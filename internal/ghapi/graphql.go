package ghapi

import (
	"context"
	"fmt"
	"time"

	kerrors "github.com/PolarWolf314/ghadmin/internal/errors"

	"github.com/shurcooL/githubv4"
)

// Repository is the GraphQL view of an organization repository.
type Repository struct {
	Name       string
	DatabaseID int64
	// Visibility is PUBLIC, PRIVATE or INTERNAL.
	Visibility string
	UpdatedAt  time.Time
}

type pageInfo struct {
	EndCursor   githubv4.String
	HasNextPage bool
}

// EnterpriseOrganizations returns the logins of every organization in the enterprise.
func (c *Client) EnterpriseOrganizations(ctx context.Context, slug string) ([]string, error) {
	var q struct {
		Enterprise *struct {
			Organizations struct {
				Nodes []struct {
					Login string
				}
				PageInfo pageInfo
			} `graphql:"organizations(first: 100, after: $cursor)"`
		} `graphql:"enterprise(slug: $slug)"`
	}
	vars := map[string]interface{}{
		"slug":   githubv4.String(slug),
		"cursor": (*githubv4.String)(nil),
	}

	var logins []string
	for {
		if err := c.graphql.Query(ctx, &q, vars); err != nil {
			return nil, fmt.Errorf("querying organizations of enterprise %s: %w", slug, err)
		}
		if q.Enterprise == nil {
			return nil, fmt.Errorf("%w: enterprise %s", kerrors.ErrNotFound, slug)
		}
		for _, n := range q.Enterprise.Organizations.Nodes {
			logins = append(logins, n.Login)
		}
		if !q.Enterprise.Organizations.PageInfo.HasNextPage {
			return logins, nil
		}
		vars["cursor"] = githubv4.NewString(q.Enterprise.Organizations.PageInfo.EndCursor)
	}
}

// OrganizationRepositories returns every repository of org with its visibility.
func (c *Client) OrganizationRepositories(ctx context.Context, org string) ([]Repository, error) {
	var q struct {
		Organization *struct {
			Repositories struct {
				Nodes []struct {
					Name       string
					DatabaseID int64 `graphql:"databaseId"`
					Visibility string
					UpdatedAt  githubv4.DateTime
				}
				PageInfo pageInfo
			} `graphql:"repositories(first: 100, after: $cursor)"`
		} `graphql:"organization(login: $login)"`
	}
	vars := map[string]interface{}{
		"login":  githubv4.String(org),
		"cursor": (*githubv4.String)(nil),
	}

	var repos []Repository
	for {
		if err := c.graphql.Query(ctx, &q, vars); err != nil {
			return nil, fmt.Errorf("querying repositories of %s: %w", org, err)
		}
		if q.Organization == nil {
			return nil, fmt.Errorf("%w: organization %s", kerrors.ErrNotFound, org)
		}
		for _, n := range q.Organization.Repositories.Nodes {
			repos = append(repos, Repository{
				Name:       n.Name,
				DatabaseID: n.DatabaseID,
				Visibility: n.Visibility,
				UpdatedAt:  n.UpdatedAt.Time,
			})
		}
		if !q.Organization.Repositories.PageInfo.HasNextPage {
			return repos, nil
		}
		vars["cursor"] = githubv4.NewString(q.Organization.Repositories.PageInfo.EndCursor)
	}
}
