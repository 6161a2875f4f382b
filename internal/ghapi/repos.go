package ghapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/go-github/v81/github"
)

// LastCommitAuthor returns the author of the newest commit on the default
// branch, or nil for an empty repository.
func (c *Client) LastCommitAuthor(ctx context.Context, owner, repo string) (*github.CommitAuthor, error) {
	commits, _, err := c.rest.Repositories.ListCommits(ctx, owner, repo, &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		// GitHub answers 409 Conflict for repositories without commits.
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusConflict {
			return nil, nil
		}
		return nil, err
	}
	if len(commits) == 0 || commits[0].GetCommit() == nil {
		return nil, nil
	}
	return commits[0].GetCommit().GetAuthor(), nil
}

// CountBranches returns the number of branches across all pages.
func (c *Client) CountBranches(ctx context.Context, owner, repo string) (int, error) {
	count := 0
	opts := &github.BranchListOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	for {
		branches, resp, err := c.rest.Repositories.ListBranches(ctx, owner, repo, opts)
		if err != nil {
			return 0, err
		}
		count += len(branches)
		if resp.NextPage == 0 {
			return count, nil
		}
		opts.Page = resp.NextPage
	}
}

// ListForks returns every direct fork of owner/repo.
func (c *Client) ListForks(ctx context.Context, owner, repo string) ([]*github.Repository, error) {
	var forks []*github.Repository
	opts := &github.RepositoryListForksOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	for {
		page, resp, err := c.rest.Repositories.ListForks(ctx, owner, repo, opts)
		if err != nil {
			return nil, err
		}
		forks = append(forks, page...)
		if resp.NextPage == 0 {
			return forks, nil
		}
		opts.Page = resp.NextPage
	}
}
