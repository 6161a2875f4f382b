package ghapi

import (
	"context"
	"fmt"

	"github.com/google/go-github/v81/github"
)

// Namespace is the URL segment that separates the secret stores of the
// Actions, Dependabot and Codespaces products.
type Namespace string

const (
	Actions    Namespace = "actions"
	Dependabot Namespace = "dependabot"
	Codespaces Namespace = "codespaces"
)

// SecretNamespaces lists every secret store in report order.
var SecretNamespaces = []Namespace{Actions, Dependabot, Codespaces}

// Label returns the name used in CSV files ("Action", "Dependabot", "Codespaces").
func (n Namespace) Label() string {
	switch n {
	case Actions:
		return "Action"
	case Dependabot:
		return "Dependabot"
	case Codespaces:
		return "Codespaces"
	default:
		return string(n)
	}
}

// OrgPublicKeyPath returns the organization public-key endpoint.
func OrgPublicKeyPath(ns Namespace, org string) string {
	return fmt.Sprintf("orgs/%v/%v/secrets/public-key", org, ns)
}

// RepoPublicKeyPath returns the repository public-key endpoint.
func RepoPublicKeyPath(ns Namespace, owner, repo string) string {
	return fmt.Sprintf("repos/%v/%v/%v/secrets/public-key", owner, repo, ns)
}

// OrgSecretPath returns the organization secret endpoint.
func OrgSecretPath(ns Namespace, org, name string) string {
	return fmt.Sprintf("orgs/%v/%v/secrets/%v", org, ns, name)
}

// RepoSecretPath returns the repository secret endpoint.
func RepoSecretPath(ns Namespace, owner, repo, name string) string {
	return fmt.Sprintf("repos/%v/%v/%v/secrets/%v", owner, repo, ns, name)
}

// secretsService is the listing surface shared by the Actions, Dependabot
// and Codespaces services of go-github.
type secretsService interface {
	ListOrgSecrets(ctx context.Context, org string, opts *github.ListOptions) (*github.Secrets, *github.Response, error)
	ListRepoSecrets(ctx context.Context, owner, repo string, opts *github.ListOptions) (*github.Secrets, *github.Response, error)
	ListSelectedReposForOrgSecret(ctx context.Context, org, name string, opts *github.ListOptions) (*github.SelectedReposList, *github.Response, error)
}

func (c *Client) service(ns Namespace) (secretsService, error) {
	switch ns {
	case Actions:
		return c.rest.Actions, nil
	case Dependabot:
		return c.rest.Dependabot, nil
	case Codespaces:
		return c.rest.Codespaces, nil
	default:
		return nil, fmt.Errorf("unknown secret namespace %q", ns)
	}
}

// ListOrgSecrets returns every organization secret in the namespace.
func (c *Client) ListOrgSecrets(ctx context.Context, ns Namespace, org string) ([]*github.Secret, error) {
	svc, err := c.service(ns)
	if err != nil {
		return nil, err
	}
	return collectSecrets(func(opts *github.ListOptions) (*github.Secrets, *github.Response, error) {
		return svc.ListOrgSecrets(ctx, org, opts)
	})
}

// ListRepoSecrets returns every repository secret in the namespace.
func (c *Client) ListRepoSecrets(ctx context.Context, ns Namespace, owner, repo string) ([]*github.Secret, error) {
	svc, err := c.service(ns)
	if err != nil {
		return nil, err
	}
	return collectSecrets(func(opts *github.ListOptions) (*github.Secrets, *github.Response, error) {
		return svc.ListRepoSecrets(ctx, owner, repo, opts)
	})
}

// ListSelectedRepos returns the repositories an organization secret with
// "selected" visibility is shared with.
func (c *Client) ListSelectedRepos(ctx context.Context, ns Namespace, org, name string) ([]*github.Repository, error) {
	svc, err := c.service(ns)
	if err != nil {
		return nil, err
	}

	var repos []*github.Repository
	opts := &github.ListOptions{PerPage: perPage}
	for {
		list, resp, err := svc.ListSelectedReposForOrgSecret(ctx, org, name, opts)
		if err != nil {
			return nil, err
		}
		repos = append(repos, list.Repositories...)
		if resp.NextPage == 0 {
			return repos, nil
		}
		opts.Page = resp.NextPage
	}
}

func collectSecrets(list func(*github.ListOptions) (*github.Secrets, *github.Response, error)) ([]*github.Secret, error) {
	var all []*github.Secret
	opts := &github.ListOptions{PerPage: perPage}
	for {
		page, resp, err := list(opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Secrets...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}
