package ghapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PolarWolf314/ghadmin/internal/configs"

	"github.com/google/go-github/v81/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

const perPage = 100

// Client talks to one GitHub instance over REST and GraphQL with a single bearer token.
type Client struct {
	rest    *github.Client
	graphql *githubv4.Client
}

// NewClient returns a Client authenticated with cfg.Token against the
// instance described by cfg.
func NewClient(ctx context.Context, cfg *configs.Config) (*Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
	return NewClientWithHTTP(oauth2.NewClient(ctx, ts), cfg.RESTBaseURL(), cfg.GraphQLURL())
}

// NewClientWithHTTP returns a Client that sends every request through
// httpClient. restURL must point at the REST root; a missing trailing
// slash is added.
func NewClientWithHTTP(httpClient *http.Client, restURL, graphqlURL string) (*Client, error) {
	if !strings.HasSuffix(restURL, "/") {
		restURL += "/"
	}
	base, err := url.Parse(restURL)
	if err != nil {
		return nil, fmt.Errorf("parsing REST base URL %q: %w", restURL, err)
	}

	rest := github.NewClient(httpClient)
	rest.BaseURL = base
	rest.UploadURL = base

	return &Client{
		rest:    rest,
		graphql: githubv4.NewEnterpriseClient(graphqlURL, httpClient),
	}, nil
}

// GetPublicKey fetches the sealing key published at path, e.g.
// "orgs/acme/actions/secrets/public-key".
func (c *Client) GetPublicKey(ctx context.Context, path string) (keyID, key string, err error) {
	req, err := c.rest.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return "", "", err
	}

	var pk github.PublicKey
	if _, err := c.rest.Do(ctx, req, &pk); err != nil {
		return "", "", err
	}
	if pk.GetKey() == "" {
		return "", "", fmt.Errorf("GET %s returned no key", path)
	}
	return pk.GetKeyID(), pk.GetKey(), nil
}

// PutSecret sends body as JSON to path with PUT and returns the HTTP status.
// The status is 0 when no response was received. A non-2xx status comes
// back together with the go-github error describing it.
func (c *Client) PutSecret(ctx context.Context, path string, body any) (int, error) {
	req, err := c.rest.NewRequest(http.MethodPut, path, body)
	if err != nil {
		return 0, err
	}

	resp, err := c.rest.Do(ctx, req, nil)
	if resp != nil {
		return resp.StatusCode, err
	}
	return 0, err
}
