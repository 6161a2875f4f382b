// Package ghapi is the single point of contact with the GitHub API.
//
// REST calls go through google/go-github, GraphQL queries through
// shurcooL/githubv4. Both share one oauth2 transport that sends
// "Authorization: Bearer <token>".
//
// Secret upserts are sent with go-github's NewRequest/Do rather than the
// typed CreateOrUpdate*Secret helpers, because the Dependabot endpoint is
// fed repository identifiers as strings, which the typed payloads cannot
// express.
//
// Paths are relative to the REST root ("orgs/acme/actions/secrets/X"), so
// the same code serves github.com and GitHub Enterprise Server.
package ghapi
