// Package secrets provisions GitHub Actions and Dependabot secrets.
//
// A run reads directives from a CSV file (one secret per row), and for each
// directive:
//
//  1. fetches the public key of the organization or repository the secret
//     belongs to, for the directive's kind
//  2. seals the value with that key in an anonymous libsodium sealed box
//  3. PUTs the ciphertext to the create-or-update endpoint
//
// # Endpoints
//
// The endpoint depends on the level and kind of the directive:
//
//	Organization  /orgs/{org}/{actions|dependabot}/secrets/{name}
//	Repository    /repos/{org}/{repo}/{actions|dependabot}/secrets/{name}
//
// Organization secrets also carry a visibility. With "selected", the
// RepositoryID column lists the repositories, separated by ';'. Action
// secrets send those ids as integers, Dependabot secrets as strings.
//
// # Results
//
// GitHub answers 201 when a secret is created and 204 when it is updated.
// Every other answer is a failure carrying the status code. A failing
// directive never stops the batch.
//
// Plaintext values are never logged. Directive.String omits them.
package secrets
