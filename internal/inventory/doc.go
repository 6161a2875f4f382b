// Package inventory builds the organization secrets report.
//
// The report has one row per secret and repository that can read it.
// Organization secrets with "selected" access expand to the repositories
// they are shared with, "private" ones to every private and internal
// repository, and "all" ones to a single all_repositories row. Repository
// secrets are listed per repository with access "repo".
//
// Secret values are never read. GitHub does not return them.
package inventory
