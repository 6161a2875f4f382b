// Package configs builds the runtime configuration for ghadmin.
//
// Settings come from four places, highest precedence first:
//
//   - command-line flags (applied by the cmd package)
//   - process environment (API_TOKEN, GHE_HOSTNAME, ORGANIZATION, ...)
//   - a .env file in the working directory, loaded with godotenv
//   - a TOML file, ghadmin.toml by default
//
// The API token is never read from the TOML file.
//
// # Example ghadmin.toml
//
//	hostname     = "github.example.com"
//	organization = "acme"
//	enterprise   = "acme-corp"
//	secrets_file = "secrets.csv"
//	output_dir   = "reports"
//	audit_log    = "ghadmin-audit.jsonl"
//
// When hostname is set, REST calls go to https://<hostname>/api/v3/ and
// GraphQL calls to https://<hostname>/api/graphql.
package configs
