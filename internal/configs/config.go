package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/ghadmin/internal/errors"

	"github.com/joho/godotenv"
)

const (
	// DefaultConfigFile is read from the working directory when --config is not given.
	DefaultConfigFile = "ghadmin.toml"

	// DefaultEnvFile is loaded into the process environment if present.
	DefaultEnvFile = ".env"

	publicAPIURL     = "https://api.github.com/"
	publicGraphQLURL = "https://api.github.com/graphql"
)

// Config holds everything a command needs to reach GitHub.
// It is built once per invocation and passed to workflows explicitly.
type Config struct {
	// Token is only ever read from the environment or a terminal prompt.
	Token string `toml:"-"`

	// Hostname is the GitHub Enterprise Server host. Empty means github.com.
	Hostname     string `toml:"hostname"`
	Organization string `toml:"organization"`
	Enterprise   string `toml:"enterprise"`
	SecretsFile  string `toml:"secrets_file"`
	ArchivePath  string `toml:"archive_path"`
	OutputDir    string `toml:"output_dir"`
	AuditLog     string `toml:"audit_log"`
}

// Field names a setting that a command may require.
type Field int

const (
	FieldToken Field = iota
	FieldOrganization
	FieldEnterprise
	FieldSecretsFile
	FieldArchivePath
)

// String returns the environment variable that sets the field.
func (f Field) String() string {
	switch f {
	case FieldToken:
		return "API_TOKEN"
	case FieldOrganization:
		return "ORGANIZATION"
	case FieldEnterprise:
		return "ENTERPRISE"
	case FieldSecretsFile:
		return "SHARED_PROPERTIES_FILE"
	case FieldArchivePath:
		return "ARCHIVE_PATH"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Load builds a Config from the optional TOML file, then overlays values
// found through getenv. A missing configFile is not an error unless it was
// named explicitly.
func Load(configFile string, explicit bool, getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := LoadTOML(configFile, cfg); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidConfig, configFile, err)
			}
		} else if explicit {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, configFile)
		}
	}

	cfg.applyEnv(getenv)
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, keys ...string) {
		for _, key := range keys {
			if v := strings.TrimSpace(getenv(key)); v != "" {
				*dst = v
				return
			}
		}
	}

	set(&c.Token, "API_TOKEN")
	set(&c.Hostname, "GHE_HOSTNAME")
	// The inventory script historically read a lower-case variable.
	set(&c.Organization, "ORGANIZATION", "organization")
	set(&c.Enterprise, "ENTERPRISE")
	set(&c.SecretsFile, "SHARED_PROPERTIES_FILE")
	set(&c.ArchivePath, "ARCHIVE_PATH")
	set(&c.AuditLog, "GHADMIN_AUDIT_LOG")
}

// Require returns ErrMissingConfig naming the first empty field.
func (c *Config) Require(fields ...Field) error {
	for _, f := range fields {
		var v string
		switch f {
		case FieldToken:
			if c.Token == "" {
				return kerrors.ErrMissingToken
			}
			continue
		case FieldOrganization:
			v = c.Organization
		case FieldEnterprise:
			v = c.Enterprise
		case FieldSecretsFile:
			v = c.SecretsFile
		case FieldArchivePath:
			v = c.ArchivePath
		}
		if v == "" {
			return fmt.Errorf("%w: %s", kerrors.ErrMissingConfig, f)
		}
	}
	return nil
}

// host returns Hostname without scheme or trailing slash.
func (c *Config) host() string {
	h := strings.TrimSpace(c.Hostname)
	h = strings.TrimPrefix(h, "https://")
	h = strings.TrimPrefix(h, "http://")
	return strings.TrimRight(h, "/")
}

// RESTBaseURL returns the REST API root, always ending in a slash.
func (c *Config) RESTBaseURL() string {
	if h := c.host(); h != "" {
		return "https://" + h + "/api/v3/"
	}
	return publicAPIURL
}

// GraphQLURL returns the GraphQL endpoint.
func (c *Config) GraphQLURL() string {
	if h := c.host(); h != "" {
		return "https://" + h + "/api/graphql"
	}
	return publicGraphQLURL
}

// IsEnterpriseServer reports whether a GitHub Enterprise Server host is configured.
func (c *Config) IsEnterpriseServer() bool {
	return c.host() != ""
}

// OutputPath joins name onto OutputDir, defaulting to the working directory.
func (c *Config) OutputPath(name string) string {
	if c.OutputDir == "" {
		return name
	}
	return filepath.Join(c.OutputDir, name)
}
