package configs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/ghadmin/internal/errors"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadFromEnvironment(t *testing.T) {
	cfg, err := Load("", false, envMap(map[string]string{
		"API_TOKEN":              "ghp_test",
		"GHE_HOSTNAME":           "github.example.com",
		"ORGANIZATION":           "acme",
		"ENTERPRISE":             "acme-corp",
		"SHARED_PROPERTIES_FILE": "secrets.csv",
		"ARCHIVE_PATH":           "migration.tar.gz",
		"GHADMIN_AUDIT_LOG":      "audit.jsonl",
	}))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		Token:        "ghp_test",
		Hostname:     "github.example.com",
		Organization: "acme",
		Enterprise:   "acme-corp",
		SecretsFile:  "secrets.csv",
		ArchivePath:  "migration.tar.gz",
		AuditLog:     "audit.jsonl",
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadLowercaseOrganizationFallback(t *testing.T) {
	cfg, err := Load("", false, envMap(map[string]string{"organization": "legacy-org"}))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Organization != "legacy-org" {
		t.Errorf("Organization = %q, want legacy-org", cfg.Organization)
	}

	cfg, _ = Load("", false, envMap(map[string]string{"organization": "legacy-org", "ORGANIZATION": "acme"}))
	if cfg.Organization != "acme" {
		t.Errorf("ORGANIZATION should win over organization, got %q", cfg.Organization)
	}
}

func TestLoadTOMLThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ghadmin.toml")
	content := `hostname = "ghes.internal"
organization = "from-file"
output_dir = "reports"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path, true, envMap(map[string]string{"ORGANIZATION": "from-env"}))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Hostname != "ghes.internal" {
		t.Errorf("Hostname = %q, want ghes.internal", cfg.Hostname)
	}
	if cfg.Organization != "from-env" {
		t.Errorf("Organization = %q, environment should override the file", cfg.Organization)
	}
	if cfg.OutputDir != "reports" {
		t.Errorf("OutputDir = %q, want reports", cfg.OutputDir)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ghadmin.toml")
	if err := os.WriteFile(path, []byte("organisation = \"typo\"\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := Load(path, true, envMap(nil))
	if !errors.Is(err, kerrors.ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	if _, err := Load(path, false, envMap(nil)); err != nil {
		t.Errorf("implicit missing config should be ignored, got %v", err)
	}
	if _, err := Load(path, true, envMap(nil)); !errors.Is(err, kerrors.ErrFileNotFound) {
		t.Errorf("explicit missing config error = %v, want ErrFileNotFound", err)
	}
}

func TestTokenNeverReadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ghadmin.toml")
	if err := SaveTOML(path, Config{Token: "leaked", Organization: "acme"}); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if strings.Contains(string(data), "leaked") {
		t.Errorf("token must not be written to the config file, got:\n%s", data)
	}

	cfg, err := Load(path, true, envMap(nil))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Token != "" {
		t.Errorf("Token = %q, want empty", cfg.Token)
	}
}

func TestURLs(t *testing.T) {
	tests := []struct {
		hostname    string
		wantREST    string
		wantGraphQL string
	}{
		{"", "https://api.github.com/", "https://api.github.com/graphql"},
		{"github.example.com", "https://github.example.com/api/v3/", "https://github.example.com/api/graphql"},
		{"https://github.example.com/", "https://github.example.com/api/v3/", "https://github.example.com/api/graphql"},
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			cfg := &Config{Hostname: tt.hostname}
			if got := cfg.RESTBaseURL(); got != tt.wantREST {
				t.Errorf("RESTBaseURL() = %q, want %q", got, tt.wantREST)
			}
			if got := cfg.GraphQLURL(); got != tt.wantGraphQL {
				t.Errorf("GraphQLURL() = %q, want %q", got, tt.wantGraphQL)
			}
			if got := cfg.IsEnterpriseServer(); got != (tt.hostname != "") {
				t.Errorf("IsEnterpriseServer() = %v", got)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	cfg := &Config{Token: "t", Organization: "acme"}

	if err := cfg.Require(FieldToken, FieldOrganization); err != nil {
		t.Errorf("Require() error = %v, want nil", err)
	}

	err := cfg.Require(FieldToken, FieldEnterprise)
	if !errors.Is(err, kerrors.ErrMissingConfig) {
		t.Fatalf("Require() error = %v, want ErrMissingConfig", err)
	}
	if !strings.Contains(err.Error(), "ENTERPRISE") {
		t.Errorf("error should name the variable, got %q", err.Error())
	}

	if err := (&Config{}).Require(FieldToken); !errors.Is(err, kerrors.ErrMissingToken) {
		t.Errorf("Require(FieldToken) error = %v, want ErrMissingToken", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("GHADMIN_TEST_DOTENV=from-file\nGHADMIN_TEST_PRESET=from-file\n"), 0600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv("GHADMIN_TEST_PRESET", "from-env")
	t.Cleanup(func() { os.Unsetenv("GHADMIN_TEST_DOTENV") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("GHADMIN_TEST_DOTENV"); got != "from-file" {
		t.Errorf("GHADMIN_TEST_DOTENV = %q, want from-file", got)
	}
	if got := os.Getenv("GHADMIN_TEST_PRESET"); got != "from-env" {
		t.Errorf(".env must not override the environment, got %q", got)
	}

	if err := LoadDotEnv(filepath.Join(dir, "absent.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	if got := (&Config{}).OutputPath("r.csv"); got != "r.csv" {
		t.Errorf("OutputPath() = %q, want r.csv", got)
	}
	if got := (&Config{OutputDir: "reports"}).OutputPath("r.csv"); got != filepath.Join("reports", "r.csv") {
		t.Errorf("OutputPath() = %q", got)
	}
}
