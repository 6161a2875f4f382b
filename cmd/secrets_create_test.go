package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/PolarWolf314/ghadmin/internal/audit"

	"golang.org/x/crypto/nacl/box"
)

const createCSV = `SecretLevel,SecretType,SecretName,SecretValue,SecretAccess,RepositoryName,RepositoryID
Organization,Action,NEW_SECRET,value-one,selected,,1;2;3
Organization,Dependabot,OLD_SECRET,value-two,all,,
Repository,Action,DENIED,value-three,,api,
`

// secretsHandler serves public keys and answers PUTs by secret name.
type secretsHandler struct {
	t   *testing.T
	pub string

	mu   sync.Mutex
	puts []string
}

func newSecretsHandler(t *testing.T) *secretsHandler {
	pub, _, err := box.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	return &secretsHandler{t: t, pub: base64.StdEncoding.EncodeToString(pub[:])}
}

func (h *secretsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/public-key") {
		fmt.Fprintf(w, `{"key_id":"kid","key":%q}`, h.pub)
		return
	}
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	h.puts = append(h.puts, r.URL.Path)
	switch {
	case strings.HasSuffix(r.URL.Path, "/NEW_SECRET"):
		w.WriteHeader(http.StatusCreated)
	case strings.HasSuffix(r.URL.Path, "/OLD_SECRET"):
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"Resource not accessible by integration"}`)
	}
}

func (h *secretsHandler) putCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.puts)
}

func TestSecretsCreate(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	dir := setupTestEnvironment(t, map[string]string{"API_TOKEN": "ghp_test"})
	if err := os.WriteFile(filepath.Join(dir, "secrets.csv"), []byte(createCSV), 0600); err != nil {
		t.Fatal(err)
	}
	handler := newSecretsHandler(t)
	useFakeGitHub(t, handler)

	output := runCLI(t, "secrets", "create", "--org", "acme", "--file", "secrets.csv", "--audit-log", "audit.jsonl")

	for _, want := range []string{
		"Successfully created a new value for NEW_SECRET",
		"Successfully updated an existing value for OLD_SECRET",
		"Hmm. Creating or updating a property named 'DENIED' failed with a following status code : 403",
		"1 created, 1 updated, 1 failed",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "value-") {
		t.Errorf("output leaks a secret value:\n%s", output)
	}
	if handler.putCount() != 3 {
		t.Errorf("PUT count = %d, want 3", handler.putCount())
	}

	entries := readAuditLog(t, filepath.Join(dir, "audit.jsonl"))
	if len(entries) != 3 {
		t.Errorf("got %d audit entries, want 3", len(entries))
	}
}

func TestSecretsCreateFromEnvironment(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	dir := setupTestEnvironment(t, map[string]string{
		"API_TOKEN":              "ghp_test",
		"ORGANIZATION":           "acme",
		"SHARED_PROPERTIES_FILE": "input.csv",
	})
	if err := os.WriteFile(filepath.Join(dir, "input.csv"), []byte(createCSV), 0600); err != nil {
		t.Fatal(err)
	}
	useFakeGitHub(t, newSecretsHandler(t))

	output := runCLI(t, "secrets", "create")
	if !strings.Contains(output, "Successfully created a new value for NEW_SECRET") {
		t.Errorf("output:\n%s", output)
	}
}

func TestSecretsCreateDryRun(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	dir := setupTestEnvironment(t, map[string]string{})
	if err := os.WriteFile(filepath.Join(dir, "secrets.csv"), []byte(createCSV+"Enterprise,Action,BAD,v,all,,\n"), 0600); err != nil {
		t.Fatal(err)
	}
	handler := newSecretsHandler(t)
	useFakeGitHub(t, handler)

	// No token is needed for a dry run.
	output := runCLI(t, "secrets", "create", "--org", "acme", "--file", "secrets.csv", "--dry-run")

	for _, want := range []string{
		"PUT /orgs/acme/actions/secrets/NEW_SECRET",
		"PUT /orgs/acme/dependabot/secrets/OLD_SECRET",
		"PUT /repos/acme/api/actions/secrets/DENIED",
		"There was an issue with secret BAD",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if handler.putCount() != 0 {
		t.Errorf("dry run sent %d PUTs", handler.putCount())
	}
}

func TestSecretsCreateMissingToken(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	setupTestEnvironment(t, map[string]string{})

	output := runCLI(t, "secrets", "create", "--org", "acme", "--file", "secrets.csv")
	if !strings.Contains(output, "No GitHub API token found") {
		t.Errorf("output:\n%s", output)
	}
}

func TestSecretsCreateMissingOrganization(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	setupTestEnvironment(t, map[string]string{"API_TOKEN": "ghp_test"})
	useFakeGitHub(t, newSecretsHandler(t))

	output := runCLI(t, "secrets", "create", "--file", "secrets.csv")
	if !strings.Contains(output, "ORGANIZATION") {
		t.Errorf("output should name the missing setting:\n%s", output)
	}
}

func TestSecretsCreateMissingFile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	setupTestEnvironment(t, map[string]string{"API_TOKEN": "ghp_test"})
	useFakeGitHub(t, newSecretsHandler(t))

	output := runCLI(t, "secrets", "create", "--org", "acme", "--file", "nope.csv")
	if !strings.Contains(output, "nope.csv") {
		t.Errorf("output should name the missing file:\n%s", output)
	}
}

// readAuditLog decodes every line of the audit log at path.
func readAuditLog(t *testing.T, path string) []audit.Entry {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading audit log: %v", err)
	}
	var entries []audit.Entry
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var e audit.Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("decoding audit line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}
