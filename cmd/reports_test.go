package cmd

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// inventoryHandler serves one repository with one secret of each level.
func inventoryHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"organization":{"repositories":{
			"nodes":[{"name":"api","databaseId":11,"visibility":"PRIVATE","updatedAt":"2024-05-01T10:00:00Z"}],
			"pageInfo":{"endCursor":"c1","hasNextPage":false}}}}}`)
	})
	mux.HandleFunc("/orgs/acme/actions/secrets", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total_count":1,"secrets":[{"name":"ORG_TOKEN","visibility":"private"}]}`)
	})
	mux.HandleFunc("/repos/acme/api/dependabot/secrets", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total_count":1,"secrets":[{"name":"NPM_TOKEN"}]}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total_count":0,"secrets":[]}`)
	})
	return mux
}

func TestSecretsExport(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	dir := setupTestEnvironment(t, map[string]string{"API_TOKEN": "ghp_test", "organization": "acme"})
	useFakeGitHub(t, inventoryHandler())

	output := runCLI(t, "secrets", "export", "--output-dir", "reports")
	if !strings.Contains(output, "Exported 2 secret row(s)") {
		t.Fatalf("output:\n%s", output)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "reports", "*-acme-organization-secrets-report.csv"))
	if len(matches) != 1 {
		t.Fatalf("report files = %v", matches)
	}
	data, _ := os.ReadFile(matches[0])
	want := "SecretLevel,SecretType,SecretName,SecretAccess,RepositoryName,RepositoryID\n" +
		"Organization,Action,ORG_TOKEN,private,api,11\n" +
		"Repository,Dependabot,NPM_TOKEN,repo,api,11\n"
	if string(data) != want {
		t.Errorf("report =\n%s\nwant\n%s", data, want)
	}
}

func TestReportNetwork(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	dir := setupTestEnvironment(t, map[string]string{"API_TOKEN": "ghp_test"})

	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		body.ReadFrom(r.Body)
		if strings.Contains(body.String(), "enterprise(") {
			fmt.Fprint(w, `{"data":{"enterprise":{"organizations":{"nodes":[{"login":"acme"}],"pageInfo":{"endCursor":"c","hasNextPage":false}}}}}`)
			return
		}
		fmt.Fprint(w, `{"data":{"organization":{"repositories":{
			"nodes":[{"name":"api","databaseId":11,"visibility":"PUBLIC","updatedAt":"2024-05-01T10:00:00Z"}],
			"pageInfo":{"endCursor":"c1","hasNextPage":false}}}}}`)
	})
	mux.HandleFunc("/repos/acme/api/commits", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"commit":{"author":{"name":"Mona","email":"mona@example.com","date":"2024-05-01T10:00:00Z"}}}]`)
	})
	mux.HandleFunc("/repos/acme/api/branches", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name":"main"}]`)
	})
	mux.HandleFunc("/repos/acme/api/forks", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	useFakeGitHub(t, mux)

	output := runCLI(t, "report", "network", "--enterprise", "acme-corp")
	if !strings.Contains(output, "Reported 1 repositories in 1 organization(s)") {
		t.Fatalf("output:\n%s", output)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*-acme-corp-enterprise-network-report.json"))
	if len(matches) != 1 {
		t.Fatalf("report files = %v", matches)
	}
	data, _ := os.ReadFile(matches[0])
	for _, want := range []string{`"org_name": "acme"`, `"num_branches": 1`, `"email": "mona@example.com"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("report missing %s:\n%s", want, data)
		}
	}
}

func TestReportNetworkMissingEnterprise(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	setupTestEnvironment(t, map[string]string{"API_TOKEN": "ghp_test"})
	useFakeGitHub(t, http.NotFoundHandler())

	output := runCLI(t, "report", "network")
	if !strings.Contains(output, "ENTERPRISE") {
		t.Errorf("output should name the missing setting:\n%s", output)
	}
}

func TestMigrationsUserMapping(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	dir := setupTestEnvironment(t, map[string]string{})

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	users := `[{"login":"mona","name":"Mona","url":"https://github.com/mona","emails":[{"address":"mona@example.com","primary":true}]}]`
	tw.WriteHeader(&tar.Header{Name: "users_000001.json", Mode: 0644, Size: int64(len(users)), Typeflag: tar.TypeReg})
	tw.Write([]byte(users))
	tw.Close()
	gz.Close()
	if err := os.WriteFile(filepath.Join(dir, "archive.tar.gz"), buf.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}

	// No token is needed to read an archive.
	output := runCLI(t, "migrations", "user-mapping", "--archive", "archive.tar.gz")
	if !strings.Contains(output, "Wrote 1 user(s) to user-mapping.csv") {
		t.Fatalf("output:\n%s", output)
	}

	data, err := os.ReadFile(filepath.Join(dir, "user-mapping.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "login,name,email,url\nmona,Mona,mona@example.com,https://github.com/mona\n" {
		t.Errorf("user-mapping.csv =\n%s", data)
	}
}

func TestMigrationsUserMappingBadArchive(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	dir := setupTestEnvironment(t, map[string]string{"ARCHIVE_PATH": "archive.tar.gz"})
	if err := os.WriteFile(filepath.Join(dir, "archive.tar.gz"), []byte("not gzip"), 0600); err != nil {
		t.Fatal(err)
	}

	output := runCLI(t, "migrations", "user-mapping")
	if !strings.Contains(output, "invalid file type") {
		t.Errorf("output:\n%s", output)
	}
}
