package inventory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/PolarWolf314/ghadmin/internal/ghapi"
	logger "github.com/PolarWolf314/ghadmin/internal/logging"

	"github.com/google/go-github/v81/github"
)

type fakeSource struct {
	repos       []ghapi.Repository
	reposErr    error
	orgSecrets  map[ghapi.Namespace][]*github.Secret
	orgErr      error
	repoSecrets map[string][]*github.Secret // "ns/repo"
	repoErrs    map[string]error
	selected    map[string][]*github.Repository // "ns/name"
	selectedNS  []ghapi.Namespace
}

func (f *fakeSource) OrganizationRepositories(ctx context.Context, org string) ([]ghapi.Repository, error) {
	return f.repos, f.reposErr
}

func (f *fakeSource) ListOrgSecrets(ctx context.Context, ns ghapi.Namespace, org string) ([]*github.Secret, error) {
	if f.orgErr != nil {
		return nil, f.orgErr
	}
	return f.orgSecrets[ns], nil
}

func (f *fakeSource) ListRepoSecrets(ctx context.Context, ns ghapi.Namespace, owner, repo string) ([]*github.Secret, error) {
	key := string(ns) + "/" + repo
	if err := f.repoErrs[key]; err != nil {
		return nil, err
	}
	return f.repoSecrets[key], nil
}

func (f *fakeSource) ListSelectedRepos(ctx context.Context, ns ghapi.Namespace, org, name string) ([]*github.Repository, error) {
	f.selectedNS = append(f.selectedNS, ns)
	return f.selected[string(ns)+"/"+name], nil
}

func quiet() logger.Logger {
	return logger.Logger{Out: io.Discard, Err: io.Discard}
}

func sampleSource() *fakeSource {
	return &fakeSource{
		repos: []ghapi.Repository{
			{Name: "api", DatabaseID: 11, Visibility: "PRIVATE"},
			{Name: "web", DatabaseID: 12, Visibility: "PUBLIC"},
			{Name: "ops", DatabaseID: 13, Visibility: "INTERNAL"},
		},
		orgSecrets: map[ghapi.Namespace][]*github.Secret{
			ghapi.Actions: {
				{Name: "ALL_SECRET", Visibility: "all"},
				{Name: "PRIVATE_SECRET", Visibility: "private"},
			},
			ghapi.Dependabot: {
				{Name: "NPM_TOKEN", Visibility: "selected"},
			},
		},
		selected: map[string][]*github.Repository{
			"dependabot/NPM_TOKEN": {{Name: github.Ptr("web"), ID: github.Ptr(int64(12))}},
		},
		repoSecrets: map[string][]*github.Secret{
			"actions/api":    {{Name: "DEPLOY"}},
			"codespaces/ops": {{Name: "DEV_ENV"}},
		},
	}
}

func TestCollect(t *testing.T) {
	src := sampleSource()

	rows, err := Collect(context.Background(), src, "acme", quiet())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	want := []Row{
		{LevelOrganization, "Action", "ALL_SECRET", "all", "all_repositories", "NA"},
		{LevelOrganization, "Action", "PRIVATE_SECRET", "private", "api", "11"},
		{LevelOrganization, "Action", "PRIVATE_SECRET", "private", "ops", "13"},
		{LevelOrganization, "Dependabot", "NPM_TOKEN", "selected", "web", "12"},
		{LevelRepository, "Action", "DEPLOY", "repo", "api", "11"},
		{LevelRepository, "Codespaces", "DEV_ENV", "repo", "ops", "13"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Collect() =\n%v\nwant\n%v", rows, want)
	}

	// Selected repositories come from the secret's own product.
	if len(src.selectedNS) != 1 || src.selectedNS[0] != ghapi.Dependabot {
		t.Errorf("selected repositories listed for %v, want [dependabot]", src.selectedNS)
	}
}

func TestCollectSkipsFailingRepository(t *testing.T) {
	src := sampleSource()
	src.repoErrs = map[string]error{"actions/api": errors.New("403 Forbidden")}

	var stderr bytes.Buffer
	rows, err := Collect(context.Background(), src, "acme", logger.Logger{Out: io.Discard, Err: &stderr})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	for _, r := range rows {
		if r.Level == LevelRepository && r.RepositoryName == "api" && r.Kind == "Action" {
			t.Errorf("unexpected row for failing repository: %v", r)
		}
	}
	if !strings.Contains(stderr.String(), "acme/api") {
		t.Errorf("warning should name the repository, got %q", stderr.String())
	}
	// Other repositories are still reported.
	if rows[len(rows)-1].Name != "DEV_ENV" {
		t.Errorf("last row = %v, want DEV_ENV", rows[len(rows)-1])
	}
}

func TestCollectFailsOnOrganizationErrors(t *testing.T) {
	src := sampleSource()
	src.orgErr = errors.New("404 Not Found")
	if _, err := Collect(context.Background(), src, "acme", quiet()); err == nil {
		t.Error("Collect() should fail when organization secrets cannot be listed")
	}

	src = sampleSource()
	src.reposErr = errors.New("bad credentials")
	if _, err := Collect(context.Background(), src, "acme", quiet()); err == nil {
		t.Error("Collect() should fail when repositories cannot be listed")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []Row{
		{LevelOrganization, "Action", "ALL_SECRET", "all", "all_repositories", "NA"},
		{LevelRepository, "Dependabot", "TOKEN", "repo", "api", "11"},
	})
	if err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := "SecretLevel,SecretType,SecretName,SecretAccess,RepositoryName,RepositoryID\n" +
		"Organization,Action,ALL_SECRET,all,all_repositories,NA\n" +
		"Repository,Dependabot,TOKEN,repo,api,11\n"
	if buf.String() != want {
		t.Errorf("WriteCSV() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if got := buf.String(); got != strings.Join(Header, ",")+"\n" {
		t.Errorf("WriteCSV(nil) = %q", got)
	}
}
