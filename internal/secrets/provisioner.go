package secrets

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	kerrors "github.com/PolarWolf314/ghadmin/internal/errors"
	"github.com/PolarWolf314/ghadmin/internal/ghapi"
	logger "github.com/PolarWolf314/ghadmin/internal/logging"
)

// API is the part of the GitHub client the provisioner needs.
// *ghapi.Client implements it.
type API interface {
	GetPublicKey(ctx context.Context, path string) (keyID, key string, err error)
	PutSecret(ctx context.Context, path string, body any) (int, error)
}

// PublicKey is a decoded sealing key and the id GitHub knows it by.
type PublicKey struct {
	KeyID string
	Key   *[KeySize]byte
}

// Status is the outcome of one directive.
type Status int

const (
	Failed Status = iota
	Created
	Updated
)

func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "failed"
	}
}

// Result reports what happened to one directive.
type Result struct {
	Name   string
	Level  Level
	Kind   Kind
	Target string
	Status Status
	// HTTPStatus is 0 when no upsert request was answered.
	HTTPStatus int
	Err        error
}

// Message renders the status line printed for the result.
func (r Result) Message() string {
	switch {
	case r.Status == Created:
		return fmt.Sprintf("Successfully created a new value for %s", r.Name)
	case r.Status == Updated:
		return fmt.Sprintf("Successfully updated an existing value for %s", r.Name)
	case r.HTTPStatus != 0:
		return fmt.Sprintf("Hmm. Creating or updating a property named '%s' failed with a following status code : %d", r.Name, r.HTTPStatus)
	default:
		return fmt.Sprintf("There was an issue with secret %s: %v", r.Name, r.Err)
	}
}

// Route is where a directive goes and what it sends besides the ciphertext.
type Route struct {
	// Target is "org" or "org/repo".
	Target     string
	KeyPath    string
	SecretPath string

	// Visibility and SelectedRepositoryIDs are only set for organization secrets.
	Visibility            Visibility
	SelectedRepositoryIDs any
}

type orgSecretBody struct {
	EncryptedValue        string `json:"encrypted_value"`
	KeyID                 string `json:"key_id"`
	Visibility            string `json:"visibility"`
	SelectedRepositoryIDs any    `json:"selected_repository_ids,omitempty"`
}

type repoSecretBody struct {
	EncryptedValue string `json:"encrypted_value"`
	KeyID          string `json:"key_id"`
}

// Provisioner creates or updates secrets of one organization.
type Provisioner struct {
	api API
	org string
	log logger.Logger
}

func NewProvisioner(api API, org string, log logger.Logger) *Provisioner {
	return &Provisioner{api: api, org: org, log: log}
}

// Route validates d and resolves its endpoints without calling GitHub.
func (p *Provisioner) Route(d Directive) (*Route, error) {
	ns, ok := d.Kind.Namespace()
	if !ok {
		return nil, fmt.Errorf("%w: unknown secret type %q", kerrors.ErrInvalidDirective, d.Kind)
	}
	if d.Name == "" {
		return nil, fmt.Errorf("%w: secret name is empty", kerrors.ErrInvalidDirective)
	}

	switch d.Level {
	case LevelOrganization:
		route := &Route{
			Target:     p.org,
			KeyPath:    ghapi.OrgPublicKeyPath(ns, p.org),
			SecretPath: ghapi.OrgSecretPath(ns, p.org, d.Name),
			Visibility: d.Visibility,
		}
		switch d.Visibility {
		case VisibilityAll, VisibilityPrivate:
		case VisibilitySelected:
			ids, err := selectedIDs(d)
			if err != nil {
				return nil, err
			}
			route.SelectedRepositoryIDs = ids
		default:
			return nil, fmt.Errorf("%w: unknown secret access %q", kerrors.ErrInvalidDirective, d.Visibility)
		}
		return route, nil

	case LevelRepository:
		if d.RepoName == "" {
			return nil, fmt.Errorf("%w: repository secret without %s", kerrors.ErrInvalidDirective, ColumnRepositoryName)
		}
		return &Route{
			Target:     p.org + "/" + d.RepoName,
			KeyPath:    ghapi.RepoPublicKeyPath(ns, p.org, d.RepoName),
			SecretPath: ghapi.RepoSecretPath(ns, p.org, d.RepoName, d.Name),
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown secret level %q", kerrors.ErrInvalidDirective, d.Level)
	}
}

// selectedIDs types the repository ids the way each product expects them:
// integers for Actions, strings for Dependabot.
func selectedIDs(d Directive) (any, error) {
	raw := d.SelectedRepositoryIDs()
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: selected access without any %s", kerrors.ErrInvalidDirective, ColumnRepositoryID)
	}
	if d.Kind == KindDependabot {
		return raw, nil
	}

	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: repository id %q is not a number", kerrors.ErrInvalidDirective, s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// FetchPublicKey fetches the key secrets of kind are sealed with at level.
// repo is only used for repository secrets.
func (p *Provisioner) FetchPublicKey(ctx context.Context, level Level, kind Kind, repo string) (*PublicKey, error) {
	ns, ok := kind.Namespace()
	if !ok {
		return nil, fmt.Errorf("%w: unknown secret type %q", kerrors.ErrInvalidDirective, kind)
	}

	var path string
	switch level {
	case LevelOrganization:
		path = ghapi.OrgPublicKeyPath(ns, p.org)
	case LevelRepository:
		if repo == "" {
			return nil, fmt.Errorf("%w: repository secret without %s", kerrors.ErrInvalidDirective, ColumnRepositoryName)
		}
		path = ghapi.RepoPublicKeyPath(ns, p.org, repo)
	default:
		return nil, fmt.Errorf("%w: unknown secret level %q", kerrors.ErrInvalidDirective, level)
	}
	return p.fetchPublicKey(ctx, path)
}

func (p *Provisioner) fetchPublicKey(ctx context.Context, path string) (*PublicKey, error) {
	keyID, keyB64, err := p.api.GetPublicKey(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrKeyFetch, path, err)
	}
	key, err := DecodePublicKey(keyB64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", kerrors.ErrKeyFetch, path, err)
	}
	p.log.Debugf("Fetched public key %s from %s", keyID, path)
	return &PublicKey{KeyID: keyID, Key: key}, nil
}

// Dispatch provisions a single directive. It never panics on bad input and
// reports every problem through Result.Err.
func (p *Provisioner) Dispatch(ctx context.Context, d Directive) Result {
	res := Result{Name: d.Name, Level: d.Level, Kind: d.Kind}

	route, err := p.Route(d)
	if err != nil {
		res.Err = err
		return res
	}
	res.Target = route.Target

	key, err := p.fetchPublicKey(ctx, route.KeyPath)
	if err != nil {
		res.Err = err
		return res
	}

	encrypted, err := EncryptSecret(key.Key, d.Value)
	if err != nil {
		res.Err = err
		return res
	}

	var body any = repoSecretBody{EncryptedValue: encrypted, KeyID: key.KeyID}
	if d.Level == LevelOrganization {
		body = orgSecretBody{
			EncryptedValue:        encrypted,
			KeyID:                 key.KeyID,
			Visibility:            string(route.Visibility),
			SelectedRepositoryIDs: route.SelectedRepositoryIDs,
		}
	}

	p.log.Infof("PUT %s", route.SecretPath)
	status, err := p.api.PutSecret(ctx, route.SecretPath, body)
	res.HTTPStatus = status

	switch status {
	case http.StatusCreated:
		res.Status = Created
	case http.StatusNoContent:
		res.Status = Updated
	default:
		res.Status = Failed
		if err == nil {
			err = fmt.Errorf("unexpected status %d", status)
		}
		res.Err = fmt.Errorf("%w: PUT %s: %v", kerrors.ErrUpsert, route.SecretPath, err)
	}
	return res
}

// Provision dispatches directives in order, one at a time. A failed
// directive is recorded and the batch carries on.
func (p *Provisioner) Provision(ctx context.Context, directives []Directive) []Result {
	results := make([]Result, 0, len(directives))
	for _, d := range directives {
		p.log.Debugf("Line %d: %s", d.Line, d)
		results = append(results, p.Dispatch(ctx, d))
	}
	return results
}
