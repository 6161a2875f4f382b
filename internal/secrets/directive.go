package secrets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/ghadmin/internal/errors"
	"github.com/PolarWolf314/ghadmin/internal/ghapi"
)

// Level is the scope a secret is stored at.
type Level string

const (
	LevelOrganization Level = "Organization"
	LevelRepository   Level = "Repository"
)

// Kind is the product a secret belongs to.
type Kind string

const (
	KindAction     Kind = "Action"
	KindDependabot Kind = "Dependabot"
)

// Namespace maps the kind onto its URL segment.
func (k Kind) Namespace() (ghapi.Namespace, bool) {
	switch k {
	case KindAction:
		return ghapi.Actions, true
	case KindDependabot:
		return ghapi.Dependabot, true
	default:
		return "", false
	}
}

// Visibility controls which repositories can read an organization secret.
type Visibility string

const (
	VisibilityAll      Visibility = "all"
	VisibilityPrivate  Visibility = "private"
	VisibilitySelected Visibility = "selected"
)

// Columns of the secrets file.
const (
	ColumnLevel          = "SecretLevel"
	ColumnKind           = "SecretType"
	ColumnName           = "SecretName"
	ColumnValue          = "SecretValue"
	ColumnVisibility     = "SecretAccess"
	ColumnRepositoryName = "RepositoryName"
	ColumnRepositoryID   = "RepositoryID"
)

// CSVHeader is the header row a secrets file must carry, in any order.
var CSVHeader = []string{
	ColumnLevel, ColumnKind, ColumnName, ColumnValue,
	ColumnVisibility, ColumnRepositoryName, ColumnRepositoryID,
}

// Directive is one row of the secrets file.
type Directive struct {
	// Line is the 1-based line of the row in its file.
	Line int

	Level Level
	Kind  Kind
	Name  string
	// Value is kept byte for byte as read from the file.
	Value      string
	Visibility Visibility
	RepoName   string
	// RepoIDs is the raw ';' separated list from the RepositoryID column.
	RepoIDs string
}

// String describes the directive without its value.
func (d Directive) String() string {
	s := fmt.Sprintf("%s %s secret %s", d.Level, d.Kind, d.Name)
	if d.Level == LevelRepository {
		return s + " in " + d.RepoName
	}
	if d.Visibility != "" {
		s += " (" + string(d.Visibility) + ")"
	}
	return s
}

// SelectedRepositoryIDs splits RepoIDs on ';', dropping empty entries.
func (d Directive) SelectedRepositoryIDs() []string {
	var ids []string
	for _, id := range strings.Split(d.RepoIDs, ";") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// LoadDirectives reads the secrets file at path.
func LoadDirectives(path string) ([]Directive, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	directives, err := ReadDirectives(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return directives, nil
}

// ReadDirectives parses a secrets CSV. Every column of CSVHeader must be
// present; rows may be ragged.
func ReadDirectives(r io.Reader) ([]Directive, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: file is empty", kerrors.ErrMissingColumn)
	}
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		index[col] = i
	}
	for _, col := range CSVHeader {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrMissingColumn, col)
		}
	}

	var directives []Directive
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return directives, nil
		}
		if err != nil {
			return nil, err
		}

		field := func(col string) string {
			if i := index[col]; i < len(record) {
				return record[i]
			}
			return ""
		}

		line, _ := reader.FieldPos(0)
		directives = append(directives, Directive{
			Line:       line,
			Level:      Level(stripSpaces(field(ColumnLevel))),
			Kind:       Kind(stripSpaces(field(ColumnKind))),
			Name:       stripSpaces(field(ColumnName)),
			Value:      field(ColumnValue),
			Visibility: Visibility(stripSpaces(field(ColumnVisibility))),
			RepoName:   strings.TrimSpace(field(ColumnRepositoryName)),
			RepoIDs:    strings.TrimSpace(field(ColumnRepositoryID)),
		})
	}
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
