package migrations

import (
	"archive/tar"
	"compress/gzip"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/ghadmin/internal/errors"
)

// UserMappingFile is the name of the generated mapping.
const UserMappingFile = "user-mapping.csv"

// UserMappingHeader is the first row of the mapping.
var UserMappingHeader = []string{"login", "name", "email", "url"}

// User is one row of the mapping.
type User struct {
	Login string
	Name  string
	Email string
	URL   string
}

type archivedUser struct {
	Login  string `json:"login"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Emails []struct {
		Address string `json:"address"`
		Primary bool   `json:"primary"`
	} `json:"emails"`
}

// ExtractUserMappingsFile opens the .tar.gz migration archive at archivePath.
func ExtractUserMappingsFile(archivePath string) ([]User, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, archivePath)
		}
		return nil, err
	}
	defer f.Close()

	return ExtractUserMappings(f)
}

// ExtractUserMappings reads every users_*.json entry of a gzipped tar
// migration archive, in archive order.
func ExtractUserMappings(r io.Reader) ([]User, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not a gzip file: %v", kerrors.ErrInvalidFileType, err)
	}
	defer gz.Close()

	var users []User
	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return users, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidArchive, err)
		}
		if header.Typeflag != tar.TypeReg || !strings.Contains(header.Name, "users_") {
			continue
		}

		var archived []archivedUser
		if err := json.NewDecoder(tr).Decode(&archived); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidArchive, header.Name, err)
		}
		for _, u := range archived {
			users = append(users, toUser(u))
		}
	}
}

func toUser(u archivedUser) User {
	out := User{Login: u.Login, Name: u.Name, URL: u.URL}
	for _, e := range u.Emails {
		if e.Primary {
			out.Email = e.Address
		}
	}
	return out
}

// WriteUserMappingCSV writes UserMappingHeader followed by users.
func WriteUserMappingCSV(w io.Writer, users []User) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(UserMappingHeader); err != nil {
		return err
	}
	for _, u := range users {
		if err := cw.Write([]string{u.Login, u.Name, u.Email, u.URL}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
