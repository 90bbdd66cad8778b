// AngelaMos | 2026
// store.go

package upload

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrForeignURL = errors.New("url is not a stored upload")

// Store keeps uploads as flat files under dir and exposes them under
// urlPrefix.
type Store struct {
	dir       string
	urlPrefix string
}

func NewStore(dir, urlPrefix string) *Store {
	return &Store{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) URLPrefix() string {
	return s.urlPrefix
}

// Save writes data under a fresh random name and returns its public URL.
func (s *Store) Save(data []byte, ext string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil { //nolint:gosec // public asset
		return "", fmt.Errorf("write upload: %w", err)
	}

	return s.urlPrefix + "/" + name, nil
}

// Remove deletes the file behind a URL returned by Save. A file that is
// already gone is not an error.
func (s *Store) Remove(url string) error {
	name, err := s.fileName(url)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}

	return nil
}

// Writable probes the upload directory with a throwaway file.
func (s *Store) Writable() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.CreateTemp(s.dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("upload dir not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()       //nolint:errcheck // probe file
	_ = os.Remove(name) //nolint:errcheck // probe file

	return nil
}

// Files serves stored uploads without directory listings.
func (s *Store) Files() http.Handler {
	fs := http.StripPrefix(s.urlPrefix, http.FileServer(http.Dir(s.dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		fs.ServeHTTP(w, r)
	})
}

func (s *Store) fileName(url string) (string, error) {
	if !strings.HasPrefix(url, s.urlPrefix+"/") {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, url)
	}

	name := strings.TrimPrefix(url, s.urlPrefix+"/")
	if name == "" || name != path.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, url)
	}

	return name, nil
}
