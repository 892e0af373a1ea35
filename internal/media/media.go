// Package media is the object store for product images: files on disk under
// the configured media dir, served publicly at /media/<name>.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"shopgram/internal/domain"
)

type Store struct {
	dir     string
	baseURL string
}

func NewStore(dir, publicBaseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir %s: %w", dir, err)
	}
	return &Store{dir: dir, baseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save writes data under a fresh random name and returns its public URL.
// Saved objects are never deleted here; orphans from failed product inserts
// are left for operators to reconcile.
func (s *Store) Save(data []byte, ext string) (string, error) {
	name := uuid.NewString() + "." + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", &domain.ExternalServiceError{Op: "media.save", Err: err}
	}
	return s.baseURL + "/media/" + name, nil
}
