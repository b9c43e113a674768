package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrBlobNotFound reports a stored name with no file under the root.
var ErrBlobNotFound = errors.New("blob not found")

// LocalStore keeps uploaded blobs under a single managed directory. Stored
// names are server-generated, so two uploads never collide regardless of the
// client-supplied file name.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", root, err)
	}
	return &LocalStore{root: root}, nil
}

// Save writes src to a freshly named file and returns the stored name along
// with the number of bytes written. The original name only contributes its
// base for human traceability; uniqueness comes from the uuid prefix.
func (s *LocalStore) Save(originalName string, src io.Reader) (string, int64, error) {
	storedName := uuid.New().String() + "-" + sanitizeName(originalName)

	dst, err := os.Create(filepath.Join(s.root, storedName))
	if err != nil {
		return "", 0, fmt.Errorf("create blob %s: %w", storedName, err)
	}

	size, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", 0, fmt.Errorf("write blob %s: %w", storedName, err)
	}
	if err := dst.Close(); err != nil {
		return "", 0, fmt.Errorf("close blob %s: %w", storedName, err)
	}

	return storedName, size, nil
}

// Resolve maps a stored name to a path under the root. Names that would
// escape the root are rejected; stored names are server-generated, so a
// traversal attempt here means corrupted state rather than client input.
func (s *LocalStore) Resolve(storedName string) (string, error) {
	fullPath := filepath.Join(s.root, storedName)
	if !strings.HasPrefix(filepath.Clean(fullPath), filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("stored name %q escapes the upload directory", storedName)
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", ErrBlobNotFound
		}
		return "", fmt.Errorf("stat blob %s: %w", storedName, err)
	}

	return fullPath, nil
}

func sanitizeName(name string) string {
	base := filepath.Base(filepath.ToSlash(name))
	if base == "." || base == ".." || base == "/" || base == "" {
		return "file"
	}
	return base
}
