package safeio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

var (
	// ErrOutsideRoot is returned for names that would resolve outside the root.
	ErrOutsideRoot = errors.New("safeio: path traversal not allowed")
	// ErrInvalidPath is returned for empty, absolute or nested names.
	ErrInvalidPath = errors.New("safeio: invalid path")
)

const fileMode os.FileMode = 0o644

// SafeFS provides file helpers locked to a single flat directory.
type SafeFS struct {
	fs billy.Filesystem
}

// New wraps an existing billy filesystem; its root is the locked directory.
func New(fsys billy.Filesystem) *SafeFS {
	return &SafeFS{fs: fsys}
}

// NewOS locks all operations to root on the host filesystem. The directory
// does not have to exist yet.
func NewOS(root string) (*SafeFS, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("safeio: empty root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &SafeFS{fs: osfs.New(abs, osfs.WithBoundOS())}, nil
}

// Root returns the directory bound to this SafeFS.
func (s *SafeFS) Root() string {
	if s == nil || s.fs == nil {
		return ""
	}
	return s.fs.Root()
}

// ResolveName validates a user supplied file name and returns its clean form.
// Only a single path component directly inside the root is accepted.
func (s *SafeFS) ResolveName(userPath string) (string, error) {
	if s == nil || s.fs == nil {
		return "", errors.New("safeio: filesystem not configured")
	}
	if strings.TrimSpace(userPath) == "" {
		return "", ErrInvalidPath
	}
	slashed := filepath.ToSlash(userPath)
	if path.IsAbs(slashed) || filepath.IsAbs(userPath) || filepath.VolumeName(userPath) != "" {
		return "", fmt.Errorf("%w: absolute path %q", ErrInvalidPath, userPath)
	}
	for _, seg := range strings.Split(slashed, "/") {
		if seg == ".." {
			return "", ErrOutsideRoot
		}
	}
	clean := path.Clean(slashed)
	if clean == "." || strings.Contains(clean, "/") {
		return "", fmt.Errorf("%w: %q is not a file in the root", ErrInvalidPath, userPath)
	}
	return clean, nil
}

// Stat returns metadata for a validated name.
func (s *SafeFS) Stat(name string) (fs.FileInfo, error) {
	clean, err := s.ResolveName(name)
	if err != nil {
		return nil, err
	}
	return s.fs.Stat(clean)
}

// ReadFile reads a regular file directly under the root.
func (s *SafeFS) ReadFile(name string) ([]byte, error) {
	clean, err := s.ResolveName(name)
	if err != nil {
		return nil, err
	}
	info, err := s.fs.Stat(clean)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.New("safeio: path is a directory")
	}
	return util.ReadFile(s.fs, clean)
}

// Exists reports whether name is present under the root.
func (s *SafeFS) Exists(name string) (bool, error) {
	_, err := s.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Glob returns the regular files matching pattern relative to the root,
// sorted by path. A missing root matches nothing.
func (s *SafeFS) Glob(pattern string) ([]string, error) {
	if s == nil || s.fs == nil {
		return nil, errors.New("safeio: filesystem not configured")
	}
	matches, err := util.Glob(s.fs, pattern)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := s.fs.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}

// ReadMatch reads a path returned by Glob. Unlike ReadFile it accepts nested
// relative paths, which the billy filesystem keeps inside its root.
func (s *SafeFS) ReadMatch(rel string) ([]byte, error) {
	if s == nil || s.fs == nil {
		return nil, errors.New("safeio: filesystem not configured")
	}
	return util.ReadFile(s.fs, rel)
}

// WriteFileAtomic writes data to name through a temporary file in the same
// directory followed by a rename, so readers never observe a partial file.
func (s *SafeFS) WriteFileAtomic(name string, data []byte) (err error) {
	clean, err := s.ResolveName(name)
	if err != nil {
		return err
	}
	tmp, err := util.TempFile(s.fs, ".", "."+clean+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := path.Base(filepath.ToSlash(tmp.Name()))
	defer func() {
		if err != nil {
			_ = s.fs.Remove(tmpName)
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	// temp files are created 0600
	if ch, ok := s.fs.(billy.Chmod); ok {
		if err = ch.Chmod(tmpName, fileMode); err != nil {
			return fmt.Errorf("chmod temp file: %w", err)
		}
	}
	if err = s.fs.Rename(tmpName, clean); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// MkdirRoot creates the root directory and its parents.
func MkdirRoot(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	return os.MkdirAll(abs, 0o755)
}
