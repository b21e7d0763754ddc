package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultFileName is the token file created in the user's home directory.
const DefaultFileName = ".moviecat_token"

// DefaultPath returns the default token file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultFileName)
}

// File persists the token with 0600 permissions so that consecutive CLI
// invocations share one session. A missing file means no token.
type File struct {
	mu   sync.Mutex
	path string
}

var _ Store = (*File)(nil)

// NewFile returns a file store at path, or at DefaultPath when path is empty.
func NewFile(path string) *File {
	if path == "" {
		path = DefaultPath()
	}
	return &File{path: path}
}

func (f *File) Path() string { return f.path }

func (f *File) Get() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := os.ReadFile(f.path)
	if err != nil {
		return "", false
	}
	tok := strings.TrimSpace(string(b))
	return tok, tok != ""
}

func (f *File) Set(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if token == "" {
		return f.remove()
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(token), 0o600)
}

func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remove()
}

func (f *File) remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
