package configstack

import (
	"fmt"
	"io/fs"
	"os"
)

//go:generate mockgen -source=fs.go -destination=internal/mock/filesystem_mock.go -package=mock

// FileSystem abstracts the file access performed by the loader: existence
// checks and reads during a load pass, writes when a configuration is saved
// back to disk. Production code uses [NewOSFileSystem] (wrapped by
// [NewBundleFileSystem] so the embedded defaults are visible); tests inject
// an in-memory implementation and never touch the real filesystem.
type FileSystem interface {
	// IsFile reports whether name exists and is a regular file.
	IsFile(name string) bool

	// ReadFile returns the content of name.
	ReadFile(name string) ([]byte, error)

	// WriteFile writes data to name, creating it if necessary.
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

type osFileSystem struct{}

// NewOSFileSystem returns a [FileSystem] backed by the process filesystem.
func NewOSFileSystem() FileSystem {
	return osFileSystem{}
}

func (osFileSystem) IsFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

func (osFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (osFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

type bundleFileSystem struct {
	next FileSystem
}

// NewBundleFileSystem wraps next so that the bundled default configuration
// and base schema are served at their well-known paths ([DefaultConfigPath],
// [DefaultSchemaPath]). Every other path is delegated to next. The bundled
// documents are read-only; writing to their paths fails.
func NewBundleFileSystem(next FileSystem) FileSystem {
	return bundleFileSystem{next: next}
}

func (b bundleFileSystem) IsFile(name string) bool {
	if _, ok := bundled[name]; ok {
		return true
	}
	return b.next.IsFile(name)
}

func (b bundleFileSystem) ReadFile(name string) ([]byte, error) {
	if data, ok := bundled[name]; ok {
		return data, nil
	}
	return b.next.ReadFile(name)
}

func (b bundleFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if _, ok := bundled[name]; ok {
		return fmt.Errorf("bundled file %s is read-only", name)
	}
	return b.next.WriteFile(name, data, perm)
}
