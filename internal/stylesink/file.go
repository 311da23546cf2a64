package stylesink

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/conneroisu/branddna/internal/artifacts"
	"github.com/conneroisu/branddna/internal/validation"
)

// File writes the CSS to a file and deletes it on Remove.
type File struct {
	path  string
	mutex sync.Mutex
}

// NewFile creates a file sink for path.
func NewFile(path string) (*File, error) {
	if err := validation.ValidatePath(path); err != nil {
		return nil, err
	}

	return &File{path: filepath.Clean(path)}, nil
}

// Path returns the target path.
func (f *File) Path() string {
	return f.path
}

// Apply writes css to the target, creating parent directories.
func (f *File) Apply(css string) error {
	if err := checkCSS(css); err != nil {
		return err
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	return artifacts.WriteFileAtomic(f.path, []byte(css))
}

// Remove deletes the target. A missing file is not an error.
func (f *File) Remove() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", f.path, err)
	}

	return nil
}
