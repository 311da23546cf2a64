// Package artifacts writes rendered brand formats to an output directory.
// It is the only place where exports touch the filesystem.
package artifacts

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/errors"
	"github.com/conneroisu/branddna/internal/logging"
	"github.com/conneroisu/branddna/internal/serializer"
	"github.com/conneroisu/branddna/internal/validation"
)

// ManifestFile lists the artifacts of the last write.
const ManifestFile = "brand.manifest.json"

// Artifact describes one written file.
type Artifact struct {
	Format      string    `json:"format" yaml:"format"`
	Path        string    `json:"path" yaml:"path"`
	Size        int64     `json:"size" yaml:"size"`
	Hash        string    `json:"hash" yaml:"hash"`
	Unchanged   bool      `json:"unchanged" yaml:"unchanged"`
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`
}

// Manifest is the content of ManifestFile.
type Manifest struct {
	Brand       string     `json:"brand"`
	Version     string     `json:"version"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Artifacts   []Artifact `json:"artifacts"`
}

// Writer renders formats from a registry into a directory.
type Writer struct {
	registry *serializer.Registry
	dir      string
	logger   logging.Logger
	now      func() time.Time
	manifest bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l.WithComponent("artifacts")
		}
	}
}

// WithClock sets the time source for artifact stamps.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// WithManifest enables writing ManifestFile after each write.
func WithManifest(enabled bool) Option {
	return func(w *Writer) {
		w.manifest = enabled
	}
}

// NewWriter creates a writer for dir.
func NewWriter(registry *serializer.Registry, dir string, opts ...Option) (*Writer, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if err := validation.ValidatePath(dir); err != nil {
		return nil, err
	}

	w := &Writer{
		registry: registry,
		dir:      filepath.Clean(dir),
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Write renders b in each named format, or in every registered format
// when none is named, and writes the results. Files whose content is
// already current are left untouched.
func (w *Writer) Write(ctx context.Context, b brand.BrandDNA, formats ...string) ([]Artifact, error) {
	op := logging.StartOperation(w.logger, "write_artifacts")
	if len(formats) == 0 {
		formats = w.registry.Names()
	}

	out := make([]Artifact, 0, len(formats))
	for _, name := range formats {
		if err := ctx.Err(); err != nil {
			op.EndWithError(ctx, err)

			return out, err
		}

		a, err := w.writeOne(name, b)
		if err != nil {
			op.EndWithError(ctx, err)

			return out, err
		}
		out = append(out, a)
	}

	if w.manifest {
		if err := w.writeManifest(b, out); err != nil {
			op.EndWithError(ctx, err)

			return out, err
		}
	}

	op.End(ctx)
	w.logger.Info(ctx, "Artifacts written", "dir", w.dir, "count", len(out))

	return out, nil
}

func (w *Writer) writeOne(name string, b brand.BrandDNA) (Artifact, error) {
	f, err := w.registry.Get(name)
	if err != nil {
		return Artifact{}, err
	}

	data, err := w.registry.Render(name, b)
	if err != nil {
		return Artifact{}, err
	}

	path := filepath.Join(w.dir, f.FileName)
	a := Artifact{
		Format:      name,
		Path:        path,
		Size:        int64(len(data)),
		Hash:        Hash(data),
		GeneratedAt: w.now(),
	}

	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		a.Unchanged = true

		return a, nil
	}
	if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return Artifact{}, errors.WrapIO(err, errors.ErrCodeExportFailed, "read "+name+" artifact").WithFile(path)
	}

	if err := WriteFileAtomic(path, data); err != nil {
		return Artifact{}, errors.WrapIO(err, errors.ErrCodeExportFailed, "write "+name+" artifact").WithFile(path)
	}

	return a, nil
}

func (w *Writer) writeManifest(b brand.BrandDNA, written []Artifact) error {
	m := Manifest{
		Brand:       b.Metadata.Name,
		Version:     b.Metadata.Version,
		GeneratedAt: w.now(),
		Artifacts:   written,
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	path := filepath.Join(w.dir, ManifestFile)
	if err := WriteFileAtomic(path, append(data, '\n')); err != nil {
		return errors.WrapIO(err, errors.ErrCodeExportFailed, "write manifest").WithFile(path)
	}

	return nil
}

// ReadManifest loads the manifest in dir.
func ReadManifest(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return Manifest{}, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}

	return m, nil
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}

// WriteFileAtomic writes through a temporary file in the same directory
// and renames it over path.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}

	return nil
}
