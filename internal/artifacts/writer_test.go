package artifacts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/errors"
	"github.com/conneroisu/branddna/internal/serializer"
)

var now = time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

func newWriter(t *testing.T, opts ...Option) *Writer {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return now })}, opts...)
	w, err := NewWriter(serializer.DefaultRegistry(serializer.DefaultCSSOptions()), t.TempDir(), opts...)
	require.NoError(t, err)

	return w
}

func TestWriteAllFormats(t *testing.T) {
	w := newWriter(t)
	b := brand.New("Acme", now)

	written, err := w.Write(context.Background(), b)
	require.NoError(t, err)

	require.Len(t, written, 6)
	for _, a := range written {
		data, err := os.ReadFile(a.Path)
		require.NoError(t, err, a.Format)
		assert.Equal(t, a.Size, int64(len(data)))
		assert.Equal(t, Hash(data), a.Hash)
		assert.False(t, a.Unchanged)
		assert.Equal(t, now, a.GeneratedAt)
	}

	css, err := os.ReadFile(filepath.Join(w.Dir(), "brand.css"))
	require.NoError(t, err)
	assert.Equal(t, serializer.ToCSS(b, serializer.DefaultCSSOptions()), string(css))
}

func TestWriteSelectedFormats(t *testing.T) {
	w := newWriter(t)

	written, err := w.Write(context.Background(), brand.New("Acme", now), serializer.FormatCSS, serializer.FormatTS)
	require.NoError(t, err)

	require.Len(t, written, 2)
	assert.Equal(t, filepath.Join(w.Dir(), "brand.css"), written[0].Path)
	assert.Equal(t, filepath.Join(w.Dir(), "brand.ts"), written[1].Path)
	assert.NoFileExists(t, filepath.Join(w.Dir(), "brand.json"))
}

func TestWriteUnknownFormat(t *testing.T) {
	w := newWriter(t)

	written, err := w.Write(context.Background(), brand.New("Acme", now), serializer.FormatCSS, "pdf")

	assert.Error(t, err)
	assert.Len(t, written, 1)
}

func TestWriteSkipsUnchanged(t *testing.T) {
	w := newWriter(t)
	b := brand.New("Acme", now)

	_, err := w.Write(context.Background(), b, serializer.FormatCSS)
	require.NoError(t, err)

	again, err := w.Write(context.Background(), b, serializer.FormatCSS)
	require.NoError(t, err)
	assert.True(t, again[0].Unchanged)

	b.Colors.Light.Primary = "10 50% 30%"
	changed, err := w.Write(context.Background(), b, serializer.FormatCSS)
	require.NoError(t, err)
	assert.False(t, changed[0].Unchanged)
}

func TestWriteHonorsContext(t *testing.T) {
	w := newWriter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	written, err := w.Write(ctx, brand.New("Acme", now))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, written)
}

func TestManifest(t *testing.T) {
	w := newWriter(t, WithManifest(true))

	written, err := w.Write(context.Background(), brand.New("Acme", now), serializer.FormatJSON)
	require.NoError(t, err)

	m, err := ReadManifest(w.Dir())
	require.NoError(t, err)
	assert.Equal(t, "Acme", m.Brand)
	assert.Equal(t, brand.CurrentVersion, m.Version)
	assert.Equal(t, written, m.Artifacts)
}

func TestNewWriterRejectsBadInput(t *testing.T) {
	_, err := NewWriter(nil, t.TempDir())
	assert.Error(t, err)

	_, err = NewWriter(serializer.DefaultRegistry(serializer.DefaultCSSOptions()), "../outside")
	assert.Error(t, err)
}

func TestWriteFailureIsIOError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))

	w, err := NewWriter(serializer.DefaultRegistry(serializer.DefaultCSSOptions()), filepath.Join(blocker, "out"))
	require.NoError(t, err)

	written, err := w.Write(context.Background(), brand.New("Acme", now), serializer.FormatCSS)
	require.Error(t, err)
	assert.Empty(t, written)

	var be *errors.BrandError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, errors.ErrorTypeIO, be.Type)
	assert.Equal(t, errors.ErrCodeExportFailed, be.Code)
	assert.Equal(t, filepath.Join(w.Dir(), "brand.css"), be.FilePath)
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "file.txt")

	require.NoError(t, WriteFileAtomic(path, []byte("one")))
	require.NoError(t, WriteFileAtomic(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
