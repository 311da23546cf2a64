// Package testutils holds fixtures shared by package and command tests.
package testutils

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/config"
	"github.com/conneroisu/branddna/internal/serializer"
)

// FixedTime is the clock used by fixtures.
var FixedTime = time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

// CreateTempProject creates a temporary project with a default brand file
// and an output directory. It returns the project root.
func CreateTempProject(t *testing.T) string {
	t.Helper()
	projectDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(projectDir, "dist", "brand"), 0o755))
	WriteBrandFile(t, filepath.Join(projectDir, "brand.json"), SampleBrand())

	return projectDir
}

// CreateTestConfig returns a configuration rooted at projectDir.
func CreateTestConfig(projectDir string) *config.Config {
	cfg := config.Default()
	cfg.Brand.File = filepath.Join(projectDir, "brand.json")
	cfg.Output.Dir = "dist/brand"
	cfg.Server.Port = 0
	cfg.Watch.Debounce = 20 * time.Millisecond

	return cfg
}

// SampleBrand returns a fully populated brand with a strategy and a logo.
func SampleBrand() brand.BrandDNA {
	b := brand.New("Acme", FixedTime)
	b.Metadata.Tagline = "Build fast"
	b.Metadata.Industry = "Software"
	b.Strategy = &brand.Strategy{
		Purpose: "Help teams ship",
		Vision:  "Every product on brand",
		Mission: "Make brand systems portable",
		Values: []brand.BrandValue{
			{ID: "v1", Name: "Trust", Description: "We keep promises", Icon: "🤝"},
			{ID: "v2", Name: "Craft", Description: "Details matter"},
		},
		ToneOfVoice: brand.ToneOfVoice{Traits: []string{"warm", "direct"}},
	}
	b.Assets.PrimaryLogo = &brand.Logo{
		ID:         "logo-1",
		Name:       "Wordmark",
		LightURL:   "https://cdn.example.com/light.svg",
		UploadedAt: FixedTime,
	}

	return b
}

// WriteBrandFile exports b as JSON to path.
func WriteBrandFile(t *testing.T, path string, b brand.BrandDNA) string {
	t.Helper()
	data, err := serializer.ToJSONAt(b, true, FixedTime)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

// WriteFile writes raw content to path.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

// SecurityTestCases provides common hostile inputs
var SecurityTestCases = struct {
	PathTraversal   []string
	ScriptInjection []string
	CSSBreakout     []string
}{
	PathTraversal: []string{
		"../../../etc/passwd",
		"docs/../../secrets.json",
		"/./../../etc/passwd",
		"../../../../../etc/passwd",
	},
	ScriptInjection: []string{
		"<script>alert('xss')</script>",
		"<img src=x onerror=alert('xss')>",
		"javascript:alert('xss')",
		"<iframe src=javascript:alert('xss')>",
		"<scr<script>ipt>alert(1)</script>",
		"<div onclick=alert('xss')>",
	},
	CSSBreakout: []string{
		"red; } body { display: none",
		"0 0% 0%</style><script>alert(1)</script>",
		"url(javascript:alert(1))",
		"expression(alert(1))",
	},
}

// AssertFilePermissions checks the permission bits of path.
func AssertFilePermissions(t *testing.T, path string, expectedMode os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)

	actualMode := info.Mode()
	require.Equal(t, expectedMode, actualMode&os.FileMode(0o777),
		"File %s has incorrect permissions: got %o, want %o",
		path, actualMode&os.FileMode(0o777), expectedMode)
}

// WaitForFileChange waits for a file to be modified after originalModTime.
func WaitForFileChange(
	t *testing.T,
	filePath string,
	originalModTime time.Time,
	timeout time.Duration,
) {
	t.Helper()
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		info, err := os.Stat(filePath)
		if err == nil && info.ModTime().After(originalModTime) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("File %s was not modified within %v", filePath, timeout)
}

// WaitForFile waits for a file to exist.
func WaitForFile(t *testing.T, filePath string, timeout time.Duration) {
	t.Helper()
	require.Eventually(t, func() bool {
		_, err := os.Stat(filePath)

		return err == nil
	}, timeout, 10*time.Millisecond, "file %s was not created", filePath)
}

// LogBuffer is a bytes.Buffer that is safe to write from server goroutines
// while a test reads it.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

// String returns everything written so far.
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}
