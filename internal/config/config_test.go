package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/branddna/internal/errors"
	"github.com/conneroisu/branddna/internal/logging"
	"github.com/conneroisu/branddna/internal/serializer"
)

func loadYAML(t *testing.T, content string) (*Config, error) {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(content)))

	return LoadFrom(v)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "localhost:8080", cfg.Addr())
	assert.Equal(t, serializer.DefaultCSSOptions(), cfg.CSSOptions())
}

func TestLoadGlobalViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("server.port", 3000)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := loadYAML(t, `
brand:
  file: themes/acme.json
  template: startup
output:
  dir: build/brand
  formats: [css, ts, scss]
  manifest: true
css:
  selector: ":root"
  prefix: acme
  dark_class: night
validation:
  strict: true
import:
  timeout: 30s
  max_bytes: 2048
server:
  host: 0.0.0.0
  port: 9000
watch:
  debounce: 1s
log:
  level: debug
  format: json
`)
	require.NoError(t, err)

	assert.Equal(t, "themes/acme.json", cfg.Brand.File)
	assert.Equal(t, "startup", cfg.Brand.Template)
	assert.Equal(t, []string{"css", "ts", "scss"}, cfg.Output.Formats)
	assert.True(t, cfg.Output.Manifest)
	assert.Equal(t, ":root", cfg.CSS.Selector)
	assert.Equal(t, "night", cfg.CSSOptions().DarkClass)
	assert.True(t, cfg.Validation.Strict)
	assert.Equal(t, 30*time.Second, cfg.Import.Timeout)
	assert.Equal(t, int64(2048), cfg.Import.MaxBytes)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, Default().Server.AllowedOrigins, cfg.Server.AllowedOrigins)

	lc, err := cfg.LoggerConfig()
	require.NoError(t, err)
	assert.Equal(t, logging.LevelDebug, lc.Level)
	assert.Equal(t, "json", lc.Format)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BRANDDNA_SERVER_PORT", "4321")
	t.Setenv("BRANDDNA_VALIDATION_STRICT", "true")

	v := viper.New()
	BindEnv(v)

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, 4321, cfg.Server.Port)
	assert.True(t, cfg.Validation.Strict)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"port range", "server:\n  port: 70000\n"},
		{"port type", "server:\n  port: nope\n"},
		{"host", "server:\n  host: \"local;host\"\n"},
		{"output traversal", "output:\n  dir: ../outside\n"},
		{"output absolute", "output:\n  dir: /var/brand\n"},
		{"unknown format", "output:\n  formats: [css, pdf]\n"},
		{"timeout", "import:\n  timeout: 0s\n"},
		{"max bytes", "import:\n  max_bytes: -1\n"},
		{"brand file extension", "brand:\n  file: brand.yaml\n"},
		{"template", "brand:\n  template: nope\n"},
		{"selector", "css:\n  selector: \"a{}\"\n"},
		{"prefix", "css:\n  prefix: \"1bad\"\n"},
		{"log level", "log:\n  level: loud\n"},
		{"log format", "log:\n  format: xml\n"},
		{"origin", "server:\n  allowed_origins: [\"ftp://example.com\"]\n"},
		{"log file traversal", "log:\n  file: ../../brand.log\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadYAML(t, tt.content)
			assert.Nil(t, cfg)

			var be *errors.BrandError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, errors.ErrorTypeConfig, be.Type)
			assert.Equal(t, errors.ErrCodeConfigInvalid, be.Code)
		})
	}
}

func TestValidateConfigWithDetails(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 80
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Output.Formats = []string{"css", "css", "pdf"}

	result := ValidateConfigWithDetails(cfg)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "output.formats[2]", result.Errors[0].Field)
	assert.NotEmpty(t, result.Errors[0].Suggestions)

	fields := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		fields = append(fields, w.Field)
	}
	assert.ElementsMatch(t, []string{"server.port", "server.allowed_origins[0]", "output.formats[1]"}, fields)

	out := result.String()
	assert.Contains(t, out, "Validation Errors")
	assert.Contains(t, out, "Validation Warnings")
	assert.Contains(t, out, "unknown format 'pdf'")
}

func TestDefaultIsValid(t *testing.T) {
	result := ValidateConfigWithDetails(Default())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.Brand.Template = "organic"
	cfg.Import.Timeout = 45 * time.Second

	require.NoError(t, cfg.WriteFile(path, false))
	assert.Error(t, cfg.WriteFile(path, false))
	require.NoError(t, cfg.WriteFile(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Equal(t, "45s", raw["import"]["timeout"])
	assert.Equal(t, "300ms", raw["watch"]["debounce"])

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	loaded, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
