// Package config provides configuration management for branddna using
// Viper for loading from files, environment variables, and command-line
// flags.
//
// The configuration file is .branddna.yml in the working directory unless
// --config or BRANDDNA_CONFIG_FILE names another. Every key can be
// overridden with a BRANDDNA_<SECTION>_<KEY> environment variable.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/branddna/internal/errors"
	"github.com/conneroisu/branddna/internal/logging"
	"github.com/conneroisu/branddna/internal/serializer"
)

// FileName is the default configuration file name.
const FileName = ".branddna.yml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BRANDDNA"

type Config struct {
	Brand      BrandConfig      `mapstructure:"brand" yaml:"brand"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
	CSS        CSSConfig        `mapstructure:"css" yaml:"css"`
	Validation ValidationConfig `mapstructure:"validation" yaml:"validation"`
	Import     ImportConfig     `mapstructure:"import" yaml:"import"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Watch      WatchConfig      `mapstructure:"watch" yaml:"watch"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
}

type BrandConfig struct {
	File     string `mapstructure:"file" yaml:"file"`
	Template string `mapstructure:"template" yaml:"template"`
}

type OutputConfig struct {
	Dir      string   `mapstructure:"dir" yaml:"dir"`
	Formats  []string `mapstructure:"formats" yaml:"formats"`
	Manifest bool     `mapstructure:"manifest" yaml:"manifest"`
}

type CSSConfig struct {
	Selector    string `mapstructure:"selector" yaml:"selector"`
	Prefix      string `mapstructure:"prefix" yaml:"prefix"`
	DarkClass   string `mapstructure:"dark_class" yaml:"dark_class"`
	ImportFonts bool   `mapstructure:"import_fonts" yaml:"import_fonts"`
}

type ValidationConfig struct {
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

type ImportConfig struct {
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxBytes int64         `mapstructure:"max_bytes" yaml:"max_bytes"`
}

type ServerConfig struct {
	Host           string   `mapstructure:"host" yaml:"host"`
	Port           int      `mapstructure:"port" yaml:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// MarshalYAML writes the timeout as a duration string.
func (c ImportConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Timeout  string `yaml:"timeout"`
		MaxBytes int64  `yaml:"max_bytes"`
	}{c.Timeout.String(), c.MaxBytes}, nil
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// MarshalYAML writes the debounce as a duration string.
func (c WatchConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Debounce string `yaml:"debounce"`
	}{c.Debounce.String()}, nil
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Brand: BrandConfig{File: "brand.json", Template: "default"},
		Output: OutputConfig{
			Dir:     "dist/brand",
			Formats: []string{serializer.FormatJSON, serializer.FormatCSS, serializer.FormatTailwind},
		},
		CSS: CSSConfig{
			Selector:  serializer.DefaultSelector,
			Prefix:    serializer.DefaultPrefix,
			DarkClass: serializer.DefaultDarkClass,
		},
		Import: ImportConfig{Timeout: 15 * time.Second, MaxBytes: 1 << 20},
		Server: ServerConfig{
			Host:           "localhost",
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:8080", "http://127.0.0.1:8080"},
		},
		Watch: WatchConfig{Debounce: 300 * time.Millisecond},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

// SetDefaults registers the built-in values with v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("brand.file", d.Brand.File)
	v.SetDefault("brand.template", d.Brand.Template)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.formats", d.Output.Formats)
	v.SetDefault("output.manifest", d.Output.Manifest)
	v.SetDefault("css.selector", d.CSS.Selector)
	v.SetDefault("css.prefix", d.CSS.Prefix)
	v.SetDefault("css.dark_class", d.CSS.DarkClass)
	v.SetDefault("css.import_fonts", d.CSS.ImportFonts)
	v.SetDefault("validation.strict", d.Validation.Strict)
	v.SetDefault("import.timeout", d.Import.Timeout)
	v.SetDefault("import.max_bytes", d.Import.MaxBytes)
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
}

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// BindEnv makes BRANDDNA_<SECTION>_<KEY> variables override v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom applies defaults to v, decodes it and validates the result.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "cannot decode configuration")
	}

	// Viper returns a comma separated env value as one element.
	if v.IsSet("output.formats") && len(config.Output.Formats) == 0 {
		config.Output.Formats = v.GetStringSlice("output.formats")
	}

	if err := validateConfig(&config); err != nil {
		return nil, errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "invalid configuration")
	}

	return &config, nil
}

// CSSOptions returns the stylesheet options.
func (c *Config) CSSOptions() serializer.CSSOptions {
	return serializer.CSSOptions{
		Selector:    c.CSS.Selector,
		Prefix:      c.CSS.Prefix,
		DarkClass:   c.CSS.DarkClass,
		ImportFonts: c.CSS.ImportFonts,
	}
}

// LoggerConfig returns the logger settings.
func (c *Config) LoggerConfig() (*logging.LoggerConfig, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Format = c.Log.Format

	return lc, nil
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteFile writes c as YAML to path. An existing file is only replaced
// when overwrite is set.
func (c *Config) WriteFile(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
