// Package config loads the layered expando configuration: embedded
// defaults, then the user file under the XDG config directory, then
// EXPANDO_* environment variables, each layer overriding the last.
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/expando/pkg/errors"
	"github.com/arthur-debert/expando/pkg/logging"
	"github.com/arthur-debert/expando/pkg/paths"
)

const envPrefix = "EXPANDO_"

// Config is the effective configuration after all layers are merged.
// The toml tags let it round-trip back to a configuration file.
type Config struct {
	// Columns is the terminal width for padding directives; 0 asks the
	// caller to detect it.
	Columns int `koanf:"columns" toml:"columns"`
	// MaxBytes is the render capacity; output is at most MaxBytes-1
	// bytes.
	MaxBytes int `koanf:"max_bytes" toml:"max_bytes"`
	// ArrowCursor reserves three leading columns for a marker.
	ArrowCursor bool `koanf:"arrow_cursor" toml:"arrow_cursor"`
	// AllowFilter enables the trailing-pipe shell delegation.
	AllowFilter bool `koanf:"allow_filter" toml:"allow_filter"`
	// Templates maps names to template strings.
	Templates map[string]string `koanf:"templates" toml:"templates"`
	// Fields maps directive characters to static values.
	Fields map[string]string `koanf:"fields" toml:"fields"`
}

// Load builds the effective configuration from all layers.
func Load() (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default configuration")
	}

	userPath := paths.ConfigFilePath()
	if _, err := os.Stat(userPath); err == nil {
		logger.Debug().Str("path", userPath).Msg("Loading user configuration")
		if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse user configuration").
				WithDetail("path", userPath)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result: &cfg,
			// environment values arrive as strings
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envTransform maps EXPANDO_MAX_BYTES to max_bytes and
// EXPANDO_TEMPLATES__NAME to templates.name: keys keep their single
// underscores and a double underscore nests.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (c *Config) validate() error {
	if c.MaxBytes <= 0 {
		return errors.Newf(errors.ErrConfigValid, "max_bytes must be positive, got %d", c.MaxBytes)
	}
	if c.Columns < 0 {
		return errors.Newf(errors.ErrConfigValid, "columns cannot be negative, got %d", c.Columns)
	}
	for name, key := range c.Fields {
		if len(name) != 1 {
			return errors.Newf(errors.ErrConfigValid, "field keys must be single characters, got %q", name).
				WithDetail("value", key)
		}
	}
	return nil
}

// Template returns the named template.
func (c *Config) Template(name string) (string, error) {
	t, ok := c.Templates[name]
	if !ok {
		return "", errors.Newf(errors.ErrTemplateNotFound, "no template named %q", name).
			WithDetail("name", name)
	}
	return t, nil
}

// TemplateNames returns the configured template names, sorted.
func (c *Config) TemplateNames() []string {
	names := make([]string, 0, len(c.Templates))
	for name := range c.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
