// Package config holds the filter configuration describing which camera
// files delrest recognizes: accepted extensions and the ordered filename
// formats whose capture group yields a file's identifier.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"delrest/internal/errors"
	"delrest/internal/log"
)

// ConfigFileName is the file the discovery walk looks for.
const ConfigFileName = "config.yaml"

//go:embed default_config.yaml
var defaultConfigYAML []byte

// Config is the filter configuration, immutable once loaded.
//
// Formats is an ordered sequence: earlier patterns take precedence when
// more than one could match a filename.
type Config struct {
	Name       string   `yaml:"name"`
	Extensions []string `yaml:"extensions"`
	Formats    []Format `yaml:"formats"`
	// Exclude lists glob patterns for basenames to ignore outright,
	// e.g. ".*" or "Thumbs.db".
	Exclude []string `yaml:"exclude,omitempty"`

	exclude []glob.Glob
}

// Format is a filename format: a regular expression with exactly one
// capturing group yielding the file's identifier. The pattern must match
// the entire base name.
type Format struct {
	pattern string
	re      *regexp.Regexp
}

// CompileFormat compiles a format pattern, anchoring it to the whole
// filename and requiring exactly one capturing group.
func CompileFormat(pattern string) (Format, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return Format{}, errors.NewConfigError("invalid format pattern", pattern, errors.InvalidFormat, err)
	}
	if re.NumSubexp() != 1 {
		return Format{}, errors.NewConfigError(
			fmt.Sprintf("format pattern must contain exactly one capturing group, has %d", re.NumSubexp()),
			pattern, errors.InvalidFormat, nil)
	}
	return Format{pattern: pattern, re: re}, nil
}

// String returns the original pattern text.
func (f Format) String() string {
	return f.pattern
}

// Extract applies the format to a base name. It returns the captured
// identifier and whether the whole name matched with a non-empty capture.
func (f Format) Extract(name string) (string, bool) {
	if f.re == nil {
		return "", false
	}
	m := f.re.FindStringSubmatch(name)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// UnmarshalYAML compiles the pattern as it is read.
func (f *Format) UnmarshalYAML(value *yaml.Node) error {
	var pattern string
	if err := value.Decode(&pattern); err != nil {
		return err
	}
	compiled, err := CompileFormat(pattern)
	if err != nil {
		return err
	}
	*f = compiled
	return nil
}

// MarshalYAML writes the original pattern text.
func (f Format) MarshalYAML() (interface{}, error) {
	return f.pattern, nil
}

// Load reads and validates a configuration file. Any failure is fatal.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		kind := errors.ConfigUnreadable
		if os.IsNotExist(err) {
			kind = errors.ConfigNotFound
		}
		return nil, errors.NewConfigError("cannot read config", path, kind, err)
	}
	return Parse(data, path)
}

// Parse parses configuration bytes. The path is used in error messages only.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if errors.IsConfigError(err) {
			return nil, err
		}
		return nil, errors.NewConfigError("cannot parse config", path, errors.InvalidConfig, err)
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Discover resolves the configuration the way the tool documents it:
// config.yaml in the selected directory, then next to the executable, then
// in the executable's parent directory, then the builtin default.
//
// A discovered file that fails to parse is logged and skipped; only an
// explicitly requested config (see Load) is fatal on parse errors.
func Discover(dir string) *Config {
	candidates := []string{filepath.Join(dir, ConfigFileName)}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		candidates = append(candidates,
			filepath.Join(exeDir, ConfigFileName),
			filepath.Join(filepath.Dir(exeDir), ConfigFileName),
		)
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err != nil || info.IsDir() {
			continue
		}
		cfg, err := Load(candidate)
		if err != nil {
			log.Warn("Ignoring unusable config %s: %v", candidate, err)
			continue
		}
		log.Debug("Using config %s", candidate)
		return cfg
	}

	return Default()
}

// Default returns the builtin configuration.
func Default() *Config {
	cfg, err := Parse(defaultConfigYAML, "builtin default")
	if err != nil {
		// The embedded config is compiled into the binary; it cannot fail
		// to parse unless the source tree itself is broken.
		panic(err)
	}
	return cfg
}

// finish normalizes extensions, compiles exclude globs and validates.
func (c *Config) finish() error {
	for i, ext := range c.Extensions {
		c.Extensions[i] = strings.ToLower(strings.TrimPrefix(ext, "."))
	}
	c.exclude = c.exclude[:0]
	for _, pattern := range c.Exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return errors.NewConfigError("invalid exclude pattern", pattern, errors.InvalidConfig, err)
		}
		c.exclude = append(c.exclude, g)
	}
	return c.Validate()
}

// Validate checks the loaded configuration. A config with no formats is
// legal: every file is then treated as non-matching.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}
	for _, ext := range c.Extensions {
		if ext == "" {
			return errors.NewConfigError("empty extension", "", errors.InvalidConfig, nil)
		}
	}
	if len(c.Formats) == 0 {
		log.Warn("Config %q has no formats; no file will match", c.Name)
	}
	return nil
}

// HasExtension reports whether the base name carries one of the accepted
// extensions, compared case-insensitively. An empty extension list accepts
// every file.
func (c *Config) HasExtension(name string) bool {
	if len(c.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return false
	}
	for _, accepted := range c.Extensions {
		if ext == accepted {
			return true
		}
	}
	return false
}

// Excluded reports whether the base name matches one of the exclude globs.
func (c *Config) Excluded(name string) bool {
	for _, g := range c.exclude {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// String renders the configuration in its YAML form, for --print-config.
func (c *Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("config %q (unprintable: %v)", c.Name, err)
	}
	return string(data)
}
