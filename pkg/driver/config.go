package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v3"

	"lox/interpreter-go/pkg/interpreter"
)

// ConfigFileName is the file FindConfig looks for.
const ConfigFileName = "lox.yml"

// DefaultPrompt is printed before each REPL line unless lox.yml overrides it.
const DefaultPrompt = ">> "

// ErrConfigNotFound is returned by FindConfig when no lox.yml exists between
// the start directory and the filesystem root.
var ErrConfigNotFound = errors.New("lox.yml not found")

// Config holds the settings read from lox.yml, after defaults were applied.
type Config struct {
	Path           string
	Prompt         string
	Banner         bool
	MaxCallDepth   int
	Trace          bool
	DisableNatives []string
}

type configFile struct {
	Prompt         *string  `yaml:"prompt"`
	Banner         *bool    `yaml:"banner"`
	MaxCallDepth   *int     `yaml:"max_call_depth"`
	Trace          *bool    `yaml:"trace"`
	DisableNatives []string `yaml:"disable_natives"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed")
	if e.Path != "" {
		b.WriteString(" for ")
		b.WriteString(e.Path)
	}
	b.WriteString(":")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig is the configuration used when no lox.yml is present.
func DefaultConfig() *Config {
	return &Config{
		Prompt:       DefaultPrompt,
		Banner:       true,
		MaxCallDepth: interpreter.DefaultMaxCallDepth,
	}
}

// LoadConfig parses lox.yml from disk. Keys left out keep their defaults;
// unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, tracerr.New("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, tracerr.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, tracerr.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty file is a valid, all-defaults config.
			cfg := DefaultConfig()
			cfg.Path = absPath
			return cfg, nil
		}
		return nil, tracerr.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw configFile) toConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	if raw.Prompt != nil {
		cfg.Prompt = *raw.Prompt
	}
	if raw.Banner != nil {
		cfg.Banner = *raw.Banner
	}
	if raw.MaxCallDepth != nil {
		cfg.MaxCallDepth = *raw.MaxCallDepth
	}
	if raw.Trace != nil {
		cfg.Trace = *raw.Trace
	}
	cfg.DisableNatives = append([]string(nil), raw.DisableNatives...)
	return cfg
}

func (c *Config) validate() error {
	errs := ValidationError{Path: c.Path}
	if c.MaxCallDepth <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must be positive, got %d", c.MaxCallDepth))
	}
	known := make(map[string]bool, len(interpreter.NativeNames))
	for _, name := range interpreter.NativeNames {
		known[name] = true
	}
	seen := make(map[string]bool, len(c.DisableNatives))
	for idx, name := range c.DisableNatives {
		switch {
		case !known[name]:
			errs.Issues = append(errs.Issues, fmt.Sprintf("disable_natives[%d]: unknown native %q (expected one of %s)", idx, name, strings.Join(interpreter.NativeNames, ", ")))
		case seen[name]:
			errs.Issues = append(errs.Issues, fmt.Sprintf("disable_natives[%d]: %q listed twice", idx, name))
		}
		seen[name] = true
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// FindConfig walks up from start looking for lox.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", tracerr.Errorf("config: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", tracerr.Errorf("config: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}
		dir = parent
	}
}

// ResolveConfig loads explicit when set, else the nearest lox.yml above
// start, else the defaults.
func ResolveConfig(explicit, start string) (*Config, error) {
	if explicit != "" {
		return LoadConfig(explicit)
	}
	path, err := FindConfig(start)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return LoadConfig(path)
}
