package project

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"exactprint/internal/diag"
	"exactprint/internal/source"
	"exactprint/internal/trace"
)

// Config is the decoded exactprint.toml.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Print  PrintConfig  `toml:"print"`
	Cache  CacheConfig  `toml:"cache"`
	Trace  TraceConfig  `toml:"trace"`

	// Path is the file the config came from, empty for defaults.
	Path string `toml:"-"`
}

type EngineConfig struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
	Jobs           int `toml:"jobs"`
}

type PrintConfig struct {
	// Markup is none or html.
	Markup string `toml:"markup"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type TraceConfig struct {
	Level string `toml:"level"`
	Mode  string `toml:"mode"`
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Engine: EngineConfig{MaxDiagnostics: 100},
		Print:  PrintConfig{Markup: "none"},
		Cache:  CacheConfig{Enabled: true},
		Trace:  TraceConfig{Level: "off", Mode: "stream"},
	}
}

// Load decodes path on top of Default. Unknown keys are reported as
// warnings; values that cannot be used fail the load.
func Load(path string, rep diag.Reporter) (Config, error) {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Path = path
	for _, k := range meta.Undecoded() {
		diag.ReportWarning(rep, diag.CfgUnknownKey, source.Span{},
			fmt.Sprintf("%s: unknown key %q", path, k.String())).Emit()
	}
	if meta.IsDefined("cache", "dir") && strings.TrimSpace(cfg.Cache.Dir) != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	if err := cfg.Validate(); err != nil {
		diag.ReportError(rep, diag.CfgBadValue, source.Span{}, fmt.Sprintf("%s: %v", path, err)).Emit()
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ConfigName is the file Discover looks for.
const ConfigName = "exactprint.toml"

// FindConfig returns the first exactprint.toml in startDir or its parents.
func FindConfig(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(cmp.Or(startDir, "."))
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve %q: %w", startDir, err)
	}
	for ; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, ConfigName)
		_, err := os.Stat(candidate)
		switch {
		case err == nil:
			return candidate, true, nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		if filepath.Dir(dir) == dir {
			return "", false, nil
		}
	}
}

// Discover loads the nearest exactprint.toml above startDir, or returns
// Default when there is none.
func Discover(startDir string, rep diag.Reporter) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path, rep)
}

// Validate checks the values the driver depends on.
func (c Config) Validate() error {
	if c.Engine.MaxDiagnostics < 0 {
		return fmt.Errorf("%w: [engine].max_diagnostics must not be negative", ErrInvalidConfig)
	}
	if c.Engine.Jobs < 0 {
		return fmt.Errorf("%w: [engine].jobs must not be negative", ErrInvalidConfig)
	}
	switch c.Print.Markup {
	case "none", "html":
	default:
		return fmt.Errorf("%w: [print].markup must be none or html, got %q", ErrInvalidConfig, c.Print.Markup)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("%w: [trace].level: %v", ErrInvalidConfig, err)
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return fmt.Errorf("%w: [trace].mode: %v", ErrInvalidConfig, err)
	}
	return nil
}

// CacheDir returns the directory of the annotation cache: the configured
// one, or $XDG_CACHE_HOME/exactprint.
func (c Config) CacheDir() (string, error) {
	if dir := strings.TrimSpace(c.Cache.Dir); dir != "" {
		return dir, nil
	}
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "exactprint"), nil
}
