package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"exactprint/internal/diag"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[engine]
max_diagnostics = 7

[print]
markup = "html"

[cache]
dir = "cache"
`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engine.MaxDiagnostics != 7 || cfg.Print.Markup != "html" {
		t.Fatalf("config %+v", cfg)
	}
	if !cfg.Cache.Enabled {
		t.Fatalf("cache default lost")
	}
	if cfg.Cache.Dir != filepath.Join(dir, "cache") {
		t.Fatalf("cache dir %q not resolved against the config file", cfg.Cache.Dir)
	}
	if cfg.Trace.Level != "off" {
		t.Fatalf("trace default lost: %+v", cfg.Trace)
	}
}

func TestLoadReportsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[engine]\ntab_stop = 8\n")
	bag := diag.NewBag(10)
	if _, err := Load(path, &diag.BagReporter{Bag: bag}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if bag.Count(diag.CfgUnknownKey) != 1 {
		t.Fatalf("diagnostics %v", bag.Items())
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"markup", "[print]\nmarkup = \"latex\"\n"},
		{"trace level", "[trace]\nlevel = \"loud\"\n"},
		{"negative limit", "[engine]\nmax_diagnostics = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			bag := diag.NewBag(10)
			_, err := Load(path, &diag.BagReporter{Bag: bag})
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("want ErrInvalidConfig, got %v", err)
			}
			if bag.Count(diag.CfgBadValue) != 1 {
				t.Fatalf("diagnostics %v", bag.Items())
			}
		})
	}
}

func TestLoadSyntaxError(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[engine\n")
	if _, err := Load(path, nil); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[print]\nmarkup = \"html\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg, err := Discover(nested, nil)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if cfg.Print.Markup != "html" || cfg.Path != filepath.Join(root, ConfigName) {
		t.Fatalf("config %+v", cfg)
	}
	if _, ok, err := FindConfig(filepath.Join(t.TempDir(), "x")); err != nil || ok {
		t.Fatalf("found config outside the tree: ok=%v err=%v", ok, err)
	}
}

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := Default().CacheDir()
	if err != nil {
		t.Fatalf("cache dir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "exactprint") {
		t.Fatalf("dir %q", dir)
	}
}
