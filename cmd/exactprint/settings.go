package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"exactprint/internal/diag"
	"exactprint/internal/diagfmt"
	"exactprint/internal/driver"
	"exactprint/internal/project"
)

var (
	configLoaded bool
	configValue  project.Config
)

// loadConfig reads --config or the nearest exactprint.toml once per run.
// Configuration diagnostics go to stderr.
func loadConfig(cmd *cobra.Command) (project.Config, error) {
	if configLoaded {
		return configValue, nil
	}
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	var cfg project.Config
	if path != "" {
		cfg, err = project.Load(path, rep)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			cfg, err = project.Discover(wd, rep)
		}
	}
	if bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, bag, nil, prettyOpts(cmd))
	}
	if err != nil {
		return project.Config{}, err
	}
	configLoaded, configValue = true, cfg
	return cfg, nil
}

// useColor resolves --color against the terminal.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(f)
}

func applyColor(cmd *cobra.Command) {
	color.NoColor = !useColor(cmd, os.Stdout)
}

func prettyOpts(cmd *cobra.Command) diagfmt.PrettyOpts {
	wd, _ := os.Getwd()
	return diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   1,
		PathMode:  diagfmt.PathModeRelative,
		BaseDir:   wd,
		ShowNotes: true,
	}
}

// driverOptions merges the configuration with the command-line overrides.
func driverOptions(cmd *cobra.Command) (driver.Options, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return driver.Options{}, err
	}
	pf := cmd.Root().PersistentFlags()
	opts := driver.Options{
		MaxDiagnostics: cfg.Engine.MaxDiagnostics,
		Jobs:           cfg.Engine.Jobs,
	}
	if pf.Changed("max-diagnostics") {
		if opts.MaxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
			return opts, err
		}
	}
	if pf.Changed("jobs") {
		if opts.Jobs, err = pf.GetInt("jobs"); err != nil {
			return opts, err
		}
	}
	if opts.Markup, err = driver.ParseMarkup(cfg.Print.Markup); err != nil {
		return opts, err
	}

	noCache, err := pf.GetBool("no-cache")
	if err != nil {
		return opts, err
	}
	if cfg.Cache.Enabled && !noCache {
		dir, err := cfg.CacheDir()
		if err != nil {
			return opts, err
		}
		cache, err := driver.OpenDiskCache(dir)
		if err != nil {
			// кеш необязателен
			fmt.Fprintf(os.Stderr, "cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}
	return opts, nil
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

// reportFile prints the diagnostics of one file to stderr.
func reportFile(cmd *cobra.Command, res *driver.FileResult) {
	if res.Bag == nil || res.Bag.Len() == 0 {
		return
	}
	res.Bag.Sort()
	if quiet(cmd) && !res.Bag.HasErrors() && !res.Bag.HasWarnings() {
		return
	}
	diagfmt.Pretty(os.Stderr, res.Bag, res.File, prettyOpts(cmd))
	if n := res.Bag.Dropped(); n > 0 {
		fmt.Fprintf(os.Stderr, "%s: %d more diagnostic(s) not shown (max_diagnostics)\n", res.Path, n)
	}
}
