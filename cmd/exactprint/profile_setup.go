package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"exactprint/internal/prof"
)

// setupProfiling starts the profilers named by the persistent flags; they
// are stopped at exit.
func setupProfiling(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = pf.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Mem, err = pf.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.Trace, err = pf.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if cfg == (prof.Config{}) {
		return nil
	}
	session, err := prof.Start(cfg)
	if err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	atExit(func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "profiling: %v\n", err)
		}
	})
	return nil
}
