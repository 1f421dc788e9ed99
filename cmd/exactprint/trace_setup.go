package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"exactprint/internal/trace"
)

// setupTracing reads the trace flags, falling back to the [trace] table of
// the configuration for level and mode, and attaches the tracer to the
// command context. The tracer is flushed and closed at exit.
func setupTracing(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()

	output, err := pf.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := pf.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := pf.GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := pf.GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !pf.Changed("trace-level") {
		levelStr = cfg.Trace.Level
	}
	if !pf.Changed("trace-mode") {
		modeStr = cfg.Trace.Mode
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	// a destination without a level means phase tracing
	if level == trace.LevelOff && output != "" && !pf.Changed("trace-level") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return fmt.Errorf("invalid trace mode: %w", err)
	}
	if output == "" {
		output = "-"
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: output,
		RingSize:   ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	atExit(func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	})
	return nil
}

// dumpTraceRing writes the buffered trace to stderr after a failed run.
func dumpTraceRing(cmd *cobra.Command) {
	ring, ok := trace.Ring(trace.FromContext(cmd.Context()))
	if !ok {
		return
	}
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w, "trace: last events")
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}
