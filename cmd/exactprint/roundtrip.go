package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"exactprint/internal/driver"
)

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip [flags] path...",
	Short: "Check that sources print back unchanged",
	Long: `Roundtrip annotates every file (directories are searched for .hs files),
prints it with its annotations and compares the output with the input`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoundtrip,
}

func init() {
	roundtripCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
}

// uiMode selects the live progress view; auto draws it only on a terminal.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

var uiModes = map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, "on": uiModeOn, "off": uiModeOff}

func readUIMode(value string) (uiMode, error) {
	if m, ok := uiModes[strings.ToLower(strings.TrimSpace(value))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("--ui: unknown mode %q, want auto, on or off", value)
}

func (m uiMode) enabled(out *os.File) bool {
	if m == uiModeAuto {
		return isTerminal(out)
	}
	return m == uiModeOn
}

func runRoundtrip(cmd *cobra.Command, args []string) error {
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	files, err := driver.ListSources(args)
	if err != nil {
		return err
	}

	var results []*driver.FileResult
	if len(files) > 0 && mode.enabled(os.Stdout) {
		results, err = runPathsWithUI(cmd.Context(), "roundtrip", files, opts)
	} else {
		results, err = driver.ProcessPaths(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}

	okMark := color.New(color.FgGreen).Sprint("ok")
	failMark := color.New(color.FgRed, color.Bold).Sprint("FAIL")
	failed := 0
	for _, res := range results {
		reportFile(cmd, res)
		switch {
		case res.Err != nil:
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %v\n", failMark, res.Path, res.Err)
		case !res.RoundTrip:
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", failMark, res.Path)
		case !quiet(cmd):
			suffix := ""
			if res.Cached {
				suffix = " (cached)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s   %s%s\n", okMark, res.Path, suffix)
		}
	}
	printTimings(cmd, results)

	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "%d file(s), %d failed\n", len(results), failed)
	}
	if failed > 0 {
		dumpTraceRing(cmd)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errReported
	}
	return nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
