package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"exactprint/internal/version"
)

// errReported ends a command whose failures were already printed.
var errReported = errors.New("failures reported")

var rootCmd = &cobra.Command{
	Use:   "exactprint",
	Short: "Exact-print annotations for source trees",
	Long: `exactprint records how every node of a parsed source was laid out
and prints edited trees back with the original spacing and comments`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		applyColor(cmd)
		if err := setupTracing(cmd); err != nil {
			return err
		}
		return setupProfiling(cmd)
	},
}

// main registers the commands and persistent flags and executes the root
// command; any error exits with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(roundtripCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	pf.Int("jobs", 0, "files processed in parallel (0 = one per CPU)")
	pf.String("config", "", "path to exactprint.toml (default: search upwards from the working directory)")
	pf.Bool("no-cache", false, "do not read or write the annotation cache")

	pf.String("trace", "", "write trace events to a file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")

	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	err := rootCmd.Execute()
	runCleanups()
	if err != nil {
		os.Exit(1)
	}
}

var cleanups []func()

// atExit registers fn to run after the command, in reverse order.
func atExit(fn func()) { cleanups = append(cleanups, fn) }

func runCleanups() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
