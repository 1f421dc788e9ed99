package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"exactprint/internal/annot"
	"exactprint/internal/version"
)

type versionPayload struct {
	Tool        string `json:"tool"`
	Version     string `json:"version"`
	StoreSchema uint16 `json:"store_schema"`
	GitCommit   string `json:"git_commit,omitempty"`
	BuildDate   string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build metadata",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		full, err := cmd.Flags().GetBool("full")
		if err != nil {
			return fmt.Errorf("failed to get full flag: %w", err)
		}
		switch strings.ToLower(format) {
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), full)
			return nil
		case "json":
			return renderVersionJSON(cmd.OutOrStdout(), full)
		}
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	},
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().Bool("full", false, "include commit, build date and store schema")
}

func renderVersionPretty(out io.Writer, full bool) {
	fmt.Fprintf(out, "exactprint %s\n", version.Colored())
	if !full {
		return
	}
	fmt.Fprintf(out, "commit:       %s\n", valueOrUnknown(version.GitCommit))
	fmt.Fprintf(out, "built:        %s\n", valueOrUnknown(version.BuildDate))
	fmt.Fprintf(out, "store schema: %d\n", annot.StoreSchema)
}

func renderVersionJSON(out io.Writer, full bool) error {
	payload := versionPayload{
		Tool:        "exactprint",
		Version:     strings.TrimSpace(version.Version),
		StoreSchema: annot.StoreSchema,
	}
	if full {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
		payload.BuildDate = valueOrUnknown(version.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
