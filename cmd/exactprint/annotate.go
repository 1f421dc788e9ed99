package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"exactprint/internal/diagfmt"
	"exactprint/internal/driver"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [flags] file.hs",
	Short: "Dump the annotation store of a source",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotate,
}

func init() {
	annotateCmd.Flags().String("format", "table", "output format (table|json|msgpack)")
	annotateCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "table", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	opts.Markup = driver.MarkupNone

	res := driver.ProcessFile(cmd.Context(), args[0], opts)
	reportFile(cmd, res)
	if res.Err != nil {
		cmd.SilenceUsage = true
		return res.Err
	}

	var buf bytes.Buffer
	switch format {
	case "table":
		err = diagfmt.FormatStoreTable(&buf, res.Store)
	case "json":
		err = res.Store.EncodeJSON(&buf)
	case "msgpack":
		err = res.Store.EncodeMsgpack(&buf)
	}
	if err != nil {
		return err
	}
	return writeOutput(cmd, output, buf.Bytes())
}
