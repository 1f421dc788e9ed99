package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"exactprint/internal/driver"
)

var printCmd = &cobra.Command{
	Use:   "print [flags] file.hs",
	Short: "Print a source back from its annotations",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrint,
}

func init() {
	printCmd.Flags().String("markup", "", "decorate the output (none|html); default from [print].markup")
	printCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
}

func runPrint(cmd *cobra.Command, args []string) error {
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("markup") {
		value, err := cmd.Flags().GetString("markup")
		if err != nil {
			return fmt.Errorf("failed to get markup flag: %w", err)
		}
		if opts.Markup, err = driver.ParseMarkup(value); err != nil {
			return err
		}
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	res := driver.ProcessFile(cmd.Context(), args[0], opts)
	reportFile(cmd, res)
	if res.Err != nil {
		cmd.SilenceUsage = true
		return res.Err
	}
	data := res.Output
	if opts.Markup == driver.MarkupHTML {
		data = res.Markup
	}
	return writeOutput(cmd, output, data)
}
