package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"exactprint/internal/driver"
	"exactprint/internal/observ"
)

func printTimings(cmd *cobra.Command, results []*driver.FileResult) {
	show, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil || !show {
		return
	}
	tab := observ.NewTable()
	for _, res := range results {
		for _, st := range driver.Stages {
			if res.Timings.Has(st) {
				tab.Add(string(st), res.Timings.Duration(st))
			}
		}
	}
	fmt.Fprint(os.Stderr, tab.Summary())
}
