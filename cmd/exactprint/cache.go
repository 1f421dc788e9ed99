package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"exactprint/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the annotation cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached annotation store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCache(cmd)
		if err != nil {
			return err
		}
		if err := c.DropAll(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		if !quiet(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", c.Dir())
		}
		return nil
	},
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dir, err := cfg.CacheDir()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheDirCmd)
}

func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return nil, err
	}
	return driver.OpenDiskCache(dir)
}
