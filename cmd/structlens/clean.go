package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"structlens/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the on-disk analysis cache",
	Long:  "Remove cached analysis reports; they are rebuilt on the next run.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("structlens")
	if err != nil {
		return fmt.Errorf("failed to locate cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove cache: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, "cache removed")
	return nil
}
