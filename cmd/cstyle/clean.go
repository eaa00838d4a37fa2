package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cstyle/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the cstyle verdict cache",
	Long:  "Remove the persistent cache of clean-style verdicts kept under the user cache directory.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenCleanCache("cstyle")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}

	entries, err := os.ReadDir(cache.Dir())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read %q: %w", cache.Dir(), err)
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "cache is already empty\n")
		return nil
	}

	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", cache.Dir(), err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "removed %s\n", cache.Dir())
	return nil
}
