package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cstyle/internal/driver"
	"cstyle/internal/project"
)

// resolveRunConfig turns command arguments into a driver config. Explicit
// paths win; otherwise the file list comes from the manifest.
func resolveRunConfig(cmd *cobra.Command, args []string) (driver.Config, error) {
	if len(args) > 0 {
		files, err := driver.CollectCSources(cmd.Context(), args)
		if err != nil {
			return driver.Config{}, err
		}
		return driver.Config{Files: files}, nil
	}

	manifestFlag, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return driver.Config{}, fmt.Errorf("failed to get manifest flag: %w", err)
	}
	manifest, err := resolveManifest(cmd.Name(), manifestFlag)
	if err != nil {
		return driver.Config{}, err
	}
	return driver.Config{BaseDir: manifest.StyleDir(), Files: manifest.StyleFiles()}, nil
}

func resolveManifest(action, manifestFlag string) (*project.Manifest, error) {
	if manifestFlag != "" {
		info, statErr := os.Stat(manifestFlag)
		if statErr == nil && !info.IsDir() {
			abs := manifestFlag
			if resolved, absErr := filepath.Abs(manifestFlag); absErr == nil {
				abs = resolved
			}
			return project.Load(abs)
		}
		return nil, fmt.Errorf("cannot run cstyle %s: no cstyle.toml found. Consider --manifest <path> or run it in right directory", action)
	}
	manifest, ok, err := project.Find(".")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("cannot run cstyle %s: no cstyle.toml found. Consider --manifest <path> or run it in right directory", action)
	}
	return manifest, nil
}
