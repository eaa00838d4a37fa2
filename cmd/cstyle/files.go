package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"cstyle/internal/source"
)

var filesCmd = &cobra.Command{
	Use:   "files [flags] [path...]",
	Short: "List the C sources a fmt run would process",
	Long: `List the files fmt would process, one per line. With explicit paths the
list comes from walking them; with no paths it comes from the [style] section
of cstyle.toml. Paths print relative to the current directory unless
--absolute is set.`,
	Args: cobra.ArbitraryArgs,
	RunE: runFiles,
}

func init() {
	filesCmd.Flags().Bool("absolute", false, "emit absolute file paths")
	filesCmd.Flags().String("manifest", "", "path to cstyle.toml (default: search upward from cwd)")
}

func runFiles(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	absolute, err := cmd.Flags().GetBool("absolute")
	if err != nil {
		return fmt.Errorf("failed to get absolute flag: %w", err)
	}

	cfg, err := resolveRunConfig(cmd, args)
	if err != nil {
		return err
	}

	resolved := make([]string, 0, len(cfg.Files))
	for _, file := range cfg.Files {
		resolved = append(resolved, cfg.Resolve(file))
	}

	var display []string
	if absolute {
		display = absoluteFileList(resolved)
	} else {
		baseDir := ""
		if wd, wdErr := os.Getwd(); wdErr == nil {
			baseDir = wd
		}
		display = displayFileList(resolved, baseDir)
	}

	out := cmd.OutOrStdout()
	for _, path := range display {
		fmt.Fprintln(out, path)
	}
	return nil
}

// displayFileList normalizes paths for output: deduplicated, sorted, and made
// relative to baseDir when they live under it. Paths outside baseDir stay
// absolute so the listing never shows ../../ chains.
func displayFileList(files []string, baseDir string) []string {
	if len(files) == 0 {
		return files
	}
	normalized := make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))

	base := strings.TrimSpace(baseDir)
	for _, file := range files {
		if file == "" {
			continue
		}
		path := filepath.ToSlash(filepath.Clean(file))
		if base != "" {
			if rel, err := source.RelativePath(file, base); err == nil {
				path = rel
			}
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		normalized = append(normalized, path)
	}
	sort.Strings(normalized)
	return normalized
}

func absoluteFileList(files []string) []string {
	normalized := make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		if file == "" {
			continue
		}
		path, err := source.AbsolutePath(file)
		if err != nil {
			path = filepath.ToSlash(filepath.Clean(file))
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		normalized = append(normalized, path)
	}
	sort.Strings(normalized)
	return normalized
}
