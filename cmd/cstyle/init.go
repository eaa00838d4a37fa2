package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cstyle/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new cstyle project",
	Long: `Initialize a new cstyle project by creating a project manifest (cstyle.toml)
and an empty src directory. If [path|name] is omitted, initializes the current
directory. If a non-existing name is provided, a directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit initializes a project at the specified target path (or the current
// working directory when no argument or "." is provided) by creating a
// cstyle.toml manifest and a src directory.
//
// It resolves the target path, creates the directory if it does not exist,
// derives a project name from the directory basename (falling back to
// "c-project" for invalid names), and refuses to initialize if cstyle.toml
// already exists.
func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Determine project name from directory basename
	name := filepath.Base(target)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "c-project"
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest := buildDefaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(manifest), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// Create src directory if not exists
	srcPath := filepath.Join(target, "src")
	createdSrc := false
	if _, err := os.Stat(srcPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(srcPath, 0o755); err != nil {
			return fmt.Errorf("failed to create src directory: %w", err)
		}
		createdSrc = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized cstyle project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - %s\n", project.ManifestName)
	if createdSrc {
		fmt.Fprintf(os.Stdout, "  - src/\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - src/ (existing)\n")
	}
	return nil
}

// buildDefaultManifest returns a minimal TOML manifest using the provided
// package name: [package] metadata plus an empty [style] file list to fill in.
func buildDefaultManifest(name string) string {
	// Minimal TOML manifest used as a project marker.
	return fmt.Sprintf(`# cstyle project manifest
[package]
name = "%s"
version = "0.1.0"

# List the sources to keep in style. Paths are relative to [style].root;
# files are rewritten in the order written here.
[style]
root = "src"
files = []
`, name)
}
