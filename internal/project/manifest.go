package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a parsed cstyle.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the cstyle.toml layout.
type Config struct {
	Package PackageConfig `toml:"package"`
	Style   StyleConfig   `toml:"style"`
}

// PackageConfig names the project.
type PackageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// StyleConfig lists the files one run rewrites. Root is relative to the
// manifest directory; Files are relative to Root and processed in the order
// written here.
type StyleConfig struct {
	Root  string   `toml:"root"`
	Files []string `toml:"files"`
}

// Load parses and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// Find locates the manifest by walking up from startDir and loads it.
func Find(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("style") {
		return Config{}, fmt.Errorf("%s: missing [style]", path)
	}
	if !meta.IsDefined("style", "files") {
		return Config{}, fmt.Errorf("%s: missing [style].files", path)
	}
	for i, f := range cfg.Style.Files {
		if strings.TrimSpace(f) == "" {
			return Config{}, fmt.Errorf("%s: [style].files entry %d is empty", path, i+1)
		}
	}
	return cfg, nil
}

// StyleDir resolves the directory the style file list is relative to.
func (m *Manifest) StyleDir() string {
	root := strings.TrimSpace(m.Config.Style.Root)
	if root == "" {
		return m.Root
	}
	if filepath.IsAbs(root) {
		return filepath.Clean(root)
	}
	return filepath.Join(m.Root, filepath.FromSlash(root))
}

// StyleFiles returns the configured file list in manifest order.
func (m *Manifest) StyleFiles() []string {
	return m.Config.Style.Files
}
