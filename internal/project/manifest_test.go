package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write %s: %v", ManifestName, err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, `# test manifest
[package]
name = "aisafe64"

[style]
root = "src"
files = ["arch.c", "cpu.c", "mmu.c"]
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Config.Package.Name != "aisafe64" {
		t.Fatalf("package name = %q, want %q", m.Config.Package.Name, "aisafe64")
	}
	if m.Root != root {
		t.Fatalf("manifest root = %q, want %q", m.Root, root)
	}
	wantDir := filepath.Join(root, "src")
	if got := m.StyleDir(); got != wantDir {
		t.Fatalf("StyleDir() = %q, want %q", got, wantDir)
	}
	files := m.StyleFiles()
	if len(files) != 3 || files[0] != "arch.c" || files[2] != "mmu.c" {
		t.Fatalf("StyleFiles() = %v", files)
	}
}

func TestLoadManifestDefaultsRootToManifestDir(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, `[package]
name = "demo"

[style]
files = ["a.c"]
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := m.StyleDir(); got != root {
		t.Fatalf("StyleDir() = %q, want %q", got, root)
	}
}

func TestLoadManifestValidation(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "missing package",
			data:    "[style]\nfiles = []\n",
			wantErr: "missing [package]",
		},
		{
			name:    "missing package name",
			data:    "[package]\n[style]\nfiles = []\n",
			wantErr: "missing [package].name",
		},
		{
			name:    "blank package name",
			data:    "[package]\nname = \"  \"\n[style]\nfiles = []\n",
			wantErr: "missing [package].name",
		},
		{
			name:    "missing style",
			data:    "[package]\nname = \"demo\"\n",
			wantErr: "missing [style]",
		},
		{
			name:    "missing files",
			data:    "[package]\nname = \"demo\"\n[style]\nroot = \"src\"\n",
			wantErr: "missing [style].files",
		},
		{
			name:    "empty file entry",
			data:    "[package]\nname = \"demo\"\n[style]\nfiles = [\"a.c\", \"\"]\n",
			wantErr: "[style].files entry 2 is empty",
		},
		{
			name:    "bad toml",
			data:    "[package\n",
			wantErr: "failed to parse TOML",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root := t.TempDir()
			path := writeManifest(t, root, tc.data)
			_, err := Load(path)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %q, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadManifestAllowsEmptyFileList(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, `[package]
name = "demo"

[style]
files = []
`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.StyleFiles()) != 0 {
		t.Fatalf("StyleFiles() = %v, want empty", m.StyleFiles())
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `[package]
name = "demo"

[style]
files = []
`)
	nested := filepath.Join(root, "src", "arch")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok {
		t.Fatal("expected manifest to be found from nested dir")
	}
	if m.Root != root {
		t.Fatalf("manifest root = %q, want %q", m.Root, root)
	}

	rootDir, ok, err := FindProjectRoot(nested)
	if err != nil || !ok {
		t.Fatalf("FindProjectRoot: ok=%v err=%v", ok, err)
	}
	if rootDir != root {
		t.Fatalf("FindProjectRoot = %q, want %q", rootDir, root)
	}
}

func TestFindManifestMissing(t *testing.T) {
	// Изолированная директория без манифеста вплоть до корня маловероятна,
	// поэтому проверяем только, что поиск из несуществующего пути не паникует.
	_, ok, err := Find(filepath.Join(t.TempDir(), "nested"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	_ = ok
}
