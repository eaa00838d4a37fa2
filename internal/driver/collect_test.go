package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func mkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func slashJoin(parts ...string) string {
	return filepath.ToSlash(filepath.Join(parts...))
}

func TestCollectCSourcesWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	mkdirAll(t, filepath.Join(dir, "sub"))
	mkdirAll(t, filepath.Join(dir, ".git"))
	mkdirAll(t, filepath.Join(dir, "sub", ".backup"))
	writeFile(t, dir, "b.c", "int b;\n")
	writeFile(t, dir, "a.c", "int a;\n")
	writeFile(t, dir, "notes.txt", "not a source\n")
	writeFile(t, filepath.Join(dir, "sub"), "c.c", "int c;\n")
	writeFile(t, filepath.Join(dir, ".git"), "objects.c", "int skip;\n")
	writeFile(t, filepath.Join(dir, "sub", ".backup"), "old.c", "int old;\n")

	got, err := CollectCSources(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("CollectCSources: %v", err)
	}

	want := []string{
		slashJoin(dir, "a.c"),
		slashJoin(dir, "b.c"),
		slashJoin(dir, "sub", "c.c"),
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollectCSourcesKeepsExplicitArguments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.txt", "kept because named explicitly\n")

	args := []string{
		filepath.Join(dir, "readme.txt"),
		filepath.Join(dir, "ghost.c"), // не существует — репортится как missing позже
	}
	got, err := CollectCSources(context.Background(), args)
	if err != nil {
		t.Fatalf("CollectCSources: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 entries", got)
	}
	if got[0] != slashJoin(dir, "ghost.c") || got[1] != slashJoin(dir, "readme.txt") {
		t.Fatalf("got %v", got)
	}
}

func TestCollectCSourcesDeduplicates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "only.c", "int x;\n")

	args := []string{
		dir,
		filepath.Join(dir, "only.c"),
		dir + string(filepath.Separator) + "." + string(filepath.Separator) + "only.c",
	}
	got, err := CollectCSources(context.Background(), args)
	if err != nil {
		t.Fatalf("CollectCSources: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %v, want a single entry", got)
	}
	if got[0] != slashJoin(dir, "only.c") {
		t.Fatalf("got %q", got[0])
	}
}

func TestCollectCSourcesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CollectCSources(ctx, []string{t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
