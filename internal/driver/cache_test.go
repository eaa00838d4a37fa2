package driver

import (
	"context"
	"crypto/sha256"
	"path/filepath"
	"testing"

	"cstyle/internal/project"
)

func TestCleanCachePutGetRoundTrip(t *testing.T) {
	cache, err := OpenCleanCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCleanCacheAt: %v", err)
	}

	key := project.Digest(sha256.Sum256([]byte("int main(void) { return 0; }")))
	in := CleanPayload{
		Schema: cleanCacheSchemaVersion,
		Path:   "src/main.c",
		Hash:   key,
		Stamp:  1700000000,
	}
	if err := cache.Put(key, &in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out CleanPayload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit for a stored key")
	}
	if out != in {
		t.Fatalf("payload = %+v, want %+v", out, in)
	}
}

func TestCleanCacheMissIsNotAnError(t *testing.T) {
	cache, err := OpenCleanCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCleanCacheAt: %v", err)
	}

	var out CleanPayload
	ok, err := cache.Get(project.Digest(sha256.Sum256([]byte("nowhere"))), &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("unexpected hit for an unknown key")
	}
}

func TestCleanCacheIgnoresZeroKey(t *testing.T) {
	cache, err := OpenCleanCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCleanCacheAt: %v", err)
	}

	var zero project.Digest
	if err := cache.Put(zero, &CleanPayload{Schema: cleanCacheSchemaVersion}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out CleanPayload
	ok, err := cache.Get(zero, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("zero digest must never be stored")
	}
}

func TestCleanCacheRejectsStaleSchema(t *testing.T) {
	cache, err := OpenCleanCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCleanCacheAt: %v", err)
	}

	key := project.Digest(sha256.Sum256([]byte("old entry")))
	stale := CleanPayload{Schema: cleanCacheSchemaVersion + 1, Path: "a.c", Hash: key}
	if err := cache.Put(key, &stale); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out CleanPayload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("entry with a foreign schema version must read as a miss")
	}
}

func TestCleanCacheDropAll(t *testing.T) {
	cache, err := OpenCleanCacheAt(filepath.Join(t.TempDir(), "cstyle"))
	if err != nil {
		t.Fatalf("OpenCleanCacheAt: %v", err)
	}

	key := project.Digest(sha256.Sum256([]byte("verdict")))
	if err := cache.Put(key, &CleanPayload{Schema: cleanCacheSchemaVersion, Hash: key}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}

	var out CleanPayload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get after drop: %v", err)
	}
	if ok {
		t.Fatal("entry survived DropAll")
	}

	// Повторный сброс по отсутствующему каталогу — не ошибка.
	if err := cache.DropAll(); err != nil {
		t.Fatalf("second DropAll: %v", err)
	}
}

func TestCleanCacheNilReceiverIsSafe(t *testing.T) {
	var cache *CleanCache
	if err := cache.Put(project.Digest{1}, &CleanPayload{}); err != nil {
		t.Fatalf("Put on nil: %v", err)
	}
	var out CleanPayload
	ok, err := cache.Get(project.Digest{1}, &out)
	if err != nil {
		t.Fatalf("Get on nil: %v", err)
	}
	if ok {
		t.Fatal("nil cache cannot hit")
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll on nil: %v", err)
	}
	if cache.Dir() != "" {
		t.Fatal("nil cache has no directory")
	}
}

func TestIsSHA256(t *testing.T) {
	var zero project.Digest
	if IsSHA256(zero) {
		t.Fatal("zero digest is not a usable key")
	}
	if !IsSHA256(project.Digest(sha256.Sum256([]byte("x")))) {
		t.Fatal("real digest rejected")
	}
}

func TestFormatFilesCacheHitOnSecondRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clean.c", cleanSource)
	cache, err := OpenCleanCacheAt(filepath.Join(dir, ".cache"))
	if err != nil {
		t.Fatalf("OpenCleanCacheAt: %v", err)
	}

	cfg := Config{BaseDir: dir, Files: []string{"clean.c"}}
	opts := FormatOptions{Cache: cache}

	first, _, err := FormatFiles(context.Background(), cfg, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first[0].CacheHit {
		t.Fatal("first run cannot hit a cold cache")
	}

	second, _, err := FormatFiles(context.Background(), cfg, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second[0].CacheHit {
		t.Fatal("second run should hit the verdict stored by the first")
	}
	if second[0].Outcome != OutcomeUnchanged {
		t.Fatalf("outcome = %s, want unchanged", second[0].Outcome)
	}
}

func TestFormatFilesCachesRewrittenContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dirty.c", dirtySource)
	cache, err := OpenCleanCacheAt(filepath.Join(dir, ".cache"))
	if err != nil {
		t.Fatalf("OpenCleanCacheAt: %v", err)
	}

	cfg := Config{BaseDir: dir, Files: []string{"dirty.c"}}
	opts := FormatOptions{Cache: cache}

	first, _, err := FormatFiles(context.Background(), cfg, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first[0].Outcome != OutcomeRewritten {
		t.Fatalf("first run outcome = %s, want rewritten", first[0].Outcome)
	}

	// Первый прогон сохранил вердикт для уже переписанного содержимого.
	second, _, err := FormatFiles(context.Background(), cfg, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second[0].CacheHit {
		t.Fatal("rewritten content should hit on the next run")
	}
	if second[0].Outcome != OutcomeUnchanged {
		t.Fatalf("second run outcome = %s, want unchanged", second[0].Outcome)
	}
}
