package driver

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"cstyle/internal/format"
	"cstyle/internal/observ"
	"cstyle/internal/project"
	"cstyle/internal/source"
)

// Config names the inputs of one run explicitly: the directory the file paths
// are relative to, and the ordered list of files to rewrite.
type Config struct {
	BaseDir string
	Files   []string
}

// Resolve joins a configured path with the base directory.
func (c Config) Resolve(path string) string {
	if c.BaseDir == "" || filepath.IsAbs(path) {
		return filepath.FromSlash(path)
	}
	return filepath.Join(c.BaseDir, filepath.FromSlash(path))
}

// FormatOptions configures a formatting run.
type FormatOptions struct {
	// Check reports what would change without writing anything.
	Check bool
	// Stdout returns formatted content in the results instead of writing.
	Stdout bool
	// Jobs bounds the number of files processed concurrently; 0 means
	// GOMAXPROCS, 1 processes strictly in list order.
	Jobs int
	// Cache, when non-nil, skips the passes for content already known clean.
	Cache *CleanCache
	// Progress, when non-nil, receives per-file events.
	Progress ProgressSink
	// Timer, when non-nil, records run phases.
	Timer *observ.Timer
}

// ruleSalt folds the active rule set into cache keys.
var ruleSalt = project.Digest(format.Fingerprint())

func cleanKey(content [32]byte) project.Digest {
	return project.Combine(project.Digest(content), ruleSalt)
}

// FormatFiles runs the style passes over every file cfg names, in order.
// Results are reported in config order regardless of Jobs. Per-file failures
// are captured in the results and never abort the batch; the returned error
// is reserved for cancellation.
func FormatFiles(ctx context.Context, cfg Config, opts FormatOptions) ([]Result, Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, Summary{}, err
	}

	for _, path := range cfg.Files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Предзагрузка: FileSet не потокобезопасен, грузим последовательно.
	loadPhase := beginPhase(opts.Timer, "load")
	fileSet := source.NewFileSetWithBase(cfg.BaseDir)
	fileIDs := make(map[string]source.FileID, len(cfg.Files))
	loadErrors := make(map[string]error, len(cfg.Files))

	for _, path := range cfg.Files {
		if err := ctx.Err(); err != nil {
			return nil, Summary{}, err
		}
		fileID, err := fileSet.Load(cfg.Resolve(path))
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}
	endPhase(opts.Timer, loadPhase, fmt.Sprintf("%d files", len(cfg.Files)))

	r := &runner{
		cfg:        cfg,
		opts:       opts,
		fileSet:    fileSet,
		fileIDs:    fileIDs,
		loadErrors: loadErrors,
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]Result, len(cfg.Files))

	rewritePhase := beginPhase(opts.Timer, "rewrite")
	g, gctx := errgroup.WithContext(ctx)
	if len(cfg.Files) > 0 {
		g.SetLimit(min(jobs, len(cfg.Files)))
	}

	for i, path := range cfg.Files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				// Проверка отмены
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[i] = r.processOne(path)
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		endPhase(opts.Timer, rewritePhase, "cancelled")
		return results, Summarize(results), err
	}
	endPhase(opts.Timer, rewritePhase, "")

	return results, Summarize(results), nil
}

type runner struct {
	cfg        Config
	opts       FormatOptions
	fileSet    *source.FileSet
	fileIDs    map[string]source.FileID
	loadErrors map[string]error
}

// processOne owns one file from loaded content to final outcome. It reads the
// shared FileSet but never mutates it.
func (r *runner) processOne(path string) Result {
	started := time.Now()
	res := Result{Path: path}

	if loadErr, hadError := r.loadErrors[path]; hadError {
		if errors.Is(loadErr, os.ErrNotExist) {
			res.Outcome = OutcomeMissing
		} else {
			res.Outcome = OutcomeFailed
		}
		res.Err = loadErr
		res.Elapsed = time.Since(started)
		emit(r.opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: res.Elapsed})
		return res
	}

	emit(r.opts.Progress, Event{File: path, Stage: StageRewrite, Status: StatusWorking})

	file := r.fileSet.Get(r.fileIDs[path])
	content := string(file.Content)

	formatted := content
	hit := false
	if r.opts.Cache != nil {
		var payload CleanPayload
		if ok, err := r.opts.Cache.Get(cleanKey(file.Hash), &payload); err == nil && ok {
			hit = true
		}
	}
	if !hit {
		formatted, res.Report = format.Normalize(content)
	}
	res.CacheHit = hit

	changed := formatted != content
	// Нормализация при загрузке (BOM/CRLF) тоже требует перезаписи.
	needsWrite := changed || file.LoadNormalized()

	if r.opts.Cache != nil && !hit {
		contentHash := file.Hash
		if changed {
			contentHash = sha256.Sum256([]byte(formatted))
		}
		_ = r.opts.Cache.Put(cleanKey(contentHash), &CleanPayload{
			Schema: cleanCacheSchemaVersion,
			Path:   path,
			Hash:   project.Digest(contentHash),
			Stamp:  time.Now().Unix(),
		})
	}

	stage := StageRewrite
	switch {
	case r.opts.Check:
		res.Outcome = outcomeForChange(needsWrite)

	case r.opts.Stdout:
		res.Formatted = []byte(formatted)
		res.Outcome = outcomeForChange(needsWrite)

	case needsWrite:
		stage = StageWrite
		emit(r.opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		full := r.cfg.Resolve(path)
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(full); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(full, []byte(formatted), mode.Perm()); err != nil {
			res.Outcome = OutcomeFailed
			res.Err = err
		} else {
			res.Outcome = OutcomeRewritten
		}

	default:
		res.Outcome = OutcomeUnchanged
	}

	res.Elapsed = time.Since(started)
	status := StatusDone
	if res.Err != nil {
		status = StatusError
	}
	emit(r.opts.Progress, Event{File: path, Stage: stage, Status: status, Err: res.Err, Elapsed: res.Elapsed})
	return res
}

func outcomeForChange(changed bool) Outcome {
	if changed {
		return OutcomeRewritten
	}
	return OutcomeUnchanged
}

func beginPhase(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func endPhase(t *observ.Timer, idx int, note string) {
	if t == nil || idx < 0 {
		return
	}
	t.End(idx, note)
}
