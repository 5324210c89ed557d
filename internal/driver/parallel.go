package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"errcode/internal/buildpipeline"
	"errcode/internal/config"
	"errcode/internal/errcode"
	"errcode/internal/observ"
	"errcode/internal/registry"
	"errcode/internal/trace"
)

// RunOptions configure a run over many units.
type RunOptions struct {
	// Root is the directory logical paths are relative to.
	Root   string
	Files  []string
	Commit string
	Mode   config.Mode
	Store  *registry.Store
	// Jobs limits parallel units; <= 0 means GOMAXPROCS.
	Jobs           int
	MaxDiagnostics int
	// OutDir receives every unit at its logical path when set.
	OutDir string
	// InPlace overwrites changed sources.
	InPlace  bool
	Cache    *DiskCache
	Progress buildpipeline.ProgressSink
	// Timings, when set, collects the phases of every unit.
	Timings *observ.Aggregate
}

// UnitSummary is what Run keeps of a unit.
type UnitSummary struct {
	Path        string
	LogicalPath string
	Sites       []errcode.Site
	Skipped     int
	Changed     bool
	Cached      bool
	// OutPath is where the unit was written, "" if nowhere.
	OutPath string
}

type RunResult struct {
	// Units are in the order of RunOptions.Files.
	Units   []UnitSummary
	Sites   int
	Changed int
	Cached  int
}

// Run processes opts.Files in parallel. The first fatal error (syntax,
// missing registry entry, persistence failure, I/O) cancels the remaining
// units and is returned; registry entries already written stay on disk.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if opts.Commit == "" {
		return nil, errcode.MissingField("commitHash")
	}
	gw, err := registry.NewGateway(opts.Mode, opts.Store)
	if err != nil {
		return nil, err
	}
	if opts.Mode != config.ModeDryRun && opts.Store == nil {
		return nil, errors.New("driver: registry store is required in " + opts.Mode.String() + " mode")
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "run", trace.CurrentSpan(ctx))
	span.WithExtra("mode", opts.Mode.String()).WithExtra("units", strconv.Itoa(len(opts.Files)))
	defer span.End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	for _, file := range opts.Files {
		buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: file, Status: buildpipeline.StatusQueued})
	}

	results := make([]UnitSummary, len(opts.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(opts.Files))))

	for i, file := range opts.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w := unitWorker{opts: &opts, gw: gw, tracer: tracer, parent: span.ID()}
			sum, err := w.process(file)
			if err != nil {
				return err
			}
			results[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.WithExtra("error", err.Error())
		return nil, err
	}

	out := &RunResult{Units: results}
	for _, u := range results {
		out.Sites += len(u.Sites)
		if u.Changed {
			out.Changed++
		}
		if u.Cached {
			out.Cached++
		}
	}
	return out, nil
}

type unitWorker struct {
	opts   *RunOptions
	gw     errcode.Gateway
	tracer trace.Tracer
	parent uint64
}

func (w *unitWorker) emit(file string, stage buildpipeline.Stage, status buildpipeline.Status, err error, started time.Time, sites int) {
	buildpipeline.Emit(w.opts.Progress, buildpipeline.Event{
		File:    file,
		Stage:   stage,
		Status:  status,
		Err:     err,
		Elapsed: time.Since(started),
		Sites:   sites,
	})
}

func (w *unitWorker) process(file string) (UnitSummary, error) {
	opts := w.opts
	started := time.Now()
	logical := LogicalPath(opts.Root, file)
	span := trace.Begin(w.tracer, trace.ScopeUnit, "unit:"+logical, w.parent)
	defer span.End("")

	fail := func(stage buildpipeline.Stage, err error) (UnitSummary, error) {
		w.emit(file, stage, buildpipeline.StatusError, err, started, 0)
		span.WithExtra("error", err.Error())
		return UnitSummary{}, err
	}

	w.emit(file, buildpipeline.StageLoad, buildpipeline.StatusWorking, nil, started, 0)
	content, err := os.ReadFile(file)
	if err != nil {
		return fail(buildpipeline.StageLoad, fmt.Errorf("failed to read %s: %w", file, err))
	}

	sum := UnitSummary{Path: file, LogicalPath: logical}
	key := CacheKey(content, opts.Commit, logical)
	var output []byte

	payload, hit, err := opts.Cache.Get(key)
	if err != nil {
		// битый кэш не должен ронять прогон: считаем промахом
		hit = false
	}
	if hit {
		sites, err := payload.replay(w.gw, 0)
		if err != nil {
			return fail(buildpipeline.StageRewrite, err)
		}
		sum.Sites, sum.Skipped, sum.Changed, sum.Cached = sites, payload.Skipped, payload.Changed, true
		output = payload.Output
	} else {
		timer := observ.NewTimer()
		w.emit(file, buildpipeline.StageParse, buildpipeline.StatusWorking, nil, started, 0)
		res, err := TransformSource(file, logical, content, UnitOptions{
			Commit:         opts.Commit,
			Gateway:        w.gw,
			MaxDiagnostics: opts.MaxDiagnostics,
			Tracer:         w.tracer,
			ParentSpan:     span.ID(),
			Timer:          timer,
		})
		if opts.Timings != nil {
			opts.Timings.Add(timer.Report())
		}
		if err != nil {
			stage := buildpipeline.StageRewrite
			if errors.Is(err, ErrSyntax) {
				stage = buildpipeline.StageParse
			}
			return fail(stage, err)
		}
		sum.Sites, sum.Skipped, sum.Changed = res.Sites, res.Skipped, res.Changed
		output = res.Output
		if err := opts.Cache.Put(key, payloadFromUnit(res)); err != nil {
			return fail(buildpipeline.StageWrite, fmt.Errorf("failed to write cache: %w", err))
		}
	}

	if opts.OutDir != "" || (opts.InPlace && sum.Changed) {
		w.emit(file, buildpipeline.StageWrite, buildpipeline.StatusWorking, nil, started, len(sum.Sites))
		outPath := file
		if opts.OutDir != "" {
			outPath = filepath.Join(opts.OutDir, filepath.FromSlash(logical))
		}
		if err := writeOutput(outPath, output, file); err != nil {
			return fail(buildpipeline.StageWrite, err)
		}
		sum.OutPath = outPath
	}

	status := buildpipeline.StatusDone
	if sum.Cached {
		status = buildpipeline.StatusCached
	}
	span.WithExtra("sites", strconv.Itoa(len(sum.Sites)))
	w.emit(file, buildpipeline.StageWrite, status, nil, started, len(sum.Sites))
	return sum, nil
}

// writeOutput writes data to path with the permissions of the source file.
func writeOutput(path string, data []byte, src string) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(src); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".errcode-*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
