// Package app implements the application layer for collector.
package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/collector/internal/adapters/cas" //nolint:depguard // Wired in app layer
	"go.trai.ch/collector/internal/core/domain"
	"go.trai.ch/collector/internal/core/ports"
	"go.trai.ch/collector/internal/engine/cache"
	"go.trai.ch/zerr"
)

// StoreProvider builds the pointer and output stores for a cache root. The
// root is only known once the descriptor is loaded, so stores are created
// per run rather than at wiring time.
type StoreProvider func(cacheRoot string) (ports.PointerStore, ports.OutputStore)

// App represents the main application logic.
type App struct {
	loader    ports.ConfigLoader
	executor  ports.Executor
	hasher    ports.Hasher
	logger    ports.Logger
	telemetry ports.Telemetry
	stores    StoreProvider
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, executor ports.Executor, hasher ports.Hasher, logger ports.Logger, telemetry ports.Telemetry, opts ...func(*App)) *App {
	a := &App{
		loader:    loader,
		executor:  executor,
		hasher:    hasher,
		logger:    logger,
		telemetry: telemetry,
		stores: func(cacheRoot string) (ports.PointerStore, ports.OutputStore) {
			return cas.NewPointerStore(cacheRoot), cas.NewOutputStore(cacheRoot)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithStores overrides the store provider. Used by tests.
func WithStores(p StoreProvider) func(*App) {
	return func(a *App) { a.stores = p }
}

// RunOptions controls one collector pass.
type RunOptions struct {
	Worktree string // defaults to "."
	Force    bool   // bypass the cache for every unit
	DryRun   bool   // evaluate and report decisions only
	Verify   bool   // re-check stored tree integrity on hits
	Jobs     int    // decision parallelism, defaults to NumCPU
}

// Run executes one collector pass: load the descriptor, decide every unit,
// run the commands for the misses, and commit their output. Cache machinery
// never fails the pass; only an unreadable descriptor or a failing external
// command does.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	m, eopts, ptrs, outs, err := a.prepare(opts)
	if err != nil {
		return err
	}

	engine := cache.NewEngine(a.hasher, ptrs, outs, a.logger)

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	decisions := engine.DecideAll(ctx, m.Units, eopts, jobs)
	a.report(decisions, outs, opts.Verify)

	if opts.DryRun {
		return nil
	}
	defer func() { _ = a.telemetry.Close() }()

	executed := make([]domain.Decision, 0, len(decisions))
	var errs error
	for _, d := range decisions {
		if d.Hit {
			_, v := a.telemetry.Record(ctx, "collect "+d.Unit.Key)
			v.Cached()
			v.Complete(nil)
			continue
		}

		vctx, v := a.telemetry.Record(ctx, "collect "+d.Unit.Key)
		runErr := a.executor.Execute(vctx, &d.Unit, opts.Worktree)
		v.Complete(runErr)
		if runErr != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(runErr, "unit execution failed"), "key", d.Unit.Key))
			continue
		}
		executed = append(executed, d)
	}

	pipeline := cache.NewPipeline(a.hasher, ptrs, outs, a.logger)
	pipeline.CommitAll(executed, eopts)

	return errs
}

// CleanOptions selects what Clean removes.
type CleanOptions struct {
	Hashes  bool
	Outputs bool
}

// Clean removes cache state. This is the only reclamation the tool does;
// nothing is pruned implicitly during builds.
func (a *App) Clean(opts RunOptions, what CleanOptions) error {
	worktree := opts.Worktree
	if worktree == "" {
		worktree = "."
	}
	m, err := a.loader.Load(worktree)
	if err != nil {
		return zerr.Wrap(err, "failed to load descriptor")
	}
	root := resolveCacheRoot(worktree, m.CacheDir)

	if what.Hashes {
		if err := os.RemoveAll(filepath.Join(root, "hashes")); err != nil {
			return zerr.Wrap(err, "failed to remove pointer records")
		}
		a.logger.Info("removed pointer records", "path", filepath.Join(root, "hashes"))
	}
	if what.Outputs {
		if err := os.RemoveAll(filepath.Join(root, "outputs")); err != nil {
			return zerr.Wrap(err, "failed to remove cached outputs")
		}
		a.logger.Info("removed cached outputs", "path", filepath.Join(root, "outputs"))
	}
	return nil
}

func (a *App) prepare(opts RunOptions) (*domain.Manifest, cache.Options, ports.PointerStore, ports.OutputStore, error) {
	worktree := opts.Worktree
	if worktree == "" {
		worktree = "."
	}

	m, err := a.loader.Load(worktree)
	if err != nil {
		return nil, cache.Options{}, nil, nil, zerr.Wrap(err, "failed to load descriptor")
	}

	ptrs, outs := a.stores(resolveCacheRoot(worktree, m.CacheDir))
	eopts := cache.Options{
		Namespace: m.Namespace,
		Worktree:  worktree,
		Force:     opts.Force,
	}
	return m, eopts, ptrs, outs, nil
}

func (a *App) report(decisions []domain.Decision, outs ports.OutputStore, verify bool) {
	for _, d := range decisions {
		if !d.Hit {
			a.logger.Info("cache miss", "key", d.Unit.Key, "reason", string(d.Reason))
			continue
		}

		a.logger.Info("cache hit", "key", d.Unit.Key, "fingerprint", d.Fingerprint.String())
		for i, r := range d.Scan {
			if r.Dir != d.Unit.Scan[i].Dir {
				a.logger.Debug("scan redirected", "key", d.Unit.Key, "from", d.Unit.Scan[i].Dir, "to", r.Dir)
			}
		}
		if verify {
			ok, err := outs.Verify(d.Fingerprint, d.Unit.OutputDir)
			switch {
			case err != nil:
				a.logger.Warn("integrity check failed", "key", d.Unit.Key, "error", err.Error())
			case !ok:
				a.logger.Warn("cached tree does not match its manifest", "key", d.Unit.Key)
			default:
				a.logger.Debug("cached tree verified", "key", d.Unit.Key)
			}
		}
	}
}

func resolveCacheRoot(worktree, cacheDir string) string {
	if filepath.IsAbs(cacheDir) {
		return cacheDir
	}
	return filepath.Join(worktree, cacheDir)
}
