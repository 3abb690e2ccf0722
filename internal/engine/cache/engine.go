// Package cache implements the cache decision engine and commit pipeline.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/collector/internal/core/domain"
	"go.trai.ch/collector/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// ForceEnv forces a miss for every unit when set truthy. It is the escape
// hatch for cache corruption and debugging and is consulted on every
// evaluation, before anything else.
const ForceEnv = "FORCE_COLLECTOR"

// Options carries the per-build context shared by all evaluations.
type Options struct {
	Namespace string
	Worktree  string
	Force     bool
}

// Engine decides, per work unit, whether its cached output can be reused.
type Engine struct {
	hasher   ports.Hasher
	pointers ports.PointerStore
	outputs  ports.OutputStore
	logger   ports.Logger
}

// NewEngine creates a new Engine.
func NewEngine(hasher ports.Hasher, pointers ports.PointerStore, outputs ports.OutputStore, logger ports.Logger) *Engine {
	return &Engine{
		hasher:   hasher,
		pointers: pointers,
		outputs:  outputs,
		logger:   logger,
	}
}

// Decide evaluates one unit. It never fails: every condition that cannot be
// proven safe degrades to a miss, because a false miss costs time while a
// false hit serves stale output. Checks run cheapest first, and a hit is
// returned only once both the pointer and a non-empty stored tree are
// confirmed; the two are written by separate non-transactional steps, so
// neither may be trusted alone.
func (e *Engine) Decide(unit domain.WorkUnit, opts Options) domain.Decision {
	d := domain.Decision{Unit: unit, Scan: unit.Scan}

	if opts.Force || forcedByEnv() {
		d.Reason = domain.MissForced
		return d
	}

	hashes, err := e.hasher.Hash(unit.Sources, opts.Worktree)
	if err != nil {
		e.logger.Debug("sources unreadable, treating as miss", "key", unit.Key, "error", err.Error())
		d.Reason = domain.MissSourcesUnreadable
		return d
	}
	d.Hashes = hashes
	d.Fingerprint = domain.FingerprintOf(hashes)

	if _, err := e.pointers.Load(opts.Namespace, unit.Key, d.Fingerprint); err != nil {
		d.Reason = domain.MissNoEntry
		return d
	}

	if !e.outputs.Exists(d.Fingerprint, unit.OutputDir) {
		d.Reason = domain.MissOutputMissing
		return d
	}

	d.Hit = true
	d.Scan = redirectScan(unit, e.outputs.Path(d.Fingerprint, unit.OutputDir))
	return d
}

// DecideAll evaluates all units, fanning out up to parallelism evaluations
// at once. This is safe because every unit owns a disjoint (namespace, key)
// subtree of the stores. Results keep the declared unit order.
func (e *Engine) DecideAll(ctx context.Context, units []domain.WorkUnit, opts Options, parallelism int) []domain.Decision {
	if parallelism < 1 {
		parallelism = 1
	}

	decisions := make([]domain.Decision, len(units))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, unit := range units {
		g.Go(func() error {
			decisions[i] = e.Decide(unit, opts)
			return nil
		})
	}
	_ = g.Wait() // evaluations never return errors

	return decisions
}

// redirectScan rewrites every scan rule reading from under the unit's output
// directory to read from the cached copy instead. Rules pointing elsewhere
// pass through untouched.
func redirectScan(unit domain.WorkUnit, cachedDir string) []domain.ScanRule {
	if len(unit.Scan) == 0 {
		return nil
	}

	rules := make([]domain.ScanRule, len(unit.Scan))
	for i, r := range unit.Scan {
		rules[i] = r
		rel, err := filepath.Rel(unit.OutputDir, r.Dir)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		rules[i].Dir = filepath.Join(cachedDir, rel)
	}
	return rules
}

func forcedByEnv() bool {
	forced, _ := strconv.ParseBool(os.Getenv(ForceEnv))
	return forced
}
