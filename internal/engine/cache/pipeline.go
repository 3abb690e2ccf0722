package cache

import (
	"time"

	"go.trai.ch/collector/internal/core/domain"
	"go.trai.ch/collector/internal/core/ports"
	"go.trai.ch/zerr"
)

// Pipeline records a unit's fresh output into the cache after its command
// has run. By the time it is invoked the expensive work already succeeded,
// so nothing here may fail the build: CommitAll logs failures and skips the
// unit.
type Pipeline struct {
	hasher   ports.Hasher
	pointers ports.PointerStore
	outputs  ports.OutputStore
	logger   ports.Logger
}

// NewPipeline creates a new Pipeline.
func NewPipeline(hasher ports.Hasher, pointers ports.PointerStore, outputs ports.OutputStore, logger ports.Logger) *Pipeline {
	return &Pipeline{
		hasher:   hasher,
		pointers: pointers,
		outputs:  outputs,
		logger:   logger,
	}
}

// Commit saves the pointer and captures the live output tree for one unit.
// The hash set computed at decision time is reused; hashing only happens
// here when the decision phase could not read the sources (first-ever run
// of a namespace whose sources appear during the build).
func (p *Pipeline) Commit(d domain.Decision, opts Options) error {
	unit := d.Unit

	hashes := d.Hashes
	if hashes == nil {
		var err error
		hashes, err = p.hasher.Hash(unit.Sources, opts.Worktree)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrCommitFailed, "sources still unreadable"), "key", unit.Key)
		}
	}

	fp := d.Fingerprint
	if fp == "" {
		fp = domain.FingerprintOf(hashes)
	}

	ptr := domain.Pointer{
		OutputLocationID: fp,
		ScanDir:          unit.OutputDir,
		Sources:          hashes,
		Timestamp:        time.Now().UTC(),
	}
	if err := p.pointers.Save(opts.Namespace, unit.Key, fp, ptr); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCommitFailed, err.Error()), "key", unit.Key)
	}

	if err := p.outputs.Commit(fp, unit.OutputDir, opts.Worktree); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCommitFailed, err.Error()), "key", unit.Key)
	}
	return nil
}

// CommitAll commits every executed miss, logging and skipping any unit whose
// cache update fails. The build's own output already exists outside the
// cache, so a failed update is a warning, not a build failure.
func (p *Pipeline) CommitAll(decisions []domain.Decision, opts Options) {
	for _, d := range decisions {
		if d.Hit {
			continue
		}
		if err := p.Commit(d, opts); err != nil {
			p.logger.Warn("cache update skipped", "key", d.Unit.Key, "error", err.Error())
		}
	}
}
