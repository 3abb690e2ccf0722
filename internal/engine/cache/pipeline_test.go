package cache_test

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/collector/internal/adapters/fs"
	"go.trai.ch/collector/internal/adapters/logger"
	"go.trai.ch/collector/internal/core/domain"
	"go.trai.ch/collector/internal/core/ports/mocks"
	"go.trai.ch/collector/internal/engine/cache"
	"go.uber.org/mock/gomock"
)

func TestPipeline_CommitWritesPointerAndOutput(t *testing.T) {
	h := newHarness(t)
	h.write(t, "a.txt", "x")
	h.write(t, "b.txt", "y")
	h.write(t, "out/render.svg", "<svg/>")

	unit := testUnit()
	d := h.engine.Decide(unit, h.opts)
	require.NoError(t, h.pipeline.Commit(d, h.opts))

	ptr, err := h.pointers.Load(h.opts.Namespace, unit.Key, d.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, d.Fingerprint, ptr.OutputLocationID)
	assert.Equal(t, unit.OutputDir, ptr.ScanDir)
	assert.Equal(t, d.Hashes, ptr.Sources)
	assert.False(t, ptr.Timestamp.IsZero())

	data, err := os.ReadFile(filepath.Join(h.outputs.Path(d.Fingerprint, unit.OutputDir), "render.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))
}

// Committing the same state twice leaves an equivalent pointer and identical
// output bytes behind.
func TestPipeline_CommitIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.write(t, "a.txt", "x")
	h.write(t, "b.txt", "y")
	h.write(t, "out/render.svg", "<svg/>")

	unit := testUnit()
	d := h.engine.Decide(unit, h.opts)
	require.NoError(t, h.pipeline.Commit(d, h.opts))

	first, err := h.pointers.Load(h.opts.Namespace, unit.Key, d.Fingerprint)
	require.NoError(t, err)
	firstOut, err := os.ReadFile(filepath.Join(h.outputs.Path(d.Fingerprint, unit.OutputDir), "render.svg"))
	require.NoError(t, err)

	require.NoError(t, h.pipeline.Commit(d, h.opts))

	second, err := h.pointers.Load(h.opts.Namespace, unit.Key, d.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, first.OutputLocationID, second.OutputLocationID)
	assert.Equal(t, first.ScanDir, second.ScanDir)
	assert.Equal(t, first.Sources, second.Sources)

	secondOut, err := os.ReadFile(filepath.Join(h.outputs.Path(d.Fingerprint, unit.OutputDir), "render.svg"))
	require.NoError(t, err)
	assert.Equal(t, firstOut, secondOut)
}

// A decision carrying no hash set (sources were unreadable when it was made)
// gets hashed at commit time instead.
func TestPipeline_CommitHashesDeferred(t *testing.T) {
	h := newHarness(t)
	h.write(t, "a.txt", "x")
	// b.txt does not exist yet at decision time.

	unit := testUnit()
	d := h.engine.Decide(unit, h.opts)
	require.Equal(t, domain.MissSourcesUnreadable, d.Reason)
	require.Nil(t, d.Hashes)

	// The build produced both the missing source and the output.
	h.write(t, "b.txt", "y")
	h.write(t, "out/render.svg", "<svg/>")

	require.NoError(t, h.pipeline.Commit(d, h.opts))
	assert.True(t, h.engine.Decide(unit, h.opts).Hit)
}

func TestPipeline_CommitFailsWhenSourcesStillUnreadable(t *testing.T) {
	h := newHarness(t)
	h.write(t, "a.txt", "x")
	h.write(t, "out/render.svg", "<svg/>")

	unit := testUnit()
	d := h.engine.Decide(unit, h.opts)
	require.Nil(t, d.Hashes)

	err := h.pipeline.Commit(d, h.opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCommitFailed))
}

// The pointer record on disk carries the content-addressed fields by their
// stable names.
func TestPipeline_PointerRecordFormat(t *testing.T) {
	h := newHarness(t)
	h.write(t, "a.txt", "x")
	h.write(t, "b.txt", "y")
	h.write(t, "out/render.svg", "<svg/>")

	unit := testUnit()
	d := h.engine.Decide(unit, h.opts)
	require.NoError(t, h.pipeline.Commit(d, h.opts))

	ptr, err := h.pointers.Load(h.opts.Namespace, unit.Key, d.Fingerprint)
	require.NoError(t, err)

	data, err := json.Marshal(ptr)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, d.Fingerprint.String(), raw["output_location_id"])
	assert.Contains(t, raw, "sources")
}

func TestPipeline_CommitAllSkipsHits(t *testing.T) {
	h := newHarness(t)
	h.write(t, "a.txt", "x")
	h.write(t, "b.txt", "y")
	h.write(t, "out/render.svg", "<svg/>")

	unit := testUnit()
	d := h.engine.Decide(unit, h.opts)
	require.NoError(t, h.pipeline.Commit(d, h.opts))

	hit := h.engine.Decide(unit, h.opts)
	require.True(t, hit.Hit)

	ctrl := gomock.NewController(t)
	pointers := mocks.NewMockPointerStore(ctrl)
	outputs := mocks.NewMockOutputStore(ctrl)
	// No Save or Commit expectations: a hit must not touch the stores.
	p := cache.NewPipeline(fs.NewHasher(), pointers, outputs, quietLog())
	p.CommitAll([]domain.Decision{hit}, h.opts)
}

// A failed cache update is logged and skipped, never propagated: the build's
// own output already exists in the worktree.
func TestPipeline_CommitAllLogsAndContinues(t *testing.T) {
	h := newHarness(t)
	h.write(t, "a.txt", "x")
	h.write(t, "b.txt", "y")
	h.write(t, "out/render.svg", "<svg/>")

	unit := testUnit()
	d := h.engine.Decide(unit, h.opts)

	ctrl := gomock.NewController(t)
	pointers := mocks.NewMockPointerStore(ctrl)
	pointers.EXPECT().
		Save(h.opts.Namespace, unit.Key, d.Fingerprint, gomock.Any()).
		Return(errors.New("disk full"))
	outputs := mocks.NewMockOutputStore(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("cache update skipped", gomock.Any()).Times(1)

	p := cache.NewPipeline(fs.NewHasher(), pointers, outputs, log)
	p.CommitAll([]domain.Decision{d}, h.opts)
}

func quietLog() *logger.Logger {
	l := logger.New()
	l.SetOutput(io.Discard)
	return l
}
