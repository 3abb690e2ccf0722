package app_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/collector/internal/adapters/cas"
	"go.trai.ch/collector/internal/adapters/fs"
	"go.trai.ch/collector/internal/adapters/logger"
	"go.trai.ch/collector/internal/adapters/telemetry"
	"go.trai.ch/collector/internal/app"
	"go.trai.ch/collector/internal/core/domain"
	"go.trai.ch/collector/internal/core/ports"
	"go.trai.ch/collector/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app      *app.App
	loader   *mocks.MockConfigLoader
	executor *mocks.MockExecutor
	worktree string
	cacheDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	executor := mocks.NewMockExecutor(ctrl)

	log := logger.New()
	log.SetOutput(io.Discard)

	cacheDir := t.TempDir()
	stores := func(string) (ports.PointerStore, ports.OutputStore) {
		return cas.NewPointerStore(cacheDir), cas.NewOutputStore(cacheDir)
	}

	return &fixture{
		app:      app.New(loader, executor, fs.NewHasher(), log, telemetry.NewNoOp(), app.WithStores(stores)),
		loader:   loader,
		executor: executor,
		worktree: t.TempDir(),
		cacheDir: cacheDir,
	}
}

func (f *fixture) write(t *testing.T, name, content string) {
	t.Helper()
	path := filepath.Join(f.worktree, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func (f *fixture) manifest() *domain.Manifest {
	return &domain.Manifest{
		Namespace: "boards",
		CacheDir:  f.cacheDir,
		Units: []domain.WorkUnit{
			{
				Key:       "main-board",
				Sources:   []string{"board.kicad_pcb"},
				OutputDir: "renders",
				Command:   "renderer main-board",
			},
		},
	}
}

func TestRun_MissExecutesThenSecondRunHits(t *testing.T) {
	f := newFixture(t)
	f.write(t, "board.kicad_pcb", "pcb-v1")
	f.write(t, "renders/front.png", "png")

	f.loader.EXPECT().Load(f.worktree).Return(f.manifest(), nil).Times(2)
	// Executed exactly once: the second pass hits the cache.
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), f.worktree).Return(nil).Times(1)

	opts := app.RunOptions{Worktree: f.worktree}
	require.NoError(t, f.app.Run(context.Background(), opts))
	require.NoError(t, f.app.Run(context.Background(), opts))
}

func TestRun_SourceChangeExecutesAgain(t *testing.T) {
	f := newFixture(t)
	f.write(t, "board.kicad_pcb", "pcb-v1")
	f.write(t, "renders/front.png", "png")

	f.loader.EXPECT().Load(f.worktree).Return(f.manifest(), nil).Times(2)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), f.worktree).Return(nil).Times(2)

	opts := app.RunOptions{Worktree: f.worktree}
	require.NoError(t, f.app.Run(context.Background(), opts))

	f.write(t, "board.kicad_pcb", "pcb-v2")
	require.NoError(t, f.app.Run(context.Background(), opts))
}

func TestRun_DryRunNeverExecutes(t *testing.T) {
	f := newFixture(t)
	f.write(t, "board.kicad_pcb", "pcb-v1")

	f.loader.EXPECT().Load(f.worktree).Return(f.manifest(), nil)
	// No Execute expectation: a dry run must not touch the executor.

	require.NoError(t, f.app.Run(context.Background(), app.RunOptions{Worktree: f.worktree, DryRun: true}))
}

func TestRun_ForceExecutesDespiteValidEntry(t *testing.T) {
	f := newFixture(t)
	f.write(t, "board.kicad_pcb", "pcb-v1")
	f.write(t, "renders/front.png", "png")

	f.loader.EXPECT().Load(f.worktree).Return(f.manifest(), nil).Times(2)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), f.worktree).Return(nil).Times(2)

	require.NoError(t, f.app.Run(context.Background(), app.RunOptions{Worktree: f.worktree}))
	require.NoError(t, f.app.Run(context.Background(), app.RunOptions{Worktree: f.worktree, Force: true}))
}

func TestRun_ExecutorFailureIsReturnedAndNotCommitted(t *testing.T) {
	f := newFixture(t)
	f.write(t, "board.kicad_pcb", "pcb-v1")
	f.write(t, "renders/front.png", "png")

	boom := errors.New("renderer crashed")
	f.loader.EXPECT().Load(f.worktree).Return(f.manifest(), nil).Times(2)
	// Both runs execute: the failed first run must not have committed a pointer.
	gomock.InOrder(
		f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), f.worktree).Return(boom),
		f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), f.worktree).Return(nil),
	)

	opts := app.RunOptions{Worktree: f.worktree}
	err := f.app.Run(context.Background(), opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	require.NoError(t, f.app.Run(context.Background(), opts))
}

func TestRun_UnreadableDescriptorFails(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(f.worktree).Return(nil, errors.New("no such file"))

	err := f.app.Run(context.Background(), app.RunOptions{Worktree: f.worktree})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load descriptor")
}

func TestClean_RemovesSelectedState(t *testing.T) {
	f := newFixture(t)
	f.write(t, "board.kicad_pcb", "pcb-v1")
	f.write(t, "renders/front.png", "png")

	m := f.manifest()
	f.loader.EXPECT().Load(f.worktree).Return(m, nil).Times(2)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), f.worktree).Return(nil)

	require.NoError(t, f.app.Run(context.Background(), app.RunOptions{Worktree: f.worktree}))
	require.DirExists(t, filepath.Join(f.cacheDir, "hashes"))
	require.DirExists(t, filepath.Join(f.cacheDir, "outputs"))

	require.NoError(t, f.app.Clean(app.RunOptions{Worktree: f.worktree}, app.CleanOptions{Hashes: true}))
	assert.NoDirExists(t, filepath.Join(f.cacheDir, "hashes"))
	assert.DirExists(t, filepath.Join(f.cacheDir, "outputs"))
}
