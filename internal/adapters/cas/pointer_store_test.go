package cas_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/collector/internal/adapters/cas"
	"go.trai.ch/collector/internal/core/domain"
)

func TestPointerStore_SaveAndLoad(t *testing.T) {
	store := cas.NewPointerStore(t.TempDir())

	fp := domain.Fingerprint("deadbeef")
	ptr := domain.Pointer{
		OutputLocationID: fp,
		ScanDir:          "boards/out",
		Sources:          domain.SourceHashSet{"a.txt": "aaaa"},
		Timestamp:        time.Now().UTC(),
	}

	require.NoError(t, store.Save("docs", "main-board", fp, ptr))

	got, err := store.Load("docs", "main-board", fp)
	require.NoError(t, err)
	assert.Equal(t, fp, got.OutputLocationID)
	assert.Equal(t, "boards/out", got.ScanDir)
	assert.Equal(t, "aaaa", got.Sources["a.txt"])
}

func TestPointerStore_LoadMissing(t *testing.T) {
	store := cas.NewPointerStore(t.TempDir())

	_, err := store.Load("docs", "main-board", "cafebabe")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPointerNotFound))
}

func TestPointerStore_CorruptRecordDegradesToNotFound(t *testing.T) {
	root := t.TempDir()
	store := cas.NewPointerStore(root)

	record := filepath.Join(root, "hashes", "docs", "main-board", "deadbeef.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(record), 0o750))
	require.NoError(t, os.WriteFile(record, []byte("{not json"), 0o600))

	_, err := store.Load("docs", "main-board", "deadbeef")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPointerNotFound), "corruption must degrade to a miss, got %v", err)
}

func TestPointerStore_SaveIdempotent(t *testing.T) {
	root := t.TempDir()
	store := cas.NewPointerStore(root)

	fp := domain.Fingerprint("deadbeef")
	ptr := domain.Pointer{
		OutputLocationID: fp,
		Sources:          domain.SourceHashSet{"a.txt": "aaaa"},
		Timestamp:        time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, store.Save("docs", "k", fp, ptr))
	record := filepath.Join(root, "hashes", "docs", "k", "deadbeef.json")
	first, err := os.ReadFile(record)
	require.NoError(t, err)

	require.NoError(t, store.Save("docs", "k", fp, ptr))
	second, err := os.ReadFile(record)
	require.NoError(t, err)

	assert.Equal(t, first, second, "re-saving the same pointer must be byte-identical")
}

func TestPointerStore_NamespaceIsolation(t *testing.T) {
	store := cas.NewPointerStore(t.TempDir())

	fp := domain.Fingerprint("deadbeef")
	require.NoError(t, store.Save("one", "k", fp, domain.Pointer{OutputLocationID: fp}))

	_, err := store.Load("two", "k", fp)
	assert.True(t, errors.Is(err, domain.ErrPointerNotFound), "keys must be scoped by namespace")
}
