package cas

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/collector/internal/adapters/fs"
	"go.trai.ch/collector/internal/core/domain"
	"go.trai.ch/collector/internal/core/ports"
	"go.trai.ch/zerr"
)

// manifestSuffix names the per-tree integrity manifest written at commit
// time. The manifest sits beside the cached tree, never inside it, so scans
// and the non-empty check are unaffected by it.
const manifestSuffix = ".collector-manifest.json"

var _ ports.OutputStore = (*OutputStore)(nil)

// OutputStore holds cached output trees under
// {root}/outputs/{fingerprint}/{outputDir}. Units with identical source
// lists share a fingerprint, so replacement is scoped to one output
// directory: committing a tree leaves its siblings under the same
// fingerprint intact.
//
// The store assumes a single writer for its lifetime: no lock file is taken,
// and concurrent builds sharing one cache root are out of contract. Commit
// stages into a temp directory and renames, so a reader racing a writer
// still never observes a partially written tree.
type OutputStore struct {
	root string
}

// NewOutputStore creates an OutputStore rooted at the given cache directory.
func NewOutputStore(root string) *OutputStore {
	return &OutputStore{root: filepath.Clean(root)}
}

// Path returns the location of the cached copy of outputDir.
func (s *OutputStore) Path(fp domain.Fingerprint, outputDir string) string {
	return filepath.Join(s.root, "outputs", fp.String(), outputDir)
}

func (s *OutputStore) manifestPath(fp domain.Fingerprint, outputDir string) string {
	return s.Path(fp, outputDir) + manifestSuffix
}

// Exists reports whether a non-empty tree is stored for the fingerprint.
// An empty or missing directory counts as absent: an external tool that
// fails silently may leave an empty directory behind, and a pointer must
// never be trusted without this check.
func (s *OutputStore) Exists(fp domain.Fingerprint, outputDir string) bool {
	return fs.ContainsFile(s.Path(fp, outputDir))
}

// Commit replaces the cached copy of outputDir for the fingerprint with a
// fresh copy taken from srcRoot, then publishes its integrity manifest. The
// tree is staged next to its final location and swapped in with renames, so
// there is no observable window with a missing or partial tree. Sibling
// output directories under the same fingerprint are left untouched.
func (s *OutputStore) Commit(fp domain.Fingerprint, outputDir, srcRoot string) error {
	final := s.Path(fp, outputDir)
	stage := final + ".tmp-" + randomSuffix()

	if err := fs.CopyTree(filepath.Join(srcRoot, outputDir), stage); err != nil {
		_ = os.RemoveAll(stage)
		return zerr.With(zerr.Wrap(err, "failed to stage output tree"), "fingerprint", fp.String())
	}

	manifestStage, err := stageManifest(stage)
	if err != nil {
		_ = os.RemoveAll(stage)
		return err
	}

	if _, err := os.Stat(final); err == nil {
		old := final + ".old-" + randomSuffix()
		if err := os.Rename(final, old); err != nil {
			_ = os.RemoveAll(stage)
			_ = os.Remove(manifestStage)
			return zerr.With(zerr.Wrap(err, "failed to displace previous output tree"), "path", final)
		}
		defer func() { _ = os.RemoveAll(old) }()
	}

	if err := os.Rename(stage, final); err != nil {
		_ = os.RemoveAll(stage)
		_ = os.Remove(manifestStage)
		return zerr.With(zerr.Wrap(err, "failed to publish output tree"), "path", final)
	}
	if err := os.Rename(manifestStage, s.manifestPath(fp, outputDir)); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to publish tree manifest"), "path", final)
	}
	return nil
}

// Verify recomputes the digest of every file listed in the commit manifest
// and reports whether the stored tree still matches it.
func (s *OutputStore) Verify(fp domain.Fingerprint, outputDir string) (bool, error) {
	//nolint:gosec // Path is derived from the store root
	data, err := os.ReadFile(s.manifestPath(fp, outputDir))
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to read tree manifest"), "fingerprint", fp.String())
	}

	var m treeManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to parse tree manifest"), "fingerprint", fp.String())
	}

	dir := s.Path(fp, outputDir)
	for rel, want := range m.Files {
		got, err := hashFile(filepath.Join(dir, rel))
		if err != nil {
			return false, nil
		}
		if got != want {
			return false, nil
		}
	}
	return true, nil
}

// treeManifest records the xxhash64 digest of every regular file in a
// committed tree, keyed by path relative to the cached tree's root.
type treeManifest struct {
	Files map[string]string `json:"files"`
}

// stageManifest digests the staged tree and writes its manifest next to it,
// returning the manifest's staging path.
func stageManifest(stage string) (string, error) {
	m := treeManifest{Files: make(map[string]string)}

	err := filepath.WalkDir(stage, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(stage, path)
		if err != nil {
			return err
		}
		sum, err := hashFile(path)
		if err != nil {
			return err
		}
		m.Files[rel] = sum
		return nil
	})
	if err != nil {
		return "", zerr.Wrap(err, "failed to build tree manifest")
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", zerr.Wrap(err, "failed to marshal tree manifest")
	}

	path := stage + manifestSuffix
	//nolint:gosec // Path is derived from the store root
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", zerr.Wrap(err, "failed to write tree manifest")
	}
	return path, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is derived from the store root
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

func randomSuffix() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
