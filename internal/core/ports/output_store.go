package ports

import "go.trai.ch/collector/internal/core/domain"

// OutputStore physically holds cached output trees, keyed by fingerprint.
//
//go:generate go run go.uber.org/mock/mockgen -source=output_store.go -destination=mocks/mock_output_store.go -package=mocks
type OutputStore interface {
	// Exists reports whether a non-empty tree is stored for the
	// fingerprint. An empty or missing directory counts as absent, because
	// an external tool that fails silently may leave an empty directory.
	Exists(fp domain.Fingerprint, outputDir string) bool

	// Commit replaces any prior content for the fingerprint with a fresh
	// copy of outputDir taken from srcRoot. After it returns successfully,
	// Exists reports true and a concurrent reader never observes a
	// partially written tree.
	Commit(fp domain.Fingerprint, outputDir, srcRoot string) error

	// Path returns the absolute location of the cached copy of outputDir.
	Path(fp domain.Fingerprint, outputDir string) string

	// Verify recomputes the digests of the stored tree against its commit
	// manifest and reports whether they still match.
	Verify(fp domain.Fingerprint, outputDir string) (bool, error)
}
