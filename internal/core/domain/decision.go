package domain

// MissReason explains why a unit must be re-run.
type MissReason string

const (
	// MissForced means the force flag or environment override was set.
	MissForced MissReason = "forced"
	// MissSourcesUnreadable means a declared source file was absent or
	// unreadable, so no fingerprint could be computed.
	MissSourcesUnreadable MissReason = "sources unreadable"
	// MissNoEntry means no pointer record exists for the fingerprint.
	MissNoEntry MissReason = "no cache entry"
	// MissOutputMissing means a pointer exists but the output store holds
	// no non-empty tree for it.
	MissOutputMissing MissReason = "cached output missing"
)

// Decision is the outcome of evaluating one work unit against the cache.
// On a miss it carries whatever hash state was already computed so the
// commit phase never rehashes unnecessarily.
type Decision struct {
	Unit        WorkUnit
	Hit         bool
	Reason      MissReason    // empty on a hit
	Fingerprint Fingerprint   // empty when the sources could not be hashed
	Hashes      SourceHashSet // nil when the sources could not be hashed
	Scan        []ScanRule    // redirected into the output store on a hit
}
