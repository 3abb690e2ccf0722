package domain

import "time"

// Pointer is the persisted record indirecting a fingerprint to its cached
// output location. It is written only by the commit pipeline and never
// mutated in place: a new fingerprint produces a new record.
type Pointer struct {
	OutputLocationID Fingerprint   `json:"output_location_id"`
	ScanDir          string        `json:"scan_dir,omitzero"`
	Sources          SourceHashSet `json:"sources"`
	Timestamp        time.Time     `json:"timestamp,omitzero"`
}
