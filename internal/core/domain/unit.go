// Package domain contains the core value types of the collector cache.
package domain

// WorkUnit declares one cacheable external task: an opaque command, the
// source files whose content decides whether it must re-run, and the
// directory it writes its output into.
type WorkUnit struct {
	Key       string
	Sources   []string
	OutputDir string
	Command   string
	Scan      []ScanRule
}

// ScanRule describes how the surrounding site generator ingests a unit's
// output. The cache never interprets it beyond rewriting Dir on a hit.
type ScanRule struct {
	Dir   string
	Files string
	Into  string
}

// Manifest is the normalized collector descriptor for one component.
type Manifest struct {
	Namespace string
	CacheDir  string
	Units     []WorkUnit
}
