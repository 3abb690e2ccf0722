package domain

import "go.trai.ch/zerr"

var (
	// ErrSourceMissing is returned when a declared source file is absent or
	// unreadable. A partial hash set is never valid, so this aborts the
	// whole evaluation for the unit.
	ErrSourceMissing = zerr.New("source file missing")

	// ErrPointerNotFound is returned when no pointer record exists for a
	// fingerprint. Corrupt records degrade to this, never to a crash.
	ErrPointerNotFound = zerr.New("pointer not found")

	// ErrCommitFailed is returned when writing the pointer or copying the
	// output into the store fails. Callers log it and move on; the build
	// output already exists outside the cache.
	ErrCommitFailed = zerr.New("cache commit failed")

	// ErrConfigInvalid is returned for a descriptor entry missing required
	// fields. The entry is skipped; other entries proceed.
	ErrConfigInvalid = zerr.New("invalid collector entry")
)
